package dto

import (
	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateQuestionRequest struct {
	CategoryID    uuid.UUID `json:"category_id"`
	QuestionText  string    `json:"question_text"`
	OptionA       string    `json:"option_a"`
	OptionB       string    `json:"option_b"`
	OptionC       string    `json:"option_c"`
	OptionD       string    `json:"option_d"`
	CorrectAnswer string    `json:"correct_answer"`
	Points        *int      `json:"points,omitempty"`
}

// QuestionResponse is what quiz takers see; the correct answer is left out.
type QuestionResponse struct {
	ID           uuid.UUID `json:"id"`
	QuestionText string    `json:"question_text"`
	OptionA      string    `json:"option_a"`
	OptionB      string    `json:"option_b"`
	OptionC      string    `json:"option_c"`
	OptionD      string    `json:"option_d"`
	Points       int       `json:"points"`
}

type SubmitQuizRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	// Answers maps question ids to the chosen option (a, b, c or d).
	Answers   map[string]string `json:"answers"`
	TimeTaken int               `json:"time_taken"`
}

type SubmitQuizResponse struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"total_questions"`
	Percentage     float64 `json:"percentage"`
}

type CreatedResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	ID      uuid.UUID `json:"id"`
}
