package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"quiz-backend/internal/dto"
	"quiz-backend/internal/models"
	"quiz-backend/internal/store"

	"github.com/google/uuid"
)

type QuizService struct {
	quizzes store.QuizStore
}

func NewQuizService(quizzes store.QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

func (s *QuizService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.quizzes.ListCategories(ctx)
	if err != nil {
		return nil, unavailable("list categories", err)
	}
	return categories, nil
}

func (s *QuizService) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)

	var v validator
	v.required("name", name)
	if err := v.err(); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.quizzes.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: category already exists", ErrDuplicateEntity)
		}
		return nil, unavailable("create category", err)
	}
	return category, nil
}

// ListQuestions returns the questions of a category without their answers.
func (s *QuizService) ListQuestions(ctx context.Context, categoryID uuid.UUID) ([]dto.QuestionResponse, error) {
	questions, err := s.quizzes.ListQuestions(ctx, categoryID)
	if err != nil {
		return nil, unavailable("list questions", err)
	}

	resp := make([]dto.QuestionResponse, len(questions))
	for i, q := range questions {
		resp[i] = dto.QuestionResponse{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			OptionA:      q.OptionA,
			OptionB:      q.OptionB,
			OptionC:      q.OptionC,
			OptionD:      q.OptionD,
			Points:       q.Points,
		}
	}
	return resp, nil
}

func (s *QuizService) CreateQuestion(ctx context.Context, req *dto.CreateQuestionRequest) (*models.Question, error) {
	q := &models.Question{
		ID:            uuid.New(),
		CategoryID:    req.CategoryID,
		QuestionText:  strings.TrimSpace(req.QuestionText),
		OptionA:       strings.TrimSpace(req.OptionA),
		OptionB:       strings.TrimSpace(req.OptionB),
		OptionC:       strings.TrimSpace(req.OptionC),
		OptionD:       strings.TrimSpace(req.OptionD),
		CorrectAnswer: strings.ToLower(strings.TrimSpace(req.CorrectAnswer)),
		Points:        models.DefaultQuestionPoints,
	}
	if req.Points != nil {
		q.Points = *req.Points
	}

	var v validator
	v.check(q.CategoryID != uuid.Nil, "category_id is required")
	v.required("question_text", q.QuestionText)
	v.required("option_a", q.OptionA)
	v.required("option_b", q.OptionB)
	v.required("option_c", q.OptionC)
	v.required("option_d", q.OptionD)
	v.check(models.ValidOption(q.CorrectAnswer), "correct_answer must be one of a, b, c, d")
	v.check(q.Points > 0, "points must be positive")
	v.check(distinct(q.OptionA, q.OptionB, q.OptionC, q.OptionD), "all options must be different")
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.quizzes.CreateQuestion(ctx, q); err != nil {
		if errors.Is(err, store.ErrReference) {
			return nil, ErrCategoryNotFound
		}
		return nil, unavailable("create question", err)
	}
	return q, nil
}

// SubmitQuiz scores a submission and records it as a result of the acting
// user. The result insert is the last step; if it fails the score is not
// returned and the caller sees ErrStoreUnavailable.
func (s *QuizService) SubmitQuiz(ctx context.Context, actingUser uuid.UUID, req *dto.SubmitQuizRequest) (*dto.SubmitQuizResponse, error) {
	var v validator
	v.check(req.CategoryID != uuid.Nil, "category_id is required")
	v.check(req.Answers != nil, "answers is required")
	v.check(req.TimeTaken >= 0, "time_taken must not be negative")
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.quizzes.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, unavailable("get category", err)
	}

	keys, err := s.quizzes.AnswerKeys(ctx, questionIDs(req.Answers))
	if err != nil {
		return nil, unavailable("load answer keys", err)
	}

	tally := ScoreAnswers(req.Answers, keys)

	result := &models.Result{
		ID:             uuid.New(),
		UserID:         actingUser,
		CategoryID:     req.CategoryID,
		Score:          tally.Score,
		TotalQuestions: tally.TotalQuestions,
		TimeTaken:      req.TimeTaken,
	}
	if err := s.quizzes.CreateResult(ctx, result); err != nil {
		return nil, unavailable("record result", err)
	}

	slog.InfoContext(ctx, "quiz submitted",
		"user_id", actingUser,
		"category_id", req.CategoryID,
		"score", tally.Score,
		"total_questions", tally.TotalQuestions,
	)

	return &dto.SubmitQuizResponse{
		Score:          tally.Score,
		TotalQuestions: tally.TotalQuestions,
		Percentage:     tally.Percentage,
	}, nil
}

func (s *QuizService) ListUserResults(ctx context.Context, userID uuid.UUID) ([]models.Result, error) {
	results, err := s.quizzes.ListUserResults(ctx, userID)
	if err != nil {
		return nil, unavailable("list results", err)
	}
	return results, nil
}

func distinct(values ...string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}
