package models

import (
	"time"

	"github.com/google/uuid"
)

// Option is one of the four answer slots of a question.
type Option = string

const (
	OptionA Option = "a"
	OptionB Option = "b"
	OptionC Option = "c"
	OptionD Option = "d"
)

const DefaultQuestionPoints = 1

func ValidOption(o string) bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

type Question struct {
	ID         uuid.UUID `db:"id" json:"id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`

	QuestionText  string `db:"question_text" json:"question_text"`
	OptionA       string `db:"option_a" json:"option_a"`
	OptionB       string `db:"option_b" json:"option_b"`
	OptionC       string `db:"option_c" json:"option_c"`
	OptionD       string `db:"option_d" json:"option_d"`
	CorrectAnswer Option `db:"correct_answer" json:"correct_answer"`
	Points        int    `db:"points" json:"points"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AnswerKey is the part of a question the scorer needs.
type AnswerKey struct {
	QuestionID    uuid.UUID `db:"id"`
	CorrectAnswer Option    `db:"correct_answer"`
	Points        int       `db:"points"`
}
