package models

import (
	"time"

	"github.com/google/uuid"
)

// Result is one recorded quiz attempt. Rows are never updated.
type Result struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	CategoryID uuid.UUID `db:"category_id" json:"category_id"`

	Score          int `db:"score" json:"score"`
	TotalQuestions int `db:"total_questions" json:"total_questions"`
	TimeTaken      int `db:"time_taken" json:"time_taken"` // seconds

	CompletedAt time.Time `db:"completed_at" json:"completed_at"`
}

// LeaderboardEntry aggregates every attempt of one user in a category.
// Each field is reduced on its own, so the values may come from different attempts.
type LeaderboardEntry struct {
	Username       string    `db:"username" json:"username"`
	Score          int       `db:"score" json:"score"`
	TotalQuestions int       `db:"total_questions" json:"total_questions"`
	TimeTaken      int       `db:"time_taken" json:"time_taken"`
	CompletedAt    time.Time `db:"completed_at" json:"completed_at"`
}
