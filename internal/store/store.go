// Package store defines the persistence contracts the services depend on.
// Implementations translate driver errors into the sentinel errors below.
package store

import (
	"context"
	"errors"

	"quiz-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	// ErrReference is returned when a write points at a row that does not exist.
	ErrReference = errors.New("referenced record does not exist")
)

// CredentialStore persists users.
type CredentialStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByLogin matches login against username or email.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetUserRole(ctx context.Context, username string, role models.UserRole) error
}

// QuizStore persists categories, questions and results.
type QuizStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error

	ListQuestions(ctx context.Context, categoryID uuid.UUID) ([]models.Question, error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	// AnswerKeys returns the keys of the given questions that exist. Missing
	// ids are absent from the map rather than an error.
	AnswerKeys(ctx context.Context, questionIDs []uuid.UUID) (map[uuid.UUID]models.AnswerKey, error)

	CreateResult(ctx context.Context, result *models.Result) error
	ListUserResults(ctx context.Context, userID uuid.UUID) ([]models.Result, error)
	Leaderboard(ctx context.Context, categoryID uuid.UUID, limit int) ([]models.LeaderboardEntry, error)
}

// Store is everything the application needs from a backend.
type Store interface {
	CredentialStore
	QuizStore
	Close() error
}
