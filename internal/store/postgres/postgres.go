// Package postgres implements the store contracts on PostgreSQL with sqlx.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"quiz-backend/internal/database"
	"quiz-backend/internal/store"

	"github.com/lib/pq"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Store struct {
	db *database.DB
}

var _ store.Store = (*Store)(nil)

func New(db *database.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// translate maps driver errors onto the store sentinels and keeps the cause.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return fmt.Errorf("%s: %w (%s)", op, store.ErrDuplicate, pqErr.Constraint)
		case foreignKeyViolation:
			return fmt.Errorf("%s: %w (%s)", op, store.ErrReference, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
