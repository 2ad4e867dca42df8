package postgres

import (
	"context"

	"quiz-backend/internal/models"
	"quiz-backend/internal/store"

	"github.com/google/uuid"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		insert into users (id, username, email, password_hash, role)
		values ($1, $2, $3, $4, $5)
		returning created_at, updated_at
	`
	row := s.db.QueryRowxContext(ctx, query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	if err := row.Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return translate(err, "create user")
	}
	return nil
}

func (s *Store) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	query := `
		select id, username, email, password_hash, role, created_at, updated_at
		from users
		where username = $1 or email = $1
		order by (username = $1) desc
		limit 1
	`
	if err := s.db.GetContext(ctx, &user, query, login); err != nil {
		return nil, translate(err, "get user by login")
	}
	return &user, nil
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := "select id, username, email, password_hash, role, created_at, updated_at from users where id = $1"

	if err := s.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translate(err, "get user by id")
	}
	return &user, nil
}

func (s *Store) SetUserRole(ctx context.Context, username string, role models.UserRole) error {
	query := "update users set role = $1, updated_at = now() where username = $2"

	res, err := s.db.ExecContext(ctx, query, role, username)
	if err != nil {
		return translate(err, "set user role")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, "set user role")
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
