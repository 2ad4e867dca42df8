package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken       = errors.New("token is missing")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrForbidden          = errors.New("admin access required")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrDuplicateEntity    = errors.New("entity already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCategoryNotFound   = errors.New("category not found")
)

// unavailable marks err as a store failure while keeping the cause for logs.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
