package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Insert when the email is already taken.
	// Callers branch on this rather than inspecting driver errors.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepo persists credential records. Insert assigns the ID and reports an
// email uniqueness violation as ErrDuplicateEmail.
type UserRepo interface {
	Insert(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Delete(ctx context.Context, id string) error
}
