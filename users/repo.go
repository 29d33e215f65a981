package users

import (
	"context"
	"errors"
)

var (
	// NotFoundErr is returned when no user matches the lookup.
	NotFoundErr = errors.New("user not found")
	// DuplicateEmailErr is returned when an insert hits the unique
	// constraint on email. Detection happens at insert time, not via a
	// pre-check query, so there is no race between check and insert.
	DuplicateEmailErr = errors.New("email already exists")
)

type Repo interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Insert(ctx context.Context, name, email, passwordHash string, role RoleType) (int64, error)
	List(ctx context.Context) ([]*User, error)
}
