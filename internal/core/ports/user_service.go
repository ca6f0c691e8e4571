package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// CreateUserInput carries the fields accepted on account creation.
// Roles defaults to [Employee], Active to true.
type CreateUserInput struct {
	Username string
	Password string
	Roles    []string
	Active   *bool
}

// UpdateUserInput carries the mutable account fields. Nil/empty values
// leave the field untouched; a new password is re-hashed before storage.
// Username is not mutable: it is the identity notes and token claims are
// keyed on, so a value differing from the stored one is rejected.
type UpdateUserInput struct {
	Username *string
	Password *string
	Roles    []string
	Active   *bool
}

// UserService defines account management. All operations are reserved
// to the elevated tier; the actor is passed explicitly and checked even
// though the routes are additionally guarded by middleware.
type UserService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
}
