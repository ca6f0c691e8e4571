package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// UserRepository defines the persistence contract for accounts.
// Absence is signalled with domain.ErrUserNotFound; a duplicate username
// on Create or Update surfaces as domain.ErrUserExists (true uniqueness
// is enforced by the store's unique index, not by the caller's pre-check).
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
