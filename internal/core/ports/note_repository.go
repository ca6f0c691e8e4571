package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// NoteRepository defines the persistence contract for notes. Create
// assigns the next ticket number from the store's counter sequence.
// Absence is signalled with domain.ErrNoteNotFound.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByTicket(ctx context.Context, ticket int64) (*domain.Note, error)
	FindAll(ctx context.Context) ([]domain.Note, error)
	FindByOwner(ctx context.Context, ownerUsername string) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) (*domain.Note, error)
	Delete(ctx context.Context, ticket int64) (*domain.Note, error)

	// CountByOwner backs the account-deletion guard: an account with
	// dependent notes cannot be removed.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}
