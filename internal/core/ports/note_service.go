package ports

import (
	"context"

	"github.com/technotes/notes-system/internal/core/domain"
)

// CreateNoteInput carries the fields accepted on note creation. Owner
// and OwnerID optionally assign the note to another account (elevated
// tier only); when both are empty the note belongs to the actor.
type CreateNoteInput struct {
	Title     string
	Text      string
	Completed bool
	Owner     string // username
	OwnerID   string
}

// UpdateNoteInput carries the mutable note fields. Nil pointers leave
// the field untouched.
type UpdateNoteInput struct {
	Title     *string
	Text      *string
	Completed *bool
	Owner     string // username, reassignment requires elevated tier
	OwnerID   string
}

// NoteService defines the note use-cases. Every operation takes the
// authenticated actor explicitly; the RBAC policy is applied here, never
// against identity fields from the request body.
type NoteService interface {
	Create(ctx context.Context, actor domain.Actor, in CreateNoteInput) (*domain.Note, error)
	Get(ctx context.Context, actor domain.Actor, ticket int64) (*domain.Note, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Note, error)
	Update(ctx context.Context, actor domain.Actor, ticket int64, in UpdateNoteInput) (*domain.Note, error)
	Delete(ctx context.Context, actor domain.Actor, ticket int64) (*domain.Note, error)
}
