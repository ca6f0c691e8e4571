package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

// NoteService implements the note use-cases with the RBAC policy applied
// against the authenticated actor on every operation.
type NoteService struct {
	notes ports.NoteRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewNoteService(notes ports.NoteRepository, users ports.UserRepository, log zerolog.Logger) *NoteService {
	return &NoteService{notes: notes, users: users, log: log}
}

// Create makes a new note. Without an explicit owner the note belongs to
// the actor; assigning it to another account requires the elevated tier.
func (s *NoteService) Create(ctx context.Context, actor domain.Actor, in ports.CreateNoteInput) (*domain.Note, error) {
	if in.Title == "" || in.Text == "" {
		return nil, domain.ErrBadRequest
	}

	owner, err := s.resolveOwner(ctx, actor, in.Owner, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAssignOwner(owner.Username) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	note := &domain.Note{
		Title:     in.Title,
		Text:      in.Text,
		Completed: in.Completed,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.notes.Create(ctx, note)
	if err != nil {
		s.log.Error().Err(err).Str("owner", owner.Username).Msg("failed to create note")
		return nil, err
	}

	s.log.Info().Int64("ticket", created.Ticket).Str("owner", owner.Username).Msg("note created")
	return created, nil
}

// Get returns a single note by ticket number, owner-visibility enforced.
func (s *NoteService) Get(ctx context.Context, actor domain.Actor, ticket int64) (*domain.Note, error) {
	note, err := s.notes.FindByTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	if !actor.CanViewNote(note.Owner.Username) {
		return nil, domain.ErrForbidden
	}
	return note, nil
}

// List returns every note for elevated actors and only the actor's own
// notes otherwise.
func (s *NoteService) List(ctx context.Context, actor domain.Actor) ([]domain.Note, error) {
	if actor.Elevated() {
		return s.notes.FindAll(ctx)
	}
	return s.notes.FindByOwner(ctx, actor.Username)
}

// Update mutates a note the actor may edit. Reassigning the owner to a
// different account additionally requires the elevated tier.
func (s *NoteService) Update(ctx context.Context, actor domain.Actor, ticket int64, in ports.UpdateNoteInput) (*domain.Note, error) {
	note, err := s.notes.FindByTicket(ctx, ticket)
	if err != nil {
		return nil, err
	}
	if !actor.CanEditNote(note.Owner.Username) {
		return nil, domain.ErrForbidden
	}

	if in.Owner != "" || in.OwnerID != "" {
		newOwner, err := s.resolveOwner(ctx, actor, in.Owner, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if newOwner.Username != note.Owner.Username && !actor.Elevated() {
			return nil, domain.ErrForbidden
		}
		note.Owner = newOwner
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, domain.ErrBadRequest
		}
		note.Title = *in.Title
	}
	if in.Text != nil {
		if *in.Text == "" {
			return nil, domain.ErrBadRequest
		}
		note.Text = *in.Text
	}
	if in.Completed != nil {
		note.Completed = *in.Completed
	}
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.notes.Update(ctx, note)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("ticket", updated.Ticket).Msg("note updated")
	return updated, nil
}

// Delete removes a note. Reserved to the elevated tier; the policy check
// comes before the lookup so non-elevated probing cannot learn whether a
// ticket exists.
func (s *NoteService) Delete(ctx context.Context, actor domain.Actor, ticket int64) (*domain.Note, error) {
	if !actor.CanDeleteNote() {
		return nil, domain.ErrForbidden
	}

	deleted, err := s.notes.Delete(ctx, ticket)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("ticket", deleted.Ticket).Str("deleted_by", actor.Username).Msg("note deleted")
	return deleted, nil
}

// resolveOwner turns an optional username or account id into an owner
// reference, defaulting to the actor's own account. When both are sent
// the id wins.
func (s *NoteService) resolveOwner(ctx context.Context, actor domain.Actor, username, id string) (domain.NoteOwner, error) {
	var (
		user *domain.User
		err  error
	)
	switch {
	case id != "":
		user, err = s.users.FindByID(ctx, id)
	case username != "":
		user, err = s.users.FindByUsername(ctx, username)
	default:
		user, err = s.users.FindByUsername(ctx, actor.Username)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.NoteOwner{}, domain.ErrUserNotFound
		}
		return domain.NoteOwner{}, err
	}
	return domain.NoteOwner{ID: user.ID, Username: user.Username}, nil
}
