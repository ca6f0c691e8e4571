package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/technotes/notes-system/internal/core/domain"
	"github.com/technotes/notes-system/internal/core/ports"
)

// UserService implements account management. Every operation requires
// the elevated tier; the routes are additionally guarded by middleware,
// but the service re-checks the actor it was handed.
type UserService struct {
	users ports.UserRepository
	notes ports.NoteRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, notes ports.NoteRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, notes: notes, log: log}
}

// Create registers a new account. Roles defaults to [Employee] and
// active to true. A duplicate username yields domain.ErrUserExists; the
// pre-check here is best-effort, the store's unique index is the real
// guarantee.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrBadRequest
	}

	roles := []domain.Role{domain.RoleEmployee}
	if len(in.Roles) > 0 {
		parsed, ok := domain.RolesFromNames(in.Roles)
		if !ok {
			return nil, domain.ErrBadRequest
		}
		roles = parsed
	}

	if existing, err := s.users.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Roles:        roles,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Str("created_by", actor.Username).Msg("user created")
	return created, nil
}

// Get returns a single account by id.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

// List returns every account.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}
	return s.users.FindAll(ctx)
}

// Update mutates an account. The username is the immutable identity
// notes and token claims are keyed on, so a rename is refused outright;
// a password change is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Renaming would orphan every note whose embedded owner carries the
	// old username and would free it for re-registration, handing the
	// next holder ownership of those notes.
	if in.Username != nil && *in.Username != user.Username {
		return nil, domain.ErrBadRequest
	}

	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrBadRequest
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if len(in.Roles) > 0 {
		roles, ok := domain.RolesFromNames(in.Roles)
		if !ok {
			return nil, domain.ErrBadRequest
		}
		user.Roles = roles
	}

	if in.Active != nil {
		user.Active = *in.Active
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", updated.Username).Str("updated_by", actor.Username).Msg("user updated")
	return updated, nil
}

// Delete removes an account. Deletion is refused with
// domain.ErrUserHasNotes while the account still owns notes.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	if !actor.CanManageUsers() {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.notes.CountByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrUserHasNotes
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Str("deleted_by", actor.Username).Msg("user deleted")
	return user, nil
}
