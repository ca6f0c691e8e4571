package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/technotes/notes-system/internal/core/domain"
)

// In-memory repository stubs shared by the service tests.

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by username
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	names := make([]string, 0, len(r.users))
	for name := range r.users {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]domain.User, 0, len(names))
	for _, name := range names {
		out = append(out, *cloneUser(r.users[name]))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	stored := cloneUser(user)
	if stored.ID == "" {
		r.nextID++
		stored.ID = "user_" + strconv.Itoa(r.nextID)
	}
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for name, existing := range r.users {
		if existing.ID == user.ID {
			if name != user.Username {
				if _, taken := r.users[user.Username]; taken {
					return nil, domain.ErrUserExists
				}
				delete(r.users, name)
			}
			r.users[user.Username] = cloneUser(user)
			return cloneUser(user), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for name, existing := range r.users {
		if existing.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

// mustAddUser seeds an account directly, bypassing the service layer.
func (r *stubUserRepo) mustAddUser(username, passwordHash string, roles []domain.Role, active bool) *domain.User {
	r.nextID++
	u := &domain.User{
		ID:           fmt.Sprintf("user_%d", r.nextID),
		Username:     username,
		PasswordHash: passwordHash,
		Roles:        roles,
		Active:       active,
	}
	r.users[username] = u
	return cloneUser(u)
}

type stubNoteRepo struct {
	notes map[int64]*domain.Note
	seq   int64
}

func newStubNoteRepo() *stubNoteRepo {
	return &stubNoteRepo{notes: make(map[int64]*domain.Note), seq: domain.TicketSeqStart - 1}
}

func cloneNote(n *domain.Note) *domain.Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}

func (r *stubNoteRepo) Create(_ context.Context, note *domain.Note) (*domain.Note, error) {
	r.seq++
	stored := cloneNote(note)
	stored.Ticket = r.seq
	r.notes[stored.Ticket] = stored
	return cloneNote(stored), nil
}

func (r *stubNoteRepo) FindByTicket(_ context.Context, ticket int64) (*domain.Note, error) {
	if n, ok := r.notes[ticket]; ok {
		return cloneNote(n), nil
	}
	return nil, domain.ErrNoteNotFound
}

func (r *stubNoteRepo) FindAll(_ context.Context) ([]domain.Note, error) {
	out := make([]domain.Note, 0, len(r.notes))
	for t := domain.TicketSeqStart; int64(t) <= r.seq; t++ {
		if n, ok := r.notes[int64(t)]; ok {
			out = append(out, *cloneNote(n))
		}
	}
	return out, nil
}

func (r *stubNoteRepo) FindByOwner(_ context.Context, ownerUsername string) ([]domain.Note, error) {
	all, _ := r.FindAll(context.Background())
	out := make([]domain.Note, 0, len(all))
	for _, n := range all {
		if n.Owner.Username == ownerUsername {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *stubNoteRepo) Update(_ context.Context, note *domain.Note) (*domain.Note, error) {
	if _, ok := r.notes[note.Ticket]; !ok {
		return nil, domain.ErrNoteNotFound
	}
	r.notes[note.Ticket] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *stubNoteRepo) Delete(_ context.Context, ticket int64) (*domain.Note, error) {
	n, ok := r.notes[ticket]
	if !ok {
		return nil, domain.ErrNoteNotFound
	}
	delete(r.notes, ticket)
	return cloneNote(n), nil
}

func (r *stubNoteRepo) CountByOwner(_ context.Context, ownerID string) (int64, error) {
	var count int64
	for _, n := range r.notes {
		if n.Owner.ID == ownerID {
			count++
		}
	}
	return count, nil
}
