package handler

import (
	"time"

	"github.com/technotes/notes-system/internal/core/domain"
)

// errorResponse documents the error envelope in the swagger output; the
// actual rendering happens in the central HTTP error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// dataResponse is the success envelope wrapping every resource payload.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// --- Request / Response types ---

type createNoteRequest struct {
	Title     string `json:"title" validate:"required"`
	Text      string `json:"text"  validate:"required"`
	Completed bool   `json:"completed"`
	// User/UserID optionally assign the note to another account
	// (elevated tier only). They name the owner, they never
	// authenticate: the actor always comes from the bearer token.
	User   string `json:"user"`
	UserID string `json:"userId"`
}

type updateNoteRequest struct {
	Title     *string `json:"title"`
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	User      string  `json:"user"`
	UserID    string  `json:"userId"`
}

type noteOwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type noteResponse struct {
	Ticket    int64             `json:"ticket"`
	Title     string            `json:"title"`
	Text      string            `json:"text"`
	Completed bool              `json:"completed"`
	User      noteOwnerResponse `json:"user"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	return noteResponse{
		Ticket:    n.Ticket,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		User:      noteOwnerResponse{ID: n.Owner.ID, Username: n.Owner.Username},
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteListResponse(notes []domain.Note) []noteResponse {
	out := make([]noteResponse, len(notes))
	for i := range notes {
		out[i] = toNoteResponse(&notes[i])
	}
	return out
}
