package domain

import "time"

// TicketSeqStart is the first ticket number the store hands out.
const TicketSeqStart = 500

// NoteOwner is the embedded owner reference returned with every note.
type NoteOwner struct {
	ID       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

// Note is a ticketed work item owned by exactly one user. The ticket
// number is assigned by the store at creation and never changes.
type Note struct {
	ID        string    `json:"-" bson:"-"`
	Ticket    int64     `json:"ticket" bson:"ticket"`
	Title     string    `json:"title" bson:"title"`
	Text      string    `json:"text" bson:"text"`
	Completed bool      `json:"completed" bson:"completed"`
	Owner     NoteOwner `json:"user" bson:"user"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
