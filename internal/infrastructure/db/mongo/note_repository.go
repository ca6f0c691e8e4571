package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/technotes/notes-system/internal/core/domain"
)

const (
	collectionNotes    = "notes"
	collectionCounters = "counters"
	ticketCounterID    = "note_ticket"
)

type NoteRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{
		col:      db.Collection(collectionNotes),
		counters: db.Collection(collectionCounters),
	}
}

type noteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Ticket    int64              `bson:"ticket"`
	Title     string             `bson:"title"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	Owner     domain.NoteOwner   `bson:"user"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d noteDoc) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.ID.Hex(),
		Ticket:    d.Ticket,
		Title:     d.Title,
		Text:      d.Text,
		Completed: d.Completed,
		Owner:     d.Owner,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// nextTicket atomically increments the ticket counter and returns the
// resulting ticket number. The first ticket handed out is
// domain.TicketSeqStart.
func (r *NoteRepository) nextTicket(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": ticketCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next ticket: %w", err)
	}
	return domain.TicketSeqStart - 1 + counter.Seq, nil
}

// Create assigns the next ticket number and inserts the note.
func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ticket, err := r.nextTicket(ctx)
	if err != nil {
		return nil, err
	}

	doc := noteDoc{
		Ticket:    ticket,
		Title:     note.Title,
		Text:      note.Text,
		Completed: note.Completed,
		Owner:     note.Owner,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	created.Ticket = ticket
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *NoteRepository) FindByTicket(ctx context.Context, ticket int64) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc noteDoc
	if err := r.col.FindOne(ctx, bson.M{"ticket": ticket}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]domain.Note, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *NoteRepository) FindByOwner(ctx context.Context, ownerUsername string) ([]domain.Note, error) {
	return r.findMany(ctx, bson.M{"user.username": ownerUsername})
}

func (r *NoteRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "ticket", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	var notes []domain.Note
	for cur.Next(ctx) {
		var doc noteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Update rewrites the mutable fields of a note. The ticket number is the
// lookup key and never changes.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":      note.Title,
		"text":       note.Text,
		"completed":  note.Completed,
		"user":       note.Owner,
		"updated_at": note.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"ticket": note.Ticket}, update)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

// Delete removes a note and returns the deleted document.
func (r *NoteRepository) Delete(ctx context.Context, ticket int64) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc noteDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"ticket": ticket}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("delete note: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NoteRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"user.id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique ticket index and the owner lookup index.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticket", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user.username", Value: 1}}},
		{Keys: bson.D{{Key: "user.id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
