package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Band struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	ImageURL    string    `json:"image_url"`
	Year        int       `json:"year"`
	VoteCount   int       `json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BandVote is unique per (user_id, year); the database enforces it.
type BandVote struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BandID    uuid.UUID `json:"band_id"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

type BandRepo interface {
	ListBands(ctx context.Context, year int) ([]*Band, error)
	GetBand(ctx context.Context, id uuid.UUID, year int) (*Band, error)
	// InsertVote returns ErrConflict when the user already voted that year.
	// The vote_count increment happens in the same transaction.
	InsertVote(ctx context.Context, vote *BandVote) error
}
