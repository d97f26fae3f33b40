package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"` // e.g. "parade", "concert", "cultural", "food"
	Venue         string    `json:"venue"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Capacity      int       `json:"capacity"`
	AttendeeCount int       `json:"attendee_count"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	Tags          []string  `json:"tags"`
	IsFeatured    bool      `json:"is_featured"`
	IsTrending    bool      `json:"is_trending"`
	IsLive        bool      `json:"is_live"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type EventFilter struct {
	Category string
	Featured *bool
	Trending *bool
	Live     *bool
	Search   string
	From     *time.Time
	To       *time.Time
	Bounds   *BoundingBox
	Offset   int
	Limit    int
}

// BoundingBox narrows events to a lat/lng rectangle, edges inclusive.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

func (b *BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

type EventRepo interface {
	ListEvents(ctx context.Context, filter EventFilter) ([]*Event, int, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error)
}
