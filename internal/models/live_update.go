package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

var LiveUpdateCategories = map[string]bool{
	"general":  true,
	"schedule": true,
	"safety":   true,
	"traffic":  true,
	"weather":  true,
}

var LiveUpdatePriorities = map[string]bool{
	"low":    true,
	"normal": true,
	"high":   true,
	"urgent": true,
}

type LiveUpdate struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Category  string     `json:"category"`
	Priority  string     `json:"priority"`
	EventID   *uuid.UUID `json:"event_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	IsPinned  bool       `json:"is_pinned"`
	CreatedAt time.Time  `json:"created_at"`
}

type LiveUpdateFilter struct {
	Category string
	EventID  *uuid.UUID
	Since    *time.Time
	Limit    int
}

type LiveUpdateRepo interface {
	ListLiveUpdates(ctx context.Context, filter LiveUpdateFilter) ([]*LiveUpdate, error)
	CreateLiveUpdate(ctx context.Context, update *LiveUpdate) (*LiveUpdate, error)
}
