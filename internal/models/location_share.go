package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const MaxLocationHistory = 100

type LocationPoint struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
}

type LocationShare struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	ShareCode        string          `json:"share_code"`
	Name             string          `json:"name"`
	CurrentLatitude  float64         `json:"current_latitude"`
	CurrentLongitude float64         `json:"current_longitude"`
	Accuracy         *float64        `json:"accuracy"`
	History          []LocationPoint `json:"history"`
	IsActive         bool            `json:"is_active"`
	ExpiresAt        time.Time       `json:"expires_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Live reports whether the share can still be looked up at now.
func (ls *LocationShare) Live(now time.Time) bool {
	return ls.IsActive && ls.ExpiresAt.After(now)
}

type LocationShareRepo interface {
	// CreateShare returns ErrConflict when the share code is already taken.
	CreateShare(ctx context.Context, share *LocationShare) (*LocationShare, error)
	GetShare(ctx context.Context, id uuid.UUID) (*LocationShare, error)
	GetActiveShareByCode(ctx context.Context, code string, now time.Time) (*LocationShare, error)
	ListActiveShares(ctx context.Context, userID uuid.UUID, now time.Time) ([]*LocationShare, error)
	UpdateShare(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*LocationShare, error)
}
