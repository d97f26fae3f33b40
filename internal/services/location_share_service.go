package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/geo"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

const (
	DefaultShareMinutes = 60
	MinShareMinutes     = 5
	MaxShareMinutes     = 1440

	shareCodeAttempts = 5
)

// newShareCode is swapped in tests.
var newShareCode = helpers.GenerateShareCode

func (ss *SafetyService) CreateLocationShare(ctx context.Context, userID uuid.UUID, req dto.LocationShareRequest) (*dto.LocationShareResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, models.Invalid("latitude and longitude are required")
	}
	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, models.Invalid("coordinates are out of range")
	}
	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = DefaultShareMinutes
	}
	if minutes < MinShareMinutes || minutes > MaxShareMinutes {
		return nil, models.Invalid("durationMinutes must be between %d and %d", MinShareMinutes, MaxShareMinutes)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "My location"
	}

	now := timeNow()
	share := &models.LocationShare{
		ID:               uuid.New(),
		UserID:           userID,
		Name:             name,
		CurrentLatitude:  *req.Latitude,
		CurrentLongitude: *req.Longitude,
		Accuracy:         req.Accuracy,
		History:          []models.LocationPoint{},
		IsActive:         true,
		ExpiresAt:        now.Add(time.Duration(minutes) * time.Minute),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		code, err := newShareCode()
		if err != nil {
			return nil, err
		}
		share.ShareCode = code
		created, err := ss.shares.CreateShare(ctx, share)
		if err == nil {
			res := dto.ToLocationShareResponse(created)
			return &res, nil
		}
		if !isConflict(err) {
			return nil, err
		}
		ss.logger.Warn("Share code collision", "attempt", attempt+1)
	}
	return nil, models.ErrShareCodeExhausted
}

func (ss *SafetyService) ListLocationShares(ctx context.Context, userID uuid.UUID) ([]dto.LocationShareResponse, error) {
	rows, err := ss.shares.ListActiveShares(ctx, userID, timeNow())
	if err != nil {
		return nil, err
	}
	return dto.MapSlice(rows, dto.ToLocationShareResponse), nil
}

// GetLocationShareByCode is the unauthenticated lookup used by people the
// code was sent to.
func (ss *SafetyService) GetLocationShareByCode(ctx context.Context, code string) (*dto.LocationShareResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != helpers.ShareCodeLength {
		return nil, fmt.Errorf("share code %q: %w", code, models.ErrNotFound)
	}
	share, err := ss.shares.GetActiveShareByCode(ctx, code, timeNow())
	if err != nil {
		return nil, err
	}
	res := dto.ToLocationShareResponse(share)
	return &res, nil
}

// UpdateLocationShare moves the share to a new position, pushing the previous
// one onto the history.
func (ss *SafetyService) UpdateLocationShare(ctx context.Context, userID uuid.UUID, id string, req dto.LocationUpdateRequest) (*dto.LocationShareResponse, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, models.Invalid("latitude and longitude are required")
	}
	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return nil, models.Invalid("coordinates are out of range")
	}
	share, err := ss.ownedShare(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	if !share.Live(now) {
		return nil, models.Invalid("location share has ended")
	}

	history := append(share.History, models.LocationPoint{
		Latitude:   share.CurrentLatitude,
		Longitude:  share.CurrentLongitude,
		RecordedAt: share.UpdatedAt,
	})
	if len(history) > models.MaxLocationHistory {
		history = history[len(history)-models.MaxLocationHistory:]
	}

	fields := map[string]interface{}{
		"current_latitude":  *req.Latitude,
		"current_longitude": *req.Longitude,
		"history":           history,
		"updated_at":        now,
	}
	if req.Accuracy != nil {
		fields["accuracy"] = *req.Accuracy
	}
	updated, err := ss.shares.UpdateShare(ctx, share.ID, fields)
	if err != nil {
		return nil, err
	}
	res := dto.ToLocationShareResponse(updated)
	return &res, nil
}

func (ss *SafetyService) StopLocationShare(ctx context.Context, userID uuid.UUID, id string) error {
	share, err := ss.ownedShare(ctx, userID, id)
	if err != nil {
		return err
	}
	_, err = ss.shares.UpdateShare(ctx, share.ID, map[string]interface{}{
		"is_active":  false,
		"updated_at": timeNow(),
	})
	return err
}

func (ss *SafetyService) ownedShare(ctx context.Context, userID uuid.UUID, id string) (*models.LocationShare, error) {
	sid, err := parseID("share id", id)
	if err != nil {
		return nil, err
	}
	share, err := ss.shares.GetShare(ctx, sid)
	if err != nil {
		return nil, err
	}
	if share.UserID != userID {
		return nil, fmt.Errorf("location share %s: %w", id, models.ErrNotFound)
	}
	return share, nil
}
