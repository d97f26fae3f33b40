package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type LiveUpdateService struct {
	updates models.LiveUpdateRepo
}

func NewLiveUpdateService(updates models.LiveUpdateRepo) *LiveUpdateService {
	return &LiveUpdateService{updates: updates}
}

// ListLiveUpdates returns pinned updates first, then newest first.
func (ls *LiveUpdateService) ListLiveUpdates(ctx context.Context, category, eventID string, since *time.Time, limit int) ([]dto.LiveUpdateResponse, error) {
	filter := models.LiveUpdateFilter{Since: since}
	if category = strings.TrimSpace(category); category != "" {
		if !models.LiveUpdateCategories[category] {
			return nil, models.Invalid("unknown category %q", category)
		}
		filter.Category = category
	}
	if strings.TrimSpace(eventID) != "" {
		id, err := parseID("eventId", eventID)
		if err != nil {
			return nil, err
		}
		filter.EventID = &id
	}
	_, filter.Limit = Page(0, limit)

	rows, err := ls.updates.ListLiveUpdates(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.MapSlice(rows, dto.ToLiveUpdateResponse), nil
}

// PostLiveUpdate is reserved for admins; the route enforces the role.
func (ls *LiveUpdateService) PostLiveUpdate(ctx context.Context, authorID uuid.UUID, req dto.LiveUpdateRequest) (*dto.LiveUpdateResponse, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, models.Invalid("title and content are required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}
	if !models.LiveUpdateCategories[category] {
		return nil, models.Invalid("unknown category %q", category)
	}
	priority := strings.TrimSpace(req.Priority)
	if priority == "" {
		priority = "normal"
	}
	if !models.LiveUpdatePriorities[priority] {
		return nil, models.Invalid("unknown priority %q", priority)
	}

	update := &models.LiveUpdate{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		Category:  category,
		Priority:  priority,
		AuthorID:  authorID,
		IsPinned:  req.IsPinned,
		CreatedAt: timeNow(),
	}
	if strings.TrimSpace(req.EventID) != "" {
		id, err := parseID("eventId", req.EventID)
		if err != nil {
			return nil, err
		}
		update.EventID = &id
	}

	created, err := ls.updates.CreateLiveUpdate(ctx, update)
	if err != nil {
		return nil, err
	}
	res := dto.ToLiveUpdateResponse(created)
	return &res, nil
}
