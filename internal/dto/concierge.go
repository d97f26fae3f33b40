package dto

import (
	"sort"
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type UpdateSessionRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

type AddMessageRequest struct {
	Role          string `json:"role"`
	Content       string `json:"content" binding:"required"`
	GenerateReply bool   `json:"generateReply"`
}

type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

type ChatResponse struct {
	Reply   string      `json:"reply"`
	Message ChatMessage `json:"message"`
}

type ConciergeMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConciergeSessionResponse struct {
	ID           string                     `json:"id"`
	UserID       string                     `json:"userId"`
	Title        string                     `json:"title"`
	Status       string                     `json:"status"`
	MessageCount int                        `json:"messageCount"`
	Messages     []ConciergeMessageResponse `json:"messages,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

func ToConciergeMessages(msgs []models.ConciergeMessage) []ConciergeMessageResponse {
	out := make([]ConciergeMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ConciergeMessageResponse{
			ID:        m.ID.Hex(),
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

// ToConciergeSessionResponse includes messages only when withMessages is set.
func ToConciergeSessionResponse(s *models.ConciergeSession, withMessages bool) ConciergeSessionResponse {
	res := ConciergeSessionResponse{
		ID:           s.ID.Hex(),
		UserID:       s.UserID,
		Title:        s.Title,
		Status:       s.Status,
		MessageCount: s.MessageCount,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if withMessages {
		res.Messages = ToConciergeMessages(s.Messages)
	}
	return res
}

type FavouriteRequest struct {
	ItemType string `json:"itemType" binding:"required"`
}

type FavouriteItemResponse struct {
	ItemID   string    `json:"itemId"`
	ItemType string    `json:"itemType"`
	AddedAt  time.Time `json:"addedAt"`
}

type FavouritesResponse struct {
	UserID string                  `json:"userId"`
	Items  []FavouriteItemResponse `json:"items"`
}

// ToFavouritesResponse lists items newest first.
func ToFavouritesResponse(f *models.Favourite) FavouritesResponse {
	items := make([]FavouriteItemResponse, 0, len(f.Items))
	for _, it := range f.Items {
		items = append(items, FavouriteItemResponse{ItemID: it.ItemID, ItemType: it.ItemType, AddedAt: it.AddedAt})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].AddedAt.After(items[j].AddedAt) })
	return FavouritesResponse{UserID: f.UserID, Items: items}
}
