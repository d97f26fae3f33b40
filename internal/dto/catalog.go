// Package dto holds the camelCase API shapes and the row mappings to them.
package dto

import (
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type EventResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Venue         string    `json:"venue"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	Capacity      int       `json:"capacity"`
	AttendeeCount int       `json:"attendeeCount"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"imageUrl"`
	Tags          []string  `json:"tags"`
	IsFeatured    bool      `json:"isFeatured"`
	IsTrending    bool      `json:"isTrending"`
	IsLive        bool      `json:"isLive"`
	DistanceKm    *float64  `json:"distanceKm,omitempty"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:            e.ID.String(),
		Title:         e.Title,
		Description:   e.Description,
		Category:      e.Category,
		Venue:         e.Venue,
		Latitude:      e.Latitude,
		Longitude:     e.Longitude,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Capacity:      e.Capacity,
		AttendeeCount: e.AttendeeCount,
		Price:         e.Price,
		ImageURL:      e.ImageURL,
		Tags:          nonNil(e.Tags),
		IsFeatured:    e.IsFeatured,
		IsTrending:    e.IsTrending,
		IsLive:        e.IsLive,
	}
}

type RoomTypeResponse struct {
	Type          string  `json:"type"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	Available     int     `json:"available"`
}

type HotelResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Latitude    float64            `json:"latitude"`
	Longitude   float64            `json:"longitude"`
	PriceMin    float64            `json:"priceMin"`
	PriceMax    float64            `json:"priceMax"`
	Rating      float64            `json:"rating"`
	Amenities   []string           `json:"amenities"`
	RoomTypes   []RoomTypeResponse `json:"roomTypes"`
	Images      []string           `json:"images"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
}

func ToHotelResponse(h *models.Hotel) HotelResponse {
	rooms := make([]RoomTypeResponse, 0, len(h.RoomTypes))
	for _, rt := range h.RoomTypes {
		rooms = append(rooms, RoomTypeResponse{
			Type:          rt.Type,
			PricePerNight: rt.PricePerNight,
			Capacity:      rt.Capacity,
			Available:     rt.Available,
		})
	}
	return HotelResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Description: h.Description,
		Address:     h.Address,
		Latitude:    h.Latitude,
		Longitude:   h.Longitude,
		PriceMin:    h.PriceMin,
		PriceMax:    h.PriceMax,
		Rating:      h.Rating,
		Amenities:   nonNil(h.Amenities),
		RoomTypes:   rooms,
		Images:      nonNil(h.Images),
		Phone:       h.Phone,
		Email:       h.Email,
	}
}

type BandResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Theme       string `json:"theme"`
	ImageURL    string `json:"imageUrl"`
	Year        int    `json:"year"`
	VoteCount   int    `json:"voteCount"`
}

func ToBandResponse(b *models.Band) BandResponse {
	return BandResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		Description: b.Description,
		Theme:       b.Theme,
		ImageURL:    b.ImageURL,
		Year:        b.Year,
		VoteCount:   b.VoteCount,
	}
}

type LiveUpdateRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	EventID  string `json:"eventId"`
	IsPinned bool   `json:"isPinned"`
}

type LiveUpdateResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Priority  string    `json:"priority"`
	EventID   *string   `json:"eventId"`
	AuthorID  string    `json:"authorId"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToLiveUpdateResponse(u *models.LiveUpdate) LiveUpdateResponse {
	var eventID *string
	if u.EventID != nil {
		s := u.EventID.String()
		eventID = &s
	}
	return LiveUpdateResponse{
		ID:        u.ID.String(),
		Title:     u.Title,
		Content:   u.Content,
		Category:  u.Category,
		Priority:  u.Priority,
		EventID:   eventID,
		AuthorID:  u.AuthorID.String(),
		IsPinned:  u.IsPinned,
		CreatedAt: u.CreatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// MapSlice maps rows to responses, never returning nil.
func MapSlice[T any, R any](rows []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}
