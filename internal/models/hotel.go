package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomType struct {
	Type          string  `json:"type"`
	PricePerNight float64 `json:"price_per_night"`
	Capacity      int     `json:"capacity"`
	Available     int     `json:"available"`
}

type Hotel struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	PriceMin    float64    `json:"price_min"`
	PriceMax    float64    `json:"price_max"`
	Rating      float64    `json:"rating"`
	Amenities   []string   `json:"amenities"`
	RoomTypes   []RoomType `json:"room_types"`
	Images      []string   `json:"images"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// RoomRate resolves the nightly rate for a room type. An empty roomType picks
// the cheapest room type, falling back to the hotel's minimum price.
func (h *Hotel) RoomRate(roomType string) (RoomType, bool) {
	if roomType == "" {
		var cheapest *RoomType
		for i := range h.RoomTypes {
			if cheapest == nil || h.RoomTypes[i].PricePerNight < cheapest.PricePerNight {
				cheapest = &h.RoomTypes[i]
			}
		}
		if cheapest != nil {
			return *cheapest, true
		}
		if h.PriceMin > 0 {
			return RoomType{Type: "standard", PricePerNight: h.PriceMin}, true
		}
		return RoomType{}, false
	}
	for _, rt := range h.RoomTypes {
		if rt.Type == roomType {
			return rt, true
		}
	}
	return RoomType{}, false
}

type HotelFilter struct {
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Amenity   string
	Sort      string // "price", "rating" or "name"
	Offset    int
	Limit     int
}

type HotelRepo interface {
	ListHotels(ctx context.Context, filter HotelFilter) ([]*Hotel, int, error)
	GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error)
}
