package services

import (
	"context"

	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/geo"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type EventService struct {
	events models.EventRepo
}

func NewEventService(events models.EventRepo) *EventService {
	return &EventService{events: events}
}

// NearFilter restricts events to a radius around a point.
type NearFilter struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

func (es *EventService) ListEvents(ctx context.Context, filter models.EventFilter, near *NearFilter) ([]dto.EventResponse, int, error) {
	filter.Offset, filter.Limit = Page(filter.Offset, filter.Limit)
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, models.Invalid("to must not be before from")
	}

	if near == nil {
		rows, total, err := es.events.ListEvents(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		return dto.MapSlice(rows, dto.ToEventResponse), total, nil
	}

	if !geo.ValidCoordinates(near.Latitude, near.Longitude) {
		return nil, 0, models.Invalid("lat and lng must be valid coordinates")
	}
	if near.RadiusKm <= 0 {
		return nil, 0, models.Invalid("radiusKm must be positive")
	}

	offset, limit := filter.Offset, filter.Limit
	if minLat, maxLat, minLng, maxLng, ok := geo.Bounds(near.Latitude, near.Longitude, near.RadiusKm); ok {
		filter.Bounds = &models.BoundingBox{MinLat: minLat, MaxLat: maxLat, MinLng: minLng, MaxLng: maxLng}
	}

	// the box is a superset of the circle, so walk every matching row
	nearby := []dto.EventResponse{}
	filter.Limit = MaxPageSize
	for filter.Offset = 0; ; filter.Offset += MaxPageSize {
		rows, total, err := es.events.ListEvents(ctx, filter)
		if err != nil {
			return nil, 0, err
		}
		for _, e := range rows {
			d := geo.HaversineKm(near.Latitude, near.Longitude, e.Latitude, e.Longitude)
			if d > near.RadiusKm {
				continue
			}
			res := dto.ToEventResponse(e)
			res.DistanceKm = &d
			nearby = append(nearby, res)
		}
		if len(rows) < MaxPageSize || filter.Offset+len(rows) >= total {
			break
		}
	}

	total := len(nearby)
	if offset >= total {
		return []dto.EventResponse{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return nearby[offset:end], total, nil
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*dto.EventResponse, error) {
	eventID, err := parseID("event id", id)
	if err != nil {
		return nil, err
	}
	e, err := es.events.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	res := dto.ToEventResponse(e)
	return &res, nil
}

type HotelService struct {
	hotels models.HotelRepo
}

func NewHotelService(hotels models.HotelRepo) *HotelService {
	return &HotelService{hotels: hotels}
}

func (hs *HotelService) ListHotels(ctx context.Context, filter models.HotelFilter) ([]dto.HotelResponse, int, error) {
	filter.Offset, filter.Limit = Page(filter.Offset, filter.Limit)
	switch filter.Sort {
	case "", "price", "rating", "name":
	default:
		return nil, 0, models.Invalid("sort must be price, rating or name")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MaxPrice < *filter.MinPrice {
		return nil, 0, models.Invalid("maxPrice must not be below minPrice")
	}

	rows, total, err := hs.hotels.ListHotels(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.MapSlice(rows, dto.ToHotelResponse), total, nil
}

func (hs *HotelService) GetHotel(ctx context.Context, id string) (*dto.HotelResponse, error) {
	hotelID, err := parseID("hotel id", id)
	if err != nil {
		return nil, err
	}
	h, err := hs.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	res := dto.ToHotelResponse(h)
	return &res, nil
}
