package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/carnivalxperience/internal/geo"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

const maxSearchResults = 10

type GeoService struct {
	geocoder geo.Geocoder
	logger   *slog.Logger
}

func NewGeoService(geocoder geo.Geocoder, logger *slog.Logger) *GeoService {
	return &GeoService{geocoder: geocoder, logger: logger}
}

// Search never fails on upstream trouble; callers get an empty list.
func (gs *GeoService) Search(ctx context.Context, query string, limit int) ([]geo.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.Invalid("q is required")
	}
	if limit <= 0 || limit > maxSearchResults {
		limit = 5
	}
	places, err := gs.geocoder.Search(ctx, query, limit)
	if err != nil {
		gs.logger.Error("Geocoding search failed", "query", query, "error", err)
		return []geo.Place{}, nil
	}
	if places == nil {
		places = []geo.Place{}
	}
	return places, nil
}

// Reverse returns nil when nothing is known about the point or the
// geocoder is unreachable.
func (gs *GeoService) Reverse(ctx context.Context, lat, lng float64) (*geo.Place, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, models.Invalid("coordinates are out of range")
	}
	place, err := gs.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		gs.logger.Error("Reverse geocoding failed", "lat", lat, "lng", lng, "error", err)
		return nil, nil
	}
	return place, nil
}

func (gs *GeoService) Distance(lat1, lng1, lat2, lng2 float64) (*geo.Estimate, error) {
	if !geo.ValidCoordinates(lat1, lng1) || !geo.ValidCoordinates(lat2, lng2) {
		return nil, models.Invalid("coordinates are out of range")
	}
	est := geo.Estimated(lat1, lng1, lat2, lng2)
	return &est, nil
}
