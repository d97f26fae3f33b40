package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListHotels(ctx context.Context, filter HotelFilter) ([]*Hotel, int, error) {
	q := su.supabaseClient.From(HotelsTable).Select("*", "exact", false)

	if filter.Search != "" {
		pattern := quoteFilterValue("%" + filter.Search + "%")
		q = q.Or(fmt.Sprintf("name.ilike.%s,address.ilike.%s", pattern, pattern), "")
	}
	var prices []string
	if filter.MinPrice != nil {
		prices = append(prices, "price_min.gte."+formatFloat(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		prices = append(prices, "price_min.lte."+formatFloat(*filter.MaxPrice))
	}
	if len(prices) > 0 {
		q = q.And(strings.Join(prices, ","), "")
	}
	if filter.MinRating != nil {
		q = q.Gte("rating", formatFloat(*filter.MinRating))
	}
	if filter.Amenity != "" {
		q = q.Contains("amenities", []string{filter.Amenity})
	}

	switch filter.Sort {
	case "rating":
		q = q.Order("rating", &postgrest.OrderOpts{Ascending: false})
	case "name":
		q = q.Order("name", &postgrest.OrderOpts{Ascending: true})
	default:
		q = q.Order("price_min", &postgrest.OrderOpts{Ascending: true})
	}

	raw, count, err := q.Range(filter.Offset, filter.Offset+filter.Limit-1, "").Execute()
	if err != nil {
		return nil, 0, classifyPostgrestError("failed to list hotels", err)
	}

	hotels, err := decodeRows[Hotel](raw)
	if err != nil {
		return nil, 0, err
	}
	return hotels, int(count), nil
}

func (su *SupabaseRepo) GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(HotelsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get hotel", err)
	}
	return firstRow[Hotel](raw)
}

var filterValueEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quoteFilterValue wraps a value for a PostgREST logic tree so commas,
// dots and parentheses in it are not read as filter syntax.
func quoteFilterValue(v string) string {
	return `"` + filterValueEscaper.Replace(v) + `"`
}
