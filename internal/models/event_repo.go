package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, int, error) {
	q := su.supabaseClient.From(EventsTable).Select("*", "exact", false)

	if filter.Category != "" {
		q = q.Eq("category", filter.Category)
	}
	if filter.Featured != nil {
		q = q.Eq("is_featured", strconv.FormatBool(*filter.Featured))
	}
	if filter.Trending != nil {
		q = q.Eq("is_trending", strconv.FormatBool(*filter.Trending))
	}
	if filter.Live != nil {
		q = q.Eq("is_live", strconv.FormatBool(*filter.Live))
	}
	if filter.Search != "" {
		q = q.Ilike("title", "%"+filter.Search+"%")
	}
	var ranges []string
	if filter.From != nil {
		ranges = append(ranges, "start_time.gte."+filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		ranges = append(ranges, "start_time.lte."+filter.To.UTC().Format(time.RFC3339))
	}
	if b := filter.Bounds; b != nil {
		ranges = append(ranges,
			"latitude.gte."+formatFloat(b.MinLat), "latitude.lte."+formatFloat(b.MaxLat),
			"longitude.gte."+formatFloat(b.MinLng), "longitude.lte."+formatFloat(b.MaxLng),
		)
	}
	// params are keyed by column, so two bounds on one column go through and=
	if len(ranges) > 0 {
		q = q.And(strings.Join(ranges, ","), "")
	}

	raw, count, err := q.
		Order("start_time", &postgrest.OrderOpts{Ascending: true}).
		Range(filter.Offset, filter.Offset+filter.Limit-1, "").
		Execute()
	if err != nil {
		return nil, 0, classifyPostgrestError("failed to list events", err)
	}

	events, err := decodeRows[Event](raw)
	if err != nil {
		return nil, 0, err
	}
	return events, int(count), nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (su *SupabaseRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(EventsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get event", err)
	}
	return firstRow[Event](raw)
}
