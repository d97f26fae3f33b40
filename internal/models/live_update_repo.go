package models

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListLiveUpdates(ctx context.Context, filter LiveUpdateFilter) ([]*LiveUpdate, error) {
	q := su.supabaseClient.From(LiveUpdatesTable).Select("*", "", false)
	if filter.Category != "" {
		q = q.Eq("category", filter.Category)
	}
	if filter.EventID != nil {
		q = q.Eq("event_id", filter.EventID.String())
	}
	if filter.Since != nil {
		q = q.Gt("created_at", filter.Since.UTC().Format(time.RFC3339))
	}

	raw, _, err := q.
		Order("is_pinned", &postgrest.OrderOpts{Ascending: false}).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(filter.Limit, "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to list live updates", err)
	}
	return decodeRows[LiveUpdate](raw)
}

func (su *SupabaseRepo) CreateLiveUpdate(ctx context.Context, update *LiveUpdate) (*LiveUpdate, error) {
	raw, _, err := su.supabaseClient.From(LiveUpdatesTable).
		Insert(update, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to create live update", err)
	}
	return firstRow[LiveUpdate](raw)
}
