package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) CreateShare(ctx context.Context, share *LocationShare) (*LocationShare, error) {
	raw, _, err := su.supabaseClient.From(LocationSharesTable).
		Insert(share, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to create location share", err)
	}
	return firstRow[LocationShare](raw)
}

func (su *SupabaseRepo) GetShare(ctx context.Context, id uuid.UUID) (*LocationShare, error) {
	raw, _, err := su.supabaseClient.From(LocationSharesTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get location share", err)
	}
	return firstRow[LocationShare](raw)
}

func (su *SupabaseRepo) GetActiveShareByCode(ctx context.Context, code string, now time.Time) (*LocationShare, error) {
	raw, _, err := su.supabaseClient.From(LocationSharesTable).
		Select("*", "", false).
		Eq("share_code", code).
		Eq("is_active", "true").
		Gt("expires_at", now.UTC().Format(time.RFC3339)).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get location share by code", err)
	}
	return firstRow[LocationShare](raw)
}

func (su *SupabaseRepo) ListActiveShares(ctx context.Context, userID uuid.UUID, now time.Time) ([]*LocationShare, error) {
	raw, _, err := su.supabaseClient.From(LocationSharesTable).
		Select("*", "", false).
		Eq("user_id", userID.String()).
		Eq("is_active", "true").
		Gt("expires_at", now.UTC().Format(time.RFC3339)).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to list location shares", err)
	}
	return decodeRows[LocationShare](raw)
}

func (su *SupabaseRepo) UpdateShare(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*LocationShare, error) {
	raw, _, err := su.supabaseClient.From(LocationSharesTable).
		Update(fields, "representation", "").
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to update location share", err)
	}
	return firstRow[LocationShare](raw)
}
