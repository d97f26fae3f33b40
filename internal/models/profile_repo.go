package models

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

func (su *SupabaseRepo) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}

	raw, _, err := su.supabaseClient.From(ProfileTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get profile", err)
	}
	return firstRow[Profile](raw)
}

func (su *SupabaseRepo) UpsertProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Profile, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("invalid UUID")
	}
	if len(fields) == 0 {
		return nil, Invalid("no fields to update")
	}

	row := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		row[k] = v
	}
	row["id"] = id.String()

	raw, _, err := su.supabaseClient.From(ProfileTable).
		Insert(row, true, "id", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to update profile", err)
	}
	return firstRow[Profile](raw)
}
