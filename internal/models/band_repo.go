package models

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) ListBands(ctx context.Context, year int) ([]*Band, error) {
	raw, _, err := su.supabaseClient.From(BandsTable).
		Select("*", "", false).
		Eq("year", strconv.Itoa(year)).
		Order("vote_count", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to list bands", err)
	}
	return decodeRows[Band](raw)
}

func (su *SupabaseRepo) GetBand(ctx context.Context, id uuid.UUID, year int) (*Band, error) {
	raw, _, err := su.supabaseClient.From(BandsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Eq("year", strconv.Itoa(year)).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get band", err)
	}
	return firstRow[Band](raw)
}

func (su *SupabaseRepo) InsertVote(ctx context.Context, vote *BandVote) error {
	_, _, err := su.supabaseClient.From(BandVotesTable).
		Insert(vote, false, "", "minimal", "").
		Execute()
	if err != nil {
		return classifyPostgrestError("failed to record vote", err)
	}
	return nil
}
