package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	ProfileTable        = "profiles"
	EventsTable         = "events"
	HotelsTable         = "hotels"
	BookingsTable       = "hotel_bookings"
	BandsTable          = "bands"
	BandVotesTable      = "band_votes"
	IncidentsTable      = "incident_reports"
	FamilyGroupsTable   = "family_groups"
	FamilyMembersTable  = "family_members"
	LocationSharesTable = "location_shares"
	LiveUpdatesTable    = "live_updates"
)

type SupabaseRepo struct {
	supabaseClient *supabase.Client
}

func SupabaseNewRepo(supabaseClient *supabase.Client) *SupabaseRepo {
	return &SupabaseRepo{
		supabaseClient: supabaseClient,
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

// decodeRows unmarshals a PostgREST array body.
func decodeRows[T any](raw []byte) ([]*T, error) {
	rows := []*T{}
	if len(raw) == 0 {
		return rows, nil
	}
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rows: %v", err)
	}
	return rows, nil
}

// firstRow returns the single row of a PostgREST array body, or ErrNotFound.
// Supabase returns an array even for single results.
func firstRow[T any](raw []byte) (*T, error) {
	rows, err := decodeRows[T](raw)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}
