package models

import (
	"context"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

func (su *SupabaseRepo) CreateIncident(ctx context.Context, incident *IncidentReport) (*IncidentReport, error) {
	raw, _, err := su.supabaseClient.From(IncidentsTable).
		Insert(incident, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to create incident report", err)
	}
	return firstRow[IncidentReport](raw)
}

func (su *SupabaseRepo) ListIncidentsByReporter(ctx context.Context, reporterID uuid.UUID, status IncidentStatus, offset, limit int) ([]*IncidentReport, int, error) {
	q := su.supabaseClient.From(IncidentsTable).
		Select("*", "exact", false).
		Eq("reporter_id", reporterID.String())
	if status != "" {
		q = q.Eq("status", string(status))
	}

	raw, count, err := q.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, 0, classifyPostgrestError("failed to list incident reports", err)
	}
	incidents, err := decodeRows[IncidentReport](raw)
	if err != nil {
		return nil, 0, err
	}
	return incidents, int(count), nil
}
