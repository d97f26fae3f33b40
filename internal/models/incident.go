package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

func (s IncidentSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

type IncidentStatus string

const (
	IncidentReported     IncidentStatus = "reported"
	IncidentAcknowledged IncidentStatus = "acknowledged"
	IncidentResponding   IncidentStatus = "responding"
	IncidentResolved     IncidentStatus = "resolved"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentReported, IncidentAcknowledged, IncidentResponding, IncidentResolved:
		return true
	}
	return false
}

const IncidentTypeEmergency = "emergency"

var IncidentTypes = map[string]bool{
	"medical":     true,
	"security":    true,
	"lost_person": true,
	"fire":        true,
	"harassment":  true,
	"theft":       true,
	"other":       true,
	// emergency is only created through the emergency alert route
	IncidentTypeEmergency: true,
}

type IncidentReport struct {
	ID           uuid.UUID        `json:"id"`
	ReporterID   uuid.UUID        `json:"reporter_id"`
	Type         string           `json:"type"`
	Severity     IncidentSeverity `json:"severity"`
	Status       IncidentStatus   `json:"status"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	Address      string           `json:"address"`
	ContactPhone string           `json:"contact_phone"`
	Images       []string         `json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type IncidentRepo interface {
	CreateIncident(ctx context.Context, incident *IncidentReport) (*IncidentReport, error)
	ListIncidentsByReporter(ctx context.Context, reporterID uuid.UUID, status IncidentStatus, offset, limit int) ([]*IncidentReport, int, error)
}
