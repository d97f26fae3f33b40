package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAttendee = "attendee"
	RoleAdmin    = "admin"
)

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

type Profile struct {
	ID                   uuid.UUID              `json:"id"`
	Email                string                 `json:"email"`
	FullName             string                 `json:"full_name"`
	Phone                string                 `json:"phone"`
	AvatarURL            string                 `json:"avatar_url"`
	Role                 string                 `json:"role"`
	PreferredLanguage    string                 `json:"preferred_language"`
	Preferences          map[string]interface{} `json:"preferences"`
	EmergencyContacts    []EmergencyContact     `json:"emergency_contacts"`
	NotificationSettings map[string]bool        `json:"notification_settings"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

type ProfileRepo interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	// UpsertProfile writes the given columns, creating the row if needed.
	UpsertProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Profile, error)
}
