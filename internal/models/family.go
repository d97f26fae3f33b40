package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type FamilyGroup struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	MeetingPoint string    `json:"meeting_point"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Members []*FamilyMember `json:"-"`
}

type FamilyMember struct {
	ID                uuid.UUID  `json:"id"`
	GroupID           uuid.UUID  `json:"group_id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Relationship      string     `json:"relationship"`
	Age               int        `json:"age"`
	PhotoURL          string     `json:"photo_url"`
	Notes             string     `json:"notes"`
	IsMissing         bool       `json:"is_missing"`
	LastSeenAt        *time.Time `json:"last_seen_at"`
	LastSeenLocation  string     `json:"last_seen_location"`
	LastSeenLatitude  *float64   `json:"last_seen_latitude"`
	LastSeenLongitude *float64   `json:"last_seen_longitude"`
	FoundAt           *time.Time `json:"found_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type FamilyRepo interface {
	CreateGroup(ctx context.Context, group *FamilyGroup) (*FamilyGroup, error)
	GetGroup(ctx context.Context, id uuid.UUID) (*FamilyGroup, error)
	ListGroupsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*FamilyGroup, error)
	AddMembers(ctx context.Context, members []*FamilyMember) ([]*FamilyMember, error)
	ListMembers(ctx context.Context, groupIDs []uuid.UUID) ([]*FamilyMember, error)
	GetMember(ctx context.Context, groupID, memberID uuid.UUID) (*FamilyMember, error)
	// UpdateMember applies column updates; a nil value clears the column.
	UpdateMember(ctx context.Context, groupID, memberID uuid.UUID, fields map[string]interface{}) (*FamilyMember, error)
}
