package dto

import (
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type EmergencyRequest struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Message      string   `json:"message"`
	Type         string   `json:"type"`
	Address      string   `json:"address"`
	ContactPhone string   `json:"contactPhone"`
}

type IncidentRequest struct {
	Type         string   `json:"type" binding:"required"`
	Severity     string   `json:"severity"`
	Title        string   `json:"title"`
	Description  string   `json:"description" binding:"required"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Address      string   `json:"address"`
	ContactPhone string   `json:"contactPhone"`
	Images       []string `json:"images"`
}

type LocationResponse struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

type IncidentResponse struct {
	ID           string           `json:"id"`
	ReporterID   string           `json:"reporterId"`
	Type         string           `json:"type"`
	Severity     string           `json:"severity"`
	Status       string           `json:"status"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Location     LocationResponse `json:"location"`
	Address      string           `json:"address"`
	ContactPhone string           `json:"contactPhone"`
	Images       []string         `json:"images"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func ToIncidentResponse(in *models.IncidentReport) IncidentResponse {
	return IncidentResponse{
		ID:           in.ID.String(),
		ReporterID:   in.ReporterID.String(),
		Type:         in.Type,
		Severity:     string(in.Severity),
		Status:       string(in.Status),
		Title:        in.Title,
		Description:  in.Description,
		Location:     LocationResponse{Latitude: in.Latitude, Longitude: in.Longitude},
		Address:      in.Address,
		ContactPhone: in.ContactPhone,
		Images:       nonNil(in.Images),
		CreatedAt:    in.CreatedAt,
		UpdatedAt:    in.UpdatedAt,
	}
}

type FamilyMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
	Age          int    `json:"age"`
	PhotoURL     string `json:"photoUrl"`
	Notes        string `json:"notes"`
}

type FamilyGroupRequest struct {
	Name         string                `json:"name" binding:"required"`
	Description  string                `json:"description"`
	MeetingPoint string                `json:"meetingPoint"`
	Members      []FamilyMemberRequest `json:"members" binding:"dive"`
}

// FamilyMemberPatch only touches the fields that are present.
type FamilyMemberPatch struct {
	Name              *string  `json:"name"`
	Phone             *string  `json:"phone"`
	Relationship      *string  `json:"relationship"`
	Age               *int     `json:"age"`
	PhotoURL          *string  `json:"photoUrl"`
	Notes             *string  `json:"notes"`
	IsMissing         *bool    `json:"isMissing"`
	LastSeenLocation  *string  `json:"lastSeenLocation"`
	LastSeenLatitude  *float64 `json:"lastSeenLatitude"`
	LastSeenLongitude *float64 `json:"lastSeenLongitude"`
}

type FamilyMemberResponse struct {
	ID                string     `json:"id"`
	GroupID           string     `json:"groupId"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Relationship      string     `json:"relationship"`
	Age               int        `json:"age"`
	PhotoURL          string     `json:"photoUrl"`
	Notes             string     `json:"notes"`
	IsMissing         bool       `json:"isMissing"`
	LastSeenAt        *time.Time `json:"lastSeenAt"`
	LastSeenLocation  string     `json:"lastSeenLocation"`
	LastSeenLatitude  *float64   `json:"lastSeenLatitude"`
	LastSeenLongitude *float64   `json:"lastSeenLongitude"`
	FoundAt           *time.Time `json:"foundAt"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func ToFamilyMemberResponse(m *models.FamilyMember) FamilyMemberResponse {
	return FamilyMemberResponse{
		ID:                m.ID.String(),
		GroupID:           m.GroupID.String(),
		Name:              m.Name,
		Phone:             m.Phone,
		Relationship:      m.Relationship,
		Age:               m.Age,
		PhotoURL:          m.PhotoURL,
		Notes:             m.Notes,
		IsMissing:         m.IsMissing,
		LastSeenAt:        m.LastSeenAt,
		LastSeenLocation:  m.LastSeenLocation,
		LastSeenLatitude:  m.LastSeenLatitude,
		LastSeenLongitude: m.LastSeenLongitude,
		FoundAt:           m.FoundAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

type FamilyGroupResponse struct {
	ID           string                 `json:"id"`
	OwnerID      string                 `json:"ownerId"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	MeetingPoint string                 `json:"meetingPoint"`
	Members      []FamilyMemberResponse `json:"members"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func ToFamilyGroupResponse(g *models.FamilyGroup) FamilyGroupResponse {
	return FamilyGroupResponse{
		ID:           g.ID.String(),
		OwnerID:      g.OwnerID.String(),
		Name:         g.Name,
		Description:  g.Description,
		MeetingPoint: g.MeetingPoint,
		Members:      MapSlice(g.Members, ToFamilyMemberResponse),
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

type LocationShareRequest struct {
	Name            string   `json:"name"`
	Latitude        *float64 `json:"latitude" binding:"required"`
	Longitude       *float64 `json:"longitude" binding:"required"`
	Accuracy        *float64 `json:"accuracy"`
	DurationMinutes int      `json:"durationMinutes"`
}

type LocationUpdateRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Accuracy  *float64 `json:"accuracy"`
}

type LocationPointResponse struct {
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	RecordedAt time.Time `json:"recordedAt"`
}

type LocationShareResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"userId"`
	ShareCode       string                  `json:"shareCode"`
	Name            string                  `json:"name"`
	CurrentLocation LocationResponse        `json:"currentLocation"`
	Accuracy        *float64                `json:"accuracy"`
	History         []LocationPointResponse `json:"history"`
	IsActive        bool                    `json:"isActive"`
	ExpiresAt       time.Time               `json:"expiresAt"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func ToLocationShareResponse(s *models.LocationShare) LocationShareResponse {
	history := make([]LocationPointResponse, 0, len(s.History))
	for _, p := range s.History {
		history = append(history, LocationPointResponse{Latitude: p.Latitude, Longitude: p.Longitude, RecordedAt: p.RecordedAt})
	}
	return LocationShareResponse{
		ID:              s.ID.String(),
		UserID:          s.UserID.String(),
		ShareCode:       s.ShareCode,
		Name:            s.Name,
		CurrentLocation: LocationResponse{Latitude: s.CurrentLatitude, Longitude: s.CurrentLongitude},
		Accuracy:        s.Accuracy,
		History:         history,
		IsActive:        s.IsActive,
		ExpiresAt:       s.ExpiresAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
