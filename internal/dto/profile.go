package dto

import (
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type EmergencyContactDTO struct {
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Relationship string `json:"relationship"`
}

type ProfilePatch struct {
	FullName             *string                `json:"fullName"`
	Phone                *string                `json:"phone"`
	AvatarURL            *string                `json:"avatarUrl"`
	PreferredLanguage    *string                `json:"preferredLanguage"`
	Preferences          map[string]interface{} `json:"preferences"`
	EmergencyContacts    *[]EmergencyContactDTO `json:"emergencyContacts"`
	NotificationSettings map[string]bool        `json:"notificationSettings"`
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type LanguageResponse struct {
	UserID   string `json:"userId"`
	Language string `json:"language"`
}

type ProfileResponse struct {
	ID                   string                 `json:"id"`
	Email                string                 `json:"email"`
	FullName             string                 `json:"fullName"`
	Phone                string                 `json:"phone"`
	AvatarURL            string                 `json:"avatarUrl"`
	Role                 string                 `json:"role"`
	PreferredLanguage    string                 `json:"preferredLanguage"`
	Preferences          map[string]interface{} `json:"preferences"`
	EmergencyContacts    []EmergencyContactDTO  `json:"emergencyContacts"`
	NotificationSettings map[string]bool        `json:"notificationSettings"`
	CreatedAt            *time.Time             `json:"createdAt"`
	UpdatedAt            *time.Time             `json:"updatedAt"`
}

func ToProfileResponse(p *models.Profile) ProfileResponse {
	contacts := make([]EmergencyContactDTO, 0, len(p.EmergencyContacts))
	for _, c := range p.EmergencyContacts {
		contacts = append(contacts, EmergencyContactDTO{Name: c.Name, Phone: c.Phone, Relationship: c.Relationship})
	}
	prefs := p.Preferences
	if prefs == nil {
		prefs = map[string]interface{}{}
	}
	notify := p.NotificationSettings
	if notify == nil {
		notify = map[string]bool{}
	}
	res := ProfileResponse{
		ID:                   p.ID.String(),
		Email:                p.Email,
		FullName:             p.FullName,
		Phone:                p.Phone,
		AvatarURL:            p.AvatarURL,
		Role:                 p.Role,
		PreferredLanguage:    p.PreferredLanguage,
		Preferences:          prefs,
		EmergencyContacts:    contacts,
		NotificationSettings: notify,
	}
	if !p.CreatedAt.IsZero() {
		res.CreatedAt = &p.CreatedAt
	}
	if !p.UpdatedAt.IsZero() {
		res.UpdatedAt = &p.UpdatedAt
	}
	return res
}

func ToEmergencyContacts(in []EmergencyContactDTO) []models.EmergencyContact {
	out := make([]models.EmergencyContact, 0, len(in))
	for _, c := range in {
		out = append(out, models.EmergencyContact{Name: c.Name, Phone: c.Phone, Relationship: c.Relationship})
	}
	return out
}
