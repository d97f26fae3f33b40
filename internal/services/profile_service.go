package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/i18n"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type ProfileService struct {
	profiles models.ProfileRepo
	uploader helpers.ImageUploader
}

func NewProfileService(profiles models.ProfileRepo, uploader helpers.ImageUploader) *ProfileService {
	return &ProfileService{profiles: profiles, uploader: uploader}
}

// Role returns the caller's stored role, attendee when no profile exists yet.
func (ps *ProfileService) Role(ctx context.Context, userID uuid.UUID) (string, error) {
	p, err := ps.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.RoleAttendee, nil
		}
		return "", err
	}
	if p.Role == "" {
		return models.RoleAttendee, nil
	}
	return p.Role, nil
}

func (ps *ProfileService) GetProfile(ctx context.Context, caller *helpers.EnhancedClaims, userID string) (*dto.ProfileResponse, error) {
	id, err := selfOnly(caller, userID)
	if err != nil {
		return nil, err
	}
	p, err := ps.load(ctx, id, caller.Email)
	if err != nil {
		return nil, err
	}
	res := dto.ToProfileResponse(p)
	return &res, nil
}

func (ps *ProfileService) UpdateProfile(ctx context.Context, caller *helpers.EnhancedClaims, userID string, patch dto.ProfilePatch) (*dto.ProfileResponse, error) {
	id, err := selfOnly(caller, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{"updated_at": timeNow()}
	if caller.Email != "" {
		fields["email"] = caller.Email
	}
	if patch.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*patch.FullName)
	}
	if patch.Phone != nil {
		fields["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.AvatarURL != nil {
		avatar := strings.TrimSpace(*patch.AvatarURL)
		if avatar != "" {
			urls, err := ps.uploader.Upload(ctx, helpers.AvatarFolder, []string{avatar})
			if err != nil {
				return nil, err
			}
			if len(urls) > 0 {
				avatar = urls[0]
			}
		}
		fields["avatar_url"] = avatar
	}
	if patch.PreferredLanguage != nil {
		lang := i18n.Normalize(*patch.PreferredLanguage)
		if !i18n.IsSupported(lang) {
			return nil, models.Invalid("unsupported language %q", *patch.PreferredLanguage)
		}
		fields["preferred_language"] = lang
	}
	if patch.Preferences != nil {
		fields["preferences"] = patch.Preferences
	}
	if patch.EmergencyContacts != nil {
		for i, c := range *patch.EmergencyContacts {
			if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Phone) == "" {
				return nil, models.Invalid("emergency contact %d needs a name and phone", i+1)
			}
		}
		fields["emergency_contacts"] = dto.ToEmergencyContacts(*patch.EmergencyContacts)
	}
	if patch.NotificationSettings != nil {
		fields["notification_settings"] = patch.NotificationSettings
	}

	p, err := ps.profiles.UpsertProfile(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	res := dto.ToProfileResponse(p)
	return &res, nil
}

func (ps *ProfileService) GetLanguage(ctx context.Context, caller *helpers.EnhancedClaims, userID string) (*dto.LanguageResponse, error) {
	id, err := selfOnly(caller, userID)
	if err != nil {
		return nil, err
	}
	p, err := ps.load(ctx, id, caller.Email)
	if err != nil {
		return nil, err
	}
	return &dto.LanguageResponse{UserID: id.String(), Language: p.PreferredLanguage}, nil
}

func (ps *ProfileService) SetLanguage(ctx context.Context, caller *helpers.EnhancedClaims, userID, language string) (*dto.LanguageResponse, error) {
	id, err := selfOnly(caller, userID)
	if err != nil {
		return nil, err
	}
	lang := i18n.Normalize(language)
	if !i18n.IsSupported(lang) {
		return nil, models.Invalid("unsupported language %q", language)
	}
	fields := map[string]interface{}{
		"preferred_language": lang,
		"updated_at":         timeNow(),
	}
	if caller.Email != "" {
		fields["email"] = caller.Email
	}
	p, err := ps.profiles.UpsertProfile(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	return &dto.LanguageResponse{UserID: id.String(), Language: p.PreferredLanguage}, nil
}

// load returns the stored profile or the default shape for a user that has
// never saved one.
func (ps *ProfileService) load(ctx context.Context, id uuid.UUID, email string) (*models.Profile, error) {
	p, err := ps.profiles.GetProfile(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return &models.Profile{
			ID:                id,
			Email:             email,
			Role:              models.RoleAttendee,
			PreferredLanguage: i18n.DefaultLanguage,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = i18n.DefaultLanguage
	}
	return p, nil
}

func selfOnly(caller *helpers.EnhancedClaims, userID string) (uuid.UUID, error) {
	id, err := parseID("userId", userID)
	if err != nil {
		return uuid.Nil, err
	}
	if caller == nil || !caller.IsOwner(id.String()) {
		return uuid.Nil, models.ErrForbidden
	}
	return id, nil
}
