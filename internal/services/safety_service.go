package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/geo"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/queue"
)

const defaultEmergencyMessage = "Emergency alert raised from the CarnivalXperience app"

type SafetyService struct {
	incidents models.IncidentRepo
	family    models.FamilyRepo
	shares    models.LocationShareRepo
	uploader  helpers.ImageUploader
	publisher queue.Publisher
	logger    *slog.Logger
}

func NewSafetyService(incidents models.IncidentRepo, family models.FamilyRepo, shares models.LocationShareRepo, uploader helpers.ImageUploader, publisher queue.Publisher, logger *slog.Logger) *SafetyService {
	return &SafetyService{
		incidents: incidents,
		family:    family,
		shares:    shares,
		uploader:  uploader,
		publisher: publisher,
		logger:    logger,
	}
}

// RaiseEmergency records a critical incident. Missing coordinates are stored
// as (0,0) so the alert is never dropped for lack of a fix.
func (ss *SafetyService) RaiseEmergency(ctx context.Context, userID uuid.UUID, req dto.EmergencyRequest) (*dto.IncidentResponse, error) {
	var lat, lng float64
	if req.Latitude != nil && req.Longitude != nil {
		if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
			return nil, models.Invalid("coordinates are out of range")
		}
		lat, lng = *req.Latitude, *req.Longitude
	}

	kind := strings.TrimSpace(req.Type)
	if kind == "" {
		kind = models.IncidentTypeEmergency
	}
	if !models.IncidentTypes[kind] {
		return nil, models.Invalid("unknown incident type %q", kind)
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		message = defaultEmergencyMessage
	}

	now := timeNow()
	incident, err := ss.incidents.CreateIncident(ctx, &models.IncidentReport{
		ID:           uuid.New(),
		ReporterID:   userID,
		Type:         kind,
		Severity:     models.SeverityCritical,
		Status:       models.IncidentReported,
		Title:        "Emergency alert",
		Description:  message,
		Latitude:     lat,
		Longitude:    lng,
		Address:      strings.TrimSpace(req.Address),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Images:       []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	ss.logger.Warn("Emergency alert raised", "incident_id", incident.ID, "user_id", userID)
	ss.publishAlert(ctx, queue.SafetyAlertEvent{
		Kind:       queue.AlertEmergency,
		UserID:     userID.String(),
		IncidentID: incident.ID.String(),
		Severity:   string(incident.Severity),
		Message:    incident.Description,
		Latitude:   &incident.Latitude,
		Longitude:  &incident.Longitude,
		OccurredAt: now,
	})

	res := dto.ToIncidentResponse(incident)
	return &res, nil
}

func (ss *SafetyService) ReportIncident(ctx context.Context, userID uuid.UUID, req dto.IncidentRequest) (*dto.IncidentResponse, error) {
	kind := strings.TrimSpace(req.Type)
	if kind == models.IncidentTypeEmergency || !models.IncidentTypes[kind] {
		return nil, models.Invalid("unknown incident type %q", kind)
	}
	severity := models.IncidentSeverity(strings.TrimSpace(req.Severity))
	if severity == "" {
		severity = models.SeverityMedium
	}
	if !severity.Valid() {
		return nil, models.Invalid("unknown severity %q", severity)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, models.Invalid("description is required")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, models.Invalid("latitude and longitude must be sent together")
	}
	var lat, lng float64
	if req.Latitude != nil {
		if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
			return nil, models.Invalid("coordinates are out of range")
		}
		lat, lng = *req.Latitude, *req.Longitude
	}

	images := []string{}
	if len(req.Images) > 0 {
		uploaded, err := ss.uploader.Upload(ctx, helpers.IncidentsFolder, req.Images)
		if err != nil {
			return nil, err
		}
		images = uploaded
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = strings.ReplaceAll(kind, "_", " ") + " incident"
	}

	now := timeNow()
	incident, err := ss.incidents.CreateIncident(ctx, &models.IncidentReport{
		ID:           uuid.New(),
		ReporterID:   userID,
		Type:         kind,
		Severity:     severity,
		Status:       models.IncidentReported,
		Title:        title,
		Description:  description,
		Latitude:     lat,
		Longitude:    lng,
		Address:      strings.TrimSpace(req.Address),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Images:       images,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	res := dto.ToIncidentResponse(incident)
	return &res, nil
}

func (ss *SafetyService) ListIncidents(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]dto.IncidentResponse, int, error) {
	st := models.IncidentStatus(strings.TrimSpace(status))
	if st != "" && !st.Valid() {
		return nil, 0, models.Invalid("unknown status %q", status)
	}
	offset, limit = Page(offset, limit)
	rows, total, err := ss.incidents.ListIncidentsByReporter(ctx, userID, st, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.MapSlice(rows, dto.ToIncidentResponse), total, nil
}

func (ss *SafetyService) CreateFamilyGroup(ctx context.Context, userID uuid.UUID, req dto.FamilyGroupRequest) (*dto.FamilyGroupResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.Invalid("name is required")
	}
	now := timeNow()
	group, err := ss.family.CreateGroup(ctx, &models.FamilyGroup{
		ID:           uuid.New(),
		OwnerID:      userID,
		Name:         name,
		Description:  strings.TrimSpace(req.Description),
		MeetingPoint: strings.TrimSpace(req.MeetingPoint),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	members, err := ss.newMembers(ctx, group.ID, req.Members)
	if err != nil {
		return nil, err
	}
	group.Members, err = ss.family.AddMembers(ctx, members)
	if err != nil {
		return nil, err
	}
	res := dto.ToFamilyGroupResponse(group)
	return &res, nil
}

func (ss *SafetyService) ListFamilyGroups(ctx context.Context, userID uuid.UUID) ([]dto.FamilyGroupResponse, error) {
	groups, err := ss.family.ListGroupsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(groups))
	byID := make(map[uuid.UUID]*models.FamilyGroup, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
		byID[g.ID] = g
	}
	members, err := ss.family.ListMembers(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if g, ok := byID[m.GroupID]; ok {
			g.Members = append(g.Members, m)
		}
	}
	return dto.MapSlice(groups, dto.ToFamilyGroupResponse), nil
}

func (ss *SafetyService) AddFamilyMember(ctx context.Context, userID uuid.UUID, groupID string, req dto.FamilyMemberRequest) (*dto.FamilyMemberResponse, error) {
	group, err := ss.ownedGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	members, err := ss.newMembers(ctx, group.ID, []dto.FamilyMemberRequest{req})
	if err != nil {
		return nil, err
	}
	added, err := ss.family.AddMembers(ctx, members)
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return nil, fmt.Errorf("add family member: no row returned")
	}
	res := dto.ToFamilyMemberResponse(added[0])
	return &res, nil
}

// UpdateFamilyMember applies a partial update. isMissing=true stamps
// last_seen_at and clears found_at; isMissing=false stamps found_at.
func (ss *SafetyService) UpdateFamilyMember(ctx context.Context, userID uuid.UUID, groupID, memberID string, patch dto.FamilyMemberPatch) (*dto.FamilyMemberResponse, error) {
	group, err := ss.ownedGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	mid, err := parseID("memberId", memberID)
	if err != nil {
		return nil, err
	}
	if _, err := ss.family.GetMember(ctx, group.ID, mid); err != nil {
		return nil, err
	}

	now := timeNow()
	fields := map[string]interface{}{"updated_at": now}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, models.Invalid("name cannot be empty")
		}
		fields["name"] = name
	}
	if patch.Phone != nil {
		fields["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if patch.Relationship != nil {
		fields["relationship"] = strings.TrimSpace(*patch.Relationship)
	}
	if patch.Age != nil {
		if *patch.Age < 0 {
			return nil, models.Invalid("age cannot be negative")
		}
		fields["age"] = *patch.Age
	}
	if patch.PhotoURL != nil {
		photo, err := ss.uploadOne(ctx, helpers.FamilyFolder, *patch.PhotoURL)
		if err != nil {
			return nil, err
		}
		fields["photo_url"] = photo
	}
	if patch.Notes != nil {
		fields["notes"] = strings.TrimSpace(*patch.Notes)
	}
	if patch.LastSeenLocation != nil {
		fields["last_seen_location"] = strings.TrimSpace(*patch.LastSeenLocation)
	}
	if (patch.LastSeenLatitude == nil) != (patch.LastSeenLongitude == nil) {
		return nil, models.Invalid("lastSeenLatitude and lastSeenLongitude must be sent together")
	}
	if patch.LastSeenLatitude != nil {
		if !geo.ValidCoordinates(*patch.LastSeenLatitude, *patch.LastSeenLongitude) {
			return nil, models.Invalid("coordinates are out of range")
		}
		fields["last_seen_latitude"] = *patch.LastSeenLatitude
		fields["last_seen_longitude"] = *patch.LastSeenLongitude
	}
	if patch.IsMissing != nil {
		fields["is_missing"] = *patch.IsMissing
		if *patch.IsMissing {
			fields["last_seen_at"] = now
			fields["found_at"] = nil
		} else {
			fields["found_at"] = now
		}
	}

	member, err := ss.family.UpdateMember(ctx, group.ID, mid, fields)
	if err != nil {
		return nil, err
	}

	if patch.IsMissing != nil && *patch.IsMissing {
		ss.logger.Warn("Family member marked missing", "group_id", group.ID, "member_id", member.ID)
		ss.publishAlert(ctx, queue.SafetyAlertEvent{
			Kind:       queue.AlertMemberMissing,
			UserID:     userID.String(),
			GroupID:    group.ID.String(),
			MemberID:   member.ID.String(),
			MemberName: member.Name,
			Message:    member.LastSeenLocation,
			Latitude:   member.LastSeenLatitude,
			Longitude:  member.LastSeenLongitude,
			OccurredAt: now,
		})
	}

	res := dto.ToFamilyMemberResponse(member)
	return &res, nil
}

// ownedGroup hides groups of other users behind ErrNotFound.
func (ss *SafetyService) ownedGroup(ctx context.Context, userID uuid.UUID, groupID string) (*models.FamilyGroup, error) {
	gid, err := parseID("group id", groupID)
	if err != nil {
		return nil, err
	}
	group, err := ss.family.GetGroup(ctx, gid)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, fmt.Errorf("family group %s: %w", groupID, models.ErrNotFound)
	}
	return group, nil
}

func (ss *SafetyService) newMembers(ctx context.Context, groupID uuid.UUID, reqs []dto.FamilyMemberRequest) ([]*models.FamilyMember, error) {
	now := timeNow()
	members := make([]*models.FamilyMember, 0, len(reqs))
	for _, r := range reqs {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, models.Invalid("member name is required")
		}
		if r.Age < 0 {
			return nil, models.Invalid("age cannot be negative")
		}
		photo, err := ss.uploadOne(ctx, helpers.FamilyFolder, r.PhotoURL)
		if err != nil {
			return nil, err
		}
		members = append(members, &models.FamilyMember{
			ID:           uuid.New(),
			GroupID:      groupID,
			Name:         name,
			Phone:        strings.TrimSpace(r.Phone),
			Relationship: strings.TrimSpace(r.Relationship),
			Age:          r.Age,
			PhotoURL:     photo,
			Notes:        strings.TrimSpace(r.Notes),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return members, nil
}

func (ss *SafetyService) uploadOne(ctx context.Context, folder, source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", nil
	}
	urls, err := ss.uploader.Upload(ctx, folder, []string{source})
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// publishAlert never fails the request; the row is already stored.
func (ss *SafetyService) publishAlert(ctx context.Context, ev queue.SafetyAlertEvent) {
	if err := ss.publisher.PublishSafetyAlert(ctx, ev); err != nil {
		ss.logger.Error("Failed to publish safety alert", "kind", ev.Kind, "error", err)
	}
}
