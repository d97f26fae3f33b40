package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo keeps every table in process. It enforces the same constraints
// as the migrations: one vote per (user_id, year), unique share codes and
// room inventory holds on booking insert.
type MemoryRepo struct {
	mu sync.RWMutex

	profiles    map[uuid.UUID]*Profile
	events      map[uuid.UUID]*Event
	hotels      map[uuid.UUID]*Hotel
	bookings    map[uuid.UUID]*HotelBooking
	bands       map[uuid.UUID]*Band
	votes       map[voteKey]*BandVote
	incidents   map[uuid.UUID]*IncidentReport
	groups      map[uuid.UUID]*FamilyGroup
	members     map[uuid.UUID]*FamilyMember
	shares      map[uuid.UUID]*LocationShare
	shareCodes  map[string]uuid.UUID
	liveUpdates map[uuid.UUID]*LiveUpdate
	sessions    map[primitive.ObjectID]*ConciergeSession
	favourites  map[string]*Favourite
}

type voteKey struct {
	userID uuid.UUID
	year   int
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles:    make(map[uuid.UUID]*Profile),
		events:      make(map[uuid.UUID]*Event),
		hotels:      make(map[uuid.UUID]*Hotel),
		bookings:    make(map[uuid.UUID]*HotelBooking),
		bands:       make(map[uuid.UUID]*Band),
		votes:       make(map[voteKey]*BandVote),
		incidents:   make(map[uuid.UUID]*IncidentReport),
		groups:      make(map[uuid.UUID]*FamilyGroup),
		members:     make(map[uuid.UUID]*FamilyMember),
		shares:      make(map[uuid.UUID]*LocationShare),
		shareCodes:  make(map[string]uuid.UUID),
		liveUpdates: make(map[uuid.UUID]*LiveUpdate),
		sessions:    make(map[primitive.ObjectID]*ConciergeSession),
		favourites:  make(map[string]*Favourite),
	}
}

// deepCopy round-trips through JSON so callers never share slices or maps
// with the stored row.
func deepCopy[T any](v *T) *T {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memory repo: copy %T: %v", v, err))
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		panic(fmt.Sprintf("memory repo: copy %T: %v", v, err))
	}
	return out
}

// applyColumns overlays column updates the way a PostgREST PATCH would.
func applyColumns[T any](row *T, fields map[string]interface{}) (*T, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	cols := map[string]interface{}{}
	if err := json.Unmarshal(raw, &cols); err != nil {
		return nil, err
	}
	for k, v := range fields {
		cols[k] = v
	}
	raw, err = json.Marshal(cols)
	if err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("invalid column update: %v", err)
	}
	return out, nil
}

func paginate[T any](rows []*T, offset, limit int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []*T{}
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// Seeding

func (m *MemoryRepo) PutEvent(e *Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.events[e.ID] = deepCopy(e)
}

func (m *MemoryRepo) PutHotel(h *Hotel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	m.hotels[h.ID] = deepCopy(h)
}

func (m *MemoryRepo) PutBand(b *Band) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.bands[b.ID] = deepCopy(b)
}

func (m *MemoryRepo) PutProfile(p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = deepCopy(p)
}

// Events

func (m *MemoryRepo) ListEvents(ctx context.Context, filter EventFilter) ([]*Event, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*Event{}
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Featured != nil && e.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Trending != nil && e.IsTrending != *filter.Trending {
			continue
		}
		if filter.Live != nil && e.IsLive != *filter.Live {
			continue
		}
		if filter.Search != "" && !containsFold(e.Title, filter.Search) {
			continue
		}
		if filter.From != nil && e.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.StartTime.After(*filter.To) {
			continue
		}
		if filter.Bounds != nil && !filter.Bounds.Contains(e.Latitude, e.Longitude) {
			continue
		}
		rows = append(rows, deepCopy(e))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].StartTime.Before(rows[j].StartTime) })
	return paginate(rows, filter.Offset, filter.Limit), len(rows), nil
}

func (m *MemoryRepo) GetEventByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(e), nil
}

// Hotels

func (m *MemoryRepo) ListHotels(ctx context.Context, filter HotelFilter) ([]*Hotel, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*Hotel{}
	for _, h := range m.hotels {
		if filter.Search != "" && !containsFold(h.Name, filter.Search) && !containsFold(h.Address, filter.Search) {
			continue
		}
		if filter.MinPrice != nil && h.PriceMin < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && h.PriceMin > *filter.MaxPrice {
			continue
		}
		if filter.MinRating != nil && h.Rating < *filter.MinRating {
			continue
		}
		if filter.Amenity != "" {
			found := false
			for _, a := range h.Amenities {
				if a == filter.Amenity {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		rows = append(rows, deepCopy(h))
	}

	switch filter.Sort {
	case "rating":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Rating > rows[j].Rating })
	case "name":
		sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	default:
		sort.Slice(rows, func(i, j int) bool { return rows[i].PriceMin < rows[j].PriceMin })
	}
	return paginate(rows, filter.Offset, filter.Limit), len(rows), nil
}

func (m *MemoryRepo) GetHotelByID(ctx context.Context, id uuid.UUID) (*Hotel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hotels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(h), nil
}

// Bookings

func (m *MemoryRepo) CreateBooking(ctx context.Context, booking *HotelBooking) (*HotelBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hotel, ok := m.hotels[booking.HotelID]
	if !ok {
		return nil, fmt.Errorf("failed to create booking: %w", ErrNotFound)
	}
	for _, b := range m.bookings {
		if b.BookingReference == booking.BookingReference {
			return nil, fmt.Errorf("failed to create booking: %w", ErrConflict)
		}
	}
	// same hold as the reserve_room_inventory trigger
	for i := range hotel.RoomTypes {
		rt := &hotel.RoomTypes[i]
		if rt.Type != booking.RoomType {
			continue
		}
		if rt.Available < booking.Rooms {
			return nil, fmt.Errorf("failed to create booking: %w", ErrNoAvailability)
		}
		rt.Available -= booking.Rooms
	}

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	m.bookings[booking.ID] = deepCopy(booking)
	return deepCopy(booking), nil
}

func (m *MemoryRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*HotelBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(b), nil
}

func (m *MemoryRepo) bookingByReference(reference string) *HotelBooking {
	for _, b := range m.bookings {
		if b.BookingReference == reference {
			return b
		}
	}
	return nil
}

func (m *MemoryRepo) GetBookingByReference(ctx context.Context, reference string) (*HotelBooking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b := m.bookingByReference(reference)
	if b == nil {
		return nil, ErrNotFound
	}
	return deepCopy(b), nil
}

func (m *MemoryRepo) ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*HotelBooking, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*HotelBooking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			rows = append(rows, deepCopy(b))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return paginate(rows, offset, limit), len(rows), nil
}

func (m *MemoryRepo) MarkBookingPaid(ctx context.Context, reference, paymentReference string, paidAt time.Time) (*HotelBooking, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.bookingByReference(reference)
	if b == nil {
		return nil, false, ErrNotFound
	}
	if b.PaymentStatus == PaymentPaid {
		return deepCopy(b), false, nil
	}
	at := paidAt.UTC()
	b.PaymentStatus = PaymentPaid
	b.Status = BookingConfirmed
	b.PaymentReference = paymentReference
	b.PaidAt = &at
	b.UpdatedAt = at
	return deepCopy(b), true, nil
}

func (m *MemoryRepo) MarkBookingPaymentFailed(ctx context.Context, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.bookingByReference(reference)
	if b == nil {
		return ErrNotFound
	}
	if b.PaymentStatus == PaymentPending {
		b.PaymentStatus = PaymentFailed
		b.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// Bands

func (m *MemoryRepo) ListBands(ctx context.Context, year int) ([]*Band, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*Band{}
	for _, b := range m.bands {
		if b.Year == year {
			rows = append(rows, deepCopy(b))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].VoteCount > rows[j].VoteCount })
	return rows, nil
}

func (m *MemoryRepo) GetBand(ctx context.Context, id uuid.UUID, year int) (*Band, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bands[id]
	if !ok || b.Year != year {
		return nil, ErrNotFound
	}
	return deepCopy(b), nil
}

func (m *MemoryRepo) InsertVote(ctx context.Context, vote *BandVote) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := voteKey{userID: vote.UserID, year: vote.Year}
	if _, ok := m.votes[key]; ok {
		return fmt.Errorf("failed to record vote: %w", ErrConflict)
	}
	band, ok := m.bands[vote.BandID]
	if !ok {
		return fmt.Errorf("failed to record vote: %w", ErrNotFound)
	}
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	m.votes[key] = deepCopy(vote)
	band.VoteCount++
	return nil
}

// Incidents

func (m *MemoryRepo) CreateIncident(ctx context.Context, incident *IncidentReport) (*IncidentReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if _, ok := m.incidents[incident.ID]; ok {
		return nil, fmt.Errorf("failed to create incident: %w", ErrConflict)
	}
	m.incidents[incident.ID] = deepCopy(incident)
	return deepCopy(incident), nil
}

func (m *MemoryRepo) ListIncidentsByReporter(ctx context.Context, reporterID uuid.UUID, status IncidentStatus, offset, limit int) ([]*IncidentReport, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*IncidentReport{}
	for _, in := range m.incidents {
		if in.ReporterID != reporterID {
			continue
		}
		if status != "" && in.Status != status {
			continue
		}
		rows = append(rows, deepCopy(in))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return paginate(rows, offset, limit), len(rows), nil
}

// Family

func (m *MemoryRepo) CreateGroup(ctx context.Context, group *FamilyGroup) (*FamilyGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	stored := deepCopy(group)
	stored.Members = nil
	m.groups[group.ID] = stored
	return deepCopy(stored), nil
}

func (m *MemoryRepo) GetGroup(ctx context.Context, id uuid.UUID) (*FamilyGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(g), nil
}

func (m *MemoryRepo) ListGroupsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*FamilyGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*FamilyGroup{}
	for _, g := range m.groups {
		if g.OwnerID == ownerID {
			rows = append(rows, deepCopy(g))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (m *MemoryRepo) AddMembers(ctx context.Context, members []*FamilyMember) ([]*FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, fm := range members {
		if _, ok := m.groups[fm.GroupID]; !ok {
			return nil, fmt.Errorf("failed to add family members: %w", ErrNotFound)
		}
	}
	out := make([]*FamilyMember, 0, len(members))
	for _, fm := range members {
		if fm.ID == uuid.Nil {
			fm.ID = uuid.New()
		}
		m.members[fm.ID] = deepCopy(fm)
		out = append(out, deepCopy(fm))
	}
	return out, nil
}

func (m *MemoryRepo) ListMembers(ctx context.Context, groupIDs []uuid.UUID) ([]*FamilyMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}
	rows := []*FamilyMember{}
	for _, fm := range m.members {
		if wanted[fm.GroupID] {
			rows = append(rows, deepCopy(fm))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (m *MemoryRepo) GetMember(ctx context.Context, groupID, memberID uuid.UUID) (*FamilyMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fm, ok := m.members[memberID]
	if !ok || fm.GroupID != groupID {
		return nil, ErrNotFound
	}
	return deepCopy(fm), nil
}

func (m *MemoryRepo) UpdateMember(ctx context.Context, groupID, memberID uuid.UUID, fields map[string]interface{}) (*FamilyMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fm, ok := m.members[memberID]
	if !ok || fm.GroupID != groupID {
		return nil, ErrNotFound
	}
	updated, err := applyColumns(fm, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update family member: %v", err)
	}
	m.members[memberID] = updated
	return deepCopy(updated), nil
}

// Location shares

func (m *MemoryRepo) CreateShare(ctx context.Context, share *LocationShare) (*LocationShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.shareCodes[share.ShareCode]; taken {
		return nil, fmt.Errorf("failed to create location share: %w", ErrConflict)
	}
	if share.ID == uuid.Nil {
		share.ID = uuid.New()
	}
	m.shares[share.ID] = deepCopy(share)
	m.shareCodes[share.ShareCode] = share.ID
	return deepCopy(share), nil
}

func (m *MemoryRepo) GetShare(ctx context.Context, id uuid.UUID) (*LocationShare, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.shares[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(s), nil
}

func (m *MemoryRepo) GetActiveShareByCode(ctx context.Context, code string, now time.Time) (*LocationShare, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.shareCodes[code]
	if !ok {
		return nil, ErrNotFound
	}
	s := m.shares[id]
	if !s.Live(now) {
		return nil, ErrNotFound
	}
	return deepCopy(s), nil
}

func (m *MemoryRepo) ListActiveShares(ctx context.Context, userID uuid.UUID, now time.Time) ([]*LocationShare, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*LocationShare{}
	for _, s := range m.shares {
		if s.UserID == userID && s.Live(now) {
			rows = append(rows, deepCopy(s))
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (m *MemoryRepo) UpdateShare(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*LocationShare, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.shares[id]
	if !ok {
		return nil, ErrNotFound
	}
	updated, err := applyColumns(s, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update location share: %v", err)
	}
	if updated.ShareCode != s.ShareCode {
		if _, taken := m.shareCodes[updated.ShareCode]; taken {
			return nil, fmt.Errorf("failed to update location share: %w", ErrConflict)
		}
		delete(m.shareCodes, s.ShareCode)
		m.shareCodes[updated.ShareCode] = id
	}
	m.shares[id] = updated
	return deepCopy(updated), nil
}

// Live updates

func (m *MemoryRepo) ListLiveUpdates(ctx context.Context, filter LiveUpdateFilter) ([]*LiveUpdate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*LiveUpdate{}
	for _, u := range m.liveUpdates {
		if filter.Category != "" && u.Category != filter.Category {
			continue
		}
		if filter.EventID != nil && (u.EventID == nil || *u.EventID != *filter.EventID) {
			continue
		}
		if filter.Since != nil && !u.CreatedAt.After(*filter.Since) {
			continue
		}
		rows = append(rows, deepCopy(u))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].IsPinned != rows[j].IsPinned {
			return rows[i].IsPinned
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return paginate(rows, 0, filter.Limit), nil
}

func (m *MemoryRepo) CreateLiveUpdate(ctx context.Context, update *LiveUpdate) (*LiveUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if update.ID == uuid.Nil {
		update.ID = uuid.New()
	}
	m.liveUpdates[update.ID] = deepCopy(update)
	return deepCopy(update), nil
}

// Profiles

func (m *MemoryRepo) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(p), nil
}

func (m *MemoryRepo) UpsertProfile(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Profile, error) {
	if len(fields) == 0 {
		return nil, Invalid("no fields to update")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		now := time.Now().UTC()
		p = &Profile{ID: id, Role: RoleAttendee, CreatedAt: now, UpdatedAt: now}
	}
	updated, err := applyColumns(p, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %v", err)
	}
	updated.ID = id
	m.profiles[id] = updated
	return deepCopy(updated), nil
}

// Concierge sessions

func (m *MemoryRepo) CreateSession(ctx context.Context, session *ConciergeSession) (*ConciergeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	if session.Messages == nil {
		session.Messages = []ConciergeMessage{}
	}
	session.MessageCount = len(session.Messages)
	m.sessions[session.ID] = deepCopy(session)
	return deepCopy(session), nil
}

func (m *MemoryRepo) ListSessions(ctx context.Context, userID string) ([]*ConciergeSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := []*ConciergeSession{}
	for _, s := range m.sessions {
		if s.UserID != userID {
			continue
		}
		c := deepCopy(s)
		c.Messages = nil
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UpdatedAt.After(rows[j].UpdatedAt) })
	return rows, nil
}

func (m *MemoryRepo) GetSession(ctx context.Context, id primitive.ObjectID) (*ConciergeSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return deepCopy(s), nil
}

func (m *MemoryRepo) UpdateSession(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) (*ConciergeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if title, ok := fields["title"].(string); ok {
		s.Title = title
	}
	if status, ok := fields["status"].(string); ok {
		s.Status = status
	}
	s.UpdatedAt = time.Now().UTC()
	return deepCopy(s), nil
}

func (m *MemoryRepo) AppendMessages(ctx context.Context, id primitive.ObjectID, messages ...ConciergeMessage) (*ConciergeSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Messages = append(s.Messages, messages...)
	s.MessageCount = len(s.Messages)
	s.UpdatedAt = time.Now().UTC()
	return deepCopy(s), nil
}

// Favourites

func (m *MemoryRepo) AddToFavourites(ctx context.Context, userId uuid.UUID, itemId string, itemType string) (*Favourite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	fav, ok := m.favourites[userId.String()]
	if !ok {
		fav = &Favourite{
			ID:        primitive.NewObjectID(),
			UserID:    userId.String(),
			Items:     map[string]FavouriteItem{},
			CreatedAt: now,
		}
		m.favourites[userId.String()] = fav
	}
	fav.Items[itemId] = FavouriteItem{ItemID: itemId, ItemType: itemType, AddedAt: now}
	fav.UpdatedAt = now
	return deepCopy(fav), nil
}

func (m *MemoryRepo) RemoveFromFavourites(ctx context.Context, userId uuid.UUID, itemId string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fav, ok := m.favourites[userId.String()]; ok {
		delete(fav.Items, itemId)
		fav.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (m *MemoryRepo) GetFavouritesByUserID(ctx context.Context, userId uuid.UUID) (*Favourite, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fav, ok := m.favourites[userId.String()]
	if !ok {
		return &Favourite{UserID: userId.String(), Items: map[string]FavouriteItem{}}, nil
	}
	return deepCopy(fav), nil
}
