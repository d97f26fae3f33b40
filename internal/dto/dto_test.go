package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFamilyGroupResponse_EmptyMembersIsArray(t *testing.T) {
	g := &models.FamilyGroup{ID: uuid.New(), OwnerID: uuid.New(), Name: "Bassey family"}
	raw, err := json.Marshal(ToFamilyGroupResponse(g))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"members":[]`)
	assert.Contains(t, string(raw), `"ownerId"`)
}

func TestToBookingResponse_CamelCase(t *testing.T) {
	b := &models.HotelBooking{
		ID:               uuid.New(),
		HotelID:          uuid.New(),
		BookingReference: "CXB-ABCD1234",
		TotalAmount:      130000,
		PaymentStatus:    models.PaymentPending,
		Status:           models.BookingPending,
	}
	raw, err := json.Marshal(ToBookingResponse(b))
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "CXB-ABCD1234", m["bookingReference"])
	assert.Equal(t, "pending", m["paymentStatus"])
	assert.NotContains(t, m, "booking_reference")
	assert.NotContains(t, m, "paymentUrl")
}

func TestToIncidentResponse_Location(t *testing.T) {
	in := &models.IncidentReport{ID: uuid.New(), Latitude: 4.95, Longitude: 8.32, Severity: models.SeverityCritical}
	res := ToIncidentResponse(in)
	assert.Equal(t, 4.95, res.Location.Latitude)
	assert.Equal(t, "critical", res.Severity)
	assert.NotNil(t, res.Images)
}

func TestToProfileResponse_Defaults(t *testing.T) {
	res := ToProfileResponse(&models.Profile{ID: uuid.New(), PreferredLanguage: "en"})
	assert.NotNil(t, res.Preferences)
	assert.NotNil(t, res.NotificationSettings)
	assert.NotNil(t, res.EmergencyContacts)
	assert.Nil(t, res.CreatedAt)
}

func TestToFavouritesResponse_NewestFirst(t *testing.T) {
	now := time.Now()
	f := &models.Favourite{UserID: "u1", Items: map[string]models.FavouriteItem{
		"a": {ItemID: "a", ItemType: "event", AddedAt: now.Add(-time.Hour)},
		"b": {ItemID: "b", ItemType: "hotel", AddedAt: now},
	}}
	res := ToFavouritesResponse(f)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "b", res.Items[0].ItemID)
}

func TestMapSliceNeverNil(t *testing.T) {
	out := MapSlice([]*models.Band(nil), ToBandResponse)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}
