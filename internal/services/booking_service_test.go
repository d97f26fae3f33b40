package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHotel(repo *models.MemoryRepo, available int) *models.Hotel {
	h := &models.Hotel{
		Name:     "Marian Hotel",
		PriceMin: 30000,
		RoomTypes: []models.RoomType{
			{Type: "standard", PricePerNight: 30000, Capacity: 2, Available: available},
			{Type: "deluxe", PricePerNight: 50000, Capacity: 2, Available: available},
		},
	}
	repo.PutHotel(h)
	return h
}

func bookingRequest(hotelID uuid.UUID) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HotelID:    hotelID.String(),
		CheckIn:    "2025-12-24",
		CheckOut:   "2025-12-27",
		RoomType:   "deluxe",
		GuestName:  "Ada Bassey",
		GuestEmail: "ada@example.com",
	}
}

func TestBookingService_CreateComputesTotalAndPaymentURL(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 5)
	demo := payments.NewDemo("http://localhost:8080/api/payments/verify", "secret")
	svc := NewBookingService(repo, repo, demo, "NGN", "http://localhost:8080/api/payments/verify", discardLogger())

	req := bookingRequest(hotel.ID)
	req.Rooms = 2
	req.Guests = 3
	res, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Nights)
	assert.Equal(t, float64(3*50000*2), res.TotalAmount)
	assert.Equal(t, "pending", res.Status)
	assert.Equal(t, "pending", res.PaymentStatus)
	assert.True(t, strings.HasPrefix(res.BookingReference, "CXB-"))
	assert.Contains(t, res.PaymentURL, res.BookingReference)
}

func TestBookingService_DefaultsToCheapestRoom(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 5)
	svc := NewBookingService(repo, repo, &stubGateway{}, "NGN", "", discardLogger())

	req := bookingRequest(hotel.ID)
	req.RoomType = ""
	res, err := svc.CreateBooking(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "standard", res.RoomType)
	assert.Equal(t, 1, res.Rooms)
	assert.Equal(t, float64(90000), res.TotalAmount)
}

func TestBookingService_Validation(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 5)
	svc := NewBookingService(repo, repo, &stubGateway{}, "NGN", "", discardLogger())

	cases := map[string]func(r *dto.CreateBookingRequest){
		"checkout before checkin": func(r *dto.CreateBookingRequest) { r.CheckOut = "2025-12-23" },
		"same day":                func(r *dto.CreateBookingRequest) { r.CheckOut = r.CheckIn },
		"past checkin":            func(r *dto.CreateBookingRequest) { r.CheckIn = "2025-11-20" },
		"bad email":               func(r *dto.CreateBookingRequest) { r.GuestEmail = "nope" },
		"negative rooms":          func(r *dto.CreateBookingRequest) { r.Rooms = -1 },
		"unknown room type":       func(r *dto.CreateBookingRequest) { r.RoomType = "penthouse" },
		"bad hotel id":            func(r *dto.CreateBookingRequest) { r.HotelID = "42" },
		"too many guests":         func(r *dto.CreateBookingRequest) { r.Guests = 5 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := bookingRequest(hotel.ID)
			mutate(&req)
			_, err := svc.CreateBooking(context.Background(), uuid.New(), req)
			assert.True(t, errors.Is(err, models.ErrValidation), "got %v", err)
		})
	}
}

func TestBookingService_NoAvailability(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 1)
	svc := NewBookingService(repo, repo, &stubGateway{}, "NGN", "", discardLogger())

	_, err := svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(hotel.ID))
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), uuid.New(), bookingRequest(hotel.ID))
	assert.True(t, errors.Is(err, models.ErrNoAvailability))
}

func TestBookingService_InitialiseFailureKeepsBooking(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 5)
	gw := &stubGateway{initErr: models.ErrUpstream}
	svc := NewBookingService(repo, repo, gw, "NGN", "", discardLogger())

	user := uuid.New()
	res, err := svc.CreateBooking(context.Background(), user, bookingRequest(hotel.ID))
	require.NoError(t, err)
	assert.Empty(t, res.PaymentURL)

	list, total, err := svc.ListBookings(context.Background(), user, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, res.ID, list[0].ID)
}

func TestBookingService_GetHidesOtherUsersBookings(t *testing.T) {
	freezeTime(t, carnivalMorning)
	repo := models.NewMemoryRepo()
	hotel := seedHotel(repo, 5)
	svc := NewBookingService(repo, repo, &stubGateway{}, "NGN", "", discardLogger())

	owner := uuid.New()
	res, err := svc.CreateBooking(context.Background(), owner, bookingRequest(hotel.ID))
	require.NoError(t, err)

	got, err := svc.GetBooking(context.Background(), owner, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.BookingReference, got.BookingReference)

	_, err = svc.GetBooking(context.Background(), uuid.New(), res.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}
