package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
)

const referenceAttempts = 3

type BookingService struct {
	bookings    models.BookingRepo
	hotels      models.HotelRepo
	gateway     payments.Gateway
	currency    string
	callbackURL string
	logger      *slog.Logger
}

func NewBookingService(bookings models.BookingRepo, hotels models.HotelRepo, gateway payments.Gateway, currency, callbackURL string, logger *slog.Logger) *BookingService {
	return &BookingService{
		bookings:    bookings,
		hotels:      hotels,
		gateway:     gateway,
		currency:    currency,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

func (bs *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	hotelID, err := parseID("hotelId", req.HotelID)
	if err != nil {
		return nil, err
	}
	if req.Rooms == 0 {
		req.Rooms = 1
	}
	if req.Guests == 0 {
		req.Guests = 1
	}
	if req.Rooms < 1 {
		return nil, models.Invalid("rooms must be at least 1")
	}
	if req.Guests < 1 {
		return nil, models.Invalid("guests must be at least 1")
	}
	req.GuestName = strings.TrimSpace(req.GuestName)
	if req.GuestName == "" {
		return nil, models.Invalid("guestName is required")
	}
	if err := models.Validate.Var(req.GuestEmail, "required,email"); err != nil {
		return nil, models.Invalid("guestEmail must be a valid email")
	}

	nights, err := helpers.NightsBetween(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, models.Invalid("%v", err)
	}
	checkIn, _ := helpers.ParseDate(req.CheckIn)
	today := timeNow().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return nil, models.Invalid("check-in date cannot be in the past")
	}

	hotel, err := bs.hotels.GetHotelByID(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	room, ok := hotel.RoomRate(req.RoomType)
	if !ok {
		if req.RoomType != "" {
			return nil, models.Invalid("hotel has no room type %q", req.RoomType)
		}
		return nil, models.Invalid("hotel has no bookable rooms")
	}
	if room.Capacity > 0 && req.Guests > room.Capacity*req.Rooms {
		return nil, models.Invalid("%d %s room(s) hold at most %d guests", req.Rooms, room.Type, room.Capacity*req.Rooms)
	}

	now := timeNow()
	booking := &models.HotelBooking{
		ID:              uuid.New(),
		UserID:          userID,
		HotelID:         hotel.ID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Nights:          nights,
		Rooms:           req.Rooms,
		Guests:          req.Guests,
		RoomType:        room.Type,
		RatePerNight:    room.PricePerNight,
		TotalAmount:     helpers.CalculateBookingTotal(nights, room.PricePerNight, req.Rooms),
		Currency:        bs.currency,
		GuestName:       req.GuestName,
		GuestEmail:      strings.TrimSpace(req.GuestEmail),
		GuestPhone:      strings.TrimSpace(req.GuestPhone),
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
		Status:          models.BookingPending,
		PaymentStatus:   models.PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var created *models.HotelBooking
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		booking.BookingReference, err = helpers.GenerateBookingReference()
		if err != nil {
			return nil, err
		}
		created, err = bs.bookings.CreateBooking(ctx, booking)
		if err == nil || !isConflict(err) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	res := dto.ToBookingResponse(created)
	init, err := bs.gateway.Initialize(ctx, payments.InitializeRequest{
		Reference:   created.BookingReference,
		Email:       created.GuestEmail,
		Amount:      created.TotalAmount,
		Currency:    created.Currency,
		CallbackURL: bs.callbackURL,
		Metadata: map[string]interface{}{
			"booking_id": created.ID.String(),
			"hotel_id":   created.HotelID.String(),
		},
	})
	if err != nil {
		// the booking stays pending and can be paid later
		bs.logger.Error("Payment initialisation failed",
			"booking_reference", created.BookingReference,
			"gateway", bs.gateway.Name(),
			"error", err,
		)
		return &res, nil
	}
	res.PaymentURL = init.AuthorizationURL
	return &res, nil
}

func (bs *BookingService) GetBooking(ctx context.Context, userID uuid.UUID, id string) (*dto.BookingResponse, error) {
	bookingID, err := parseID("booking id", id)
	if err != nil {
		return nil, err
	}
	b, err := bs.bookings.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", id, models.ErrNotFound)
	}
	res := dto.ToBookingResponse(b)
	return &res, nil
}

func (bs *BookingService) ListBookings(ctx context.Context, userID uuid.UUID, offset, limit int) ([]dto.BookingResponse, int, error) {
	offset, limit = Page(offset, limit)
	rows, total, err := bs.bookings.ListBookingsByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return dto.MapSlice(rows, dto.ToBookingResponse), total, nil
}
