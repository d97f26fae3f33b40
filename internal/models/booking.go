package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

type HotelBooking struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	HotelID          uuid.UUID `json:"hotel_id"`
	BookingReference string    `json:"booking_reference"`
	CheckIn          string    `json:"check_in"`  // YYYY-MM-DD
	CheckOut         string    `json:"check_out"` // YYYY-MM-DD
	Nights           int       `json:"nights"`
	Rooms            int       `json:"rooms"`
	Guests           int       `json:"guests"`
	RoomType         string    `json:"room_type"`
	RatePerNight     float64   `json:"rate_per_night"`
	TotalAmount      float64   `json:"total_amount"`
	Currency         string    `json:"currency"`
	GuestName        string    `json:"guest_name"`
	GuestEmail       string    `json:"guest_email"`
	GuestPhone       string    `json:"guest_phone"`
	SpecialRequests  string    `json:"special_requests"`
	// status tracks the reservation itself, payment_status the money
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentReference string        `json:"payment_reference"`
	PaidAt           *time.Time    `json:"paid_at"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

type BookingRepo interface {
	CreateBooking(ctx context.Context, booking *HotelBooking) (*HotelBooking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*HotelBooking, error)
	GetBookingByReference(ctx context.Context, reference string) (*HotelBooking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*HotelBooking, int, error)
	// MarkBookingPaid flips a not-yet-paid booking to paid in one conditional
	// update. changed is false when the booking was already paid.
	MarkBookingPaid(ctx context.Context, reference, paymentReference string, paidAt time.Time) (booking *HotelBooking, changed bool, err error)
	MarkBookingPaymentFailed(ctx context.Context, reference string) error
}
