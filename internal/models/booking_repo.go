package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/postgrest-go"
)

// CreateBooking inserts the booking row. The hold_room_inventory trigger
// decrements the room type's availability in the same statement and raises
// insufficient_inventory when there are not enough rooms left.
func (su *SupabaseRepo) CreateBooking(ctx context.Context, booking *HotelBooking) (*HotelBooking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Insert(booking, false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to create booking", err)
	}
	return firstRow[HotelBooking](raw)
}

func (su *SupabaseRepo) GetBookingByID(ctx context.Context, id uuid.UUID) (*HotelBooking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "", false).
		Eq("id", id.String()).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get booking", err)
	}
	return firstRow[HotelBooking](raw)
}

func (su *SupabaseRepo) GetBookingByReference(ctx context.Context, reference string) (*HotelBooking, error) {
	raw, _, err := su.supabaseClient.From(BookingsTable).
		Select("*", "", false).
		Eq("booking_reference", reference).
		Execute()
	if err != nil {
		return nil, classifyPostgrestError("failed to get booking by reference", err)
	}
	return firstRow[HotelBooking](raw)
}

func (su *SupabaseRepo) ListBookingsByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*HotelBooking, int, error) {
	raw, count, err := su.supabaseClient.From(BookingsTable).
		Select("*", "exact", false).
		Eq("user_id", userID.String()).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, 0, classifyPostgrestError("failed to list bookings", err)
	}
	bookings, err := decodeRows[HotelBooking](raw)
	if err != nil {
		return nil, 0, err
	}
	return bookings, int(count), nil
}

func (su *SupabaseRepo) MarkBookingPaid(ctx context.Context, reference, paymentReference string, paidAt time.Time) (*HotelBooking, bool, error) {
	update := map[string]interface{}{
		"payment_status":    PaymentPaid,
		"status":            BookingConfirmed,
		"payment_reference": paymentReference,
		"paid_at":           paidAt.UTC(),
		"updated_at":        paidAt.UTC(),
	}

	raw, _, err := su.supabaseClient.From(BookingsTable).
		Update(update, "representation", "").
		Eq("booking_reference", reference).
		Neq("payment_status", string(PaymentPaid)).
		Execute()
	if err != nil {
		return nil, false, classifyPostgrestError("failed to mark booking paid", err)
	}

	booking, err := firstRow[HotelBooking](raw)
	if err == nil {
		return booking, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	// Nothing matched: either unknown reference or already paid.
	existing, err := su.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (su *SupabaseRepo) MarkBookingPaymentFailed(ctx context.Context, reference string) error {
	update := map[string]interface{}{
		"payment_status": PaymentFailed,
		"updated_at":     time.Now().UTC(),
	}
	_, _, err := su.supabaseClient.From(BookingsTable).
		Update(update, "minimal", "").
		Eq("booking_reference", reference).
		Eq("payment_status", string(PaymentPending)).
		Execute()
	if err != nil {
		return classifyPostgrestError(fmt.Sprintf("failed to mark booking %s failed", reference), err)
	}
	return nil
}
