package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/joshua-takyi/carnivalxperience/internal/queue"
)

type PaymentService struct {
	bookings  models.BookingRepo
	gateway   payments.Gateway
	publisher queue.Publisher
	logger    *slog.Logger
}

func NewPaymentService(bookings models.BookingRepo, gateway payments.Gateway, publisher queue.Publisher, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		bookings:  bookings,
		gateway:   gateway,
		publisher: publisher,
		logger:    logger,
	}
}

// VerifyPayment re-checks a transaction with the gateway and settles the
// booking it belongs to. Settling an already paid booking is a no-op.
func (ps *PaymentService) VerifyPayment(ctx context.Context, reference string) (*dto.BookingResponse, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, models.Invalid("reference is required")
	}
	b, err := ps.settle(ctx, reference)
	if err != nil {
		return nil, err
	}
	res := dto.ToBookingResponse(b)
	return &res, nil
}

// HandleWebhook authenticates a gateway callback and settles the booking.
// Only an error that the gateway should retry is returned; events that are
// ignored or do not match a booking are logged and acknowledged.
func (ps *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	if !ps.gateway.VerifySignature(body, signature) {
		return models.ErrInvalidSignature
	}
	ev, err := payments.ParseWebhook(body)
	if err != nil {
		return models.Invalid("malformed webhook payload")
	}
	if ev.Event != payments.EventChargeSuccess {
		ps.logger.Info("Ignoring webhook event", "event", ev.Event)
		return nil
	}

	_, err = ps.settle(ctx, ev.Data.Reference)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrValidation):
		ps.logger.Warn("Webhook did not settle a booking",
			"reference", ev.Data.Reference,
			"error", err,
		)
		return nil
	default:
		return err
	}
}

func (ps *PaymentService) settle(ctx context.Context, reference string) (*models.HotelBooking, error) {
	v, err := ps.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, err
	}
	booking, err := ps.bookings.GetBookingByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if booking.PaymentStatus == models.PaymentPaid {
		return booking, nil
	}

	if !v.Successful() {
		if v.Status == payments.StatusFailed {
			if err := ps.bookings.MarkBookingPaymentFailed(ctx, reference); err != nil {
				return nil, err
			}
		}
		return nil, ErrPaymentNotSuccessful
	}
	if !payments.AmountsMatch(v.Amount, booking.TotalAmount) ||
		(v.Currency != "" && !strings.EqualFold(v.Currency, booking.Currency)) {
		ps.logger.Error("Payment amount mismatch",
			"reference", reference,
			"expected", booking.TotalAmount,
			"paid", v.Amount,
			"currency", v.Currency,
		)
		return nil, ErrAmountMismatch
	}

	paidAt := v.PaidAt
	if paidAt.IsZero() {
		paidAt = timeNow()
	}
	paid, changed, err := ps.bookings.MarkBookingPaid(ctx, reference, v.GatewayReference, paidAt)
	if err != nil {
		return nil, fmt.Errorf("settle %s: %w", reference, err)
	}
	if changed {
		ps.logger.Info("Booking paid", "reference", reference, "gateway", ps.gateway.Name())
		ev := queue.PaymentConfirmedEvent{
			BookingID:        paid.ID.String(),
			BookingReference: paid.BookingReference,
			UserID:           paid.UserID.String(),
			HotelID:          paid.HotelID.String(),
			Amount:           paid.TotalAmount,
			Currency:         paid.Currency,
			Gateway:          ps.gateway.Name(),
			PaidAt:           paidAt,
		}
		if err := ps.publisher.PublishPaymentConfirmed(ctx, ev); err != nil {
			ps.logger.Error("Failed to publish payment confirmation", "reference", reference, "error", err)
		}
	}
	return paid, nil
}
