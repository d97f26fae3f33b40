package handlers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
)

const maxWebhookBody = 1 << 20

func CreateBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		var req dto.CreateBookingRequest
		if !bindJSON(c, &req) {
			return
		}
		booking, err := bs.CreateBooking(c.Request.Context(), userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(booking, "Booking created successfully"))
	}
}

func ListBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		p, ok := parsePage(c, services.DefaultPageSize)
		if !ok {
			return
		}
		bookings, total, err := bs.ListBookings(c.Request.Context(), userID, p.Offset, p.Limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.PaginatedResponse(bookings, p.number(), p.Limit, total))
	}
}

func GetBooking(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := caller(c)
		if !ok {
			return
		}
		booking, err := bs.GetBooking(c.Request.Context(), userID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(booking, ""))
	}
}

// VerifyPaymentRedirect is where the gateway sends the browser after
// checkout. It always answers with a redirect to the frontend.
func VerifyPaymentRedirect(ps *services.PaymentService, frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		reference := strings.TrimSpace(c.Query("reference"))
		if reference == "" {
			reference = strings.TrimSpace(c.Query("trxref"))
		}
		if reference == "" {
			c.Redirect(http.StatusFound, paymentRedirect(frontendURL, "error", ""))
			return
		}

		if _, err := ps.VerifyPayment(c.Request.Context(), reference); err != nil {
			if !errors.Is(err, models.ErrValidation) && !errors.Is(err, models.ErrNotFound) {
				_ = c.Error(err)
			}
			c.Redirect(http.StatusFound, paymentRedirect(frontendURL, "error", reference))
			return
		}
		c.Redirect(http.StatusFound, paymentRedirect(frontendURL, "success", reference))
	}
}

func paymentRedirect(frontendURL, outcome, reference string) string {
	q := url.Values{}
	q.Set("payment", outcome)
	if reference != "" {
		q.Set("reference", reference)
	}
	return strings.TrimRight(frontendURL, "/") + "/bookings?" + q.Encode()
}

// PaymentWebhook needs the untouched body for the signature check, so it
// must not sit behind anything that consumes it.
func PaymentWebhook(ps *services.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
		if err != nil {
			badRequest(c, "unable to read request body")
			return
		}

		if err := ps.HandleWebhook(c.Request.Context(), body, c.GetHeader(payments.SignatureHeader)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Webhook received"))
	}
}
