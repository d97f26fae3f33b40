package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
	"github.com/joshua-takyi/carnivalxperience/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
		msg    string
	}{
		{models.Invalid("rooms must be at least 1"), http.StatusBadRequest, "VALIDATION", "rooms must be at least 1"},
		{services.ErrAmountMismatch, http.StatusBadRequest, "VALIDATION", "paid amount does not match booking total"},
		{models.ErrAlreadyVoted, http.StatusBadRequest, "ALREADY_VOTED", models.ErrAlreadyVoted.Error()},
		{fmt.Errorf("failed to create booking: %w", models.ErrNoAvailability), http.StatusConflict, "NO_AVAILABILITY", models.ErrNoAvailability.Error()},
		{fmt.Errorf("get hotel: %w", models.ErrNotFound), http.StatusNotFound, "NOT_FOUND", "not found"},
		{models.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "forbidden"},
		{models.ErrInvalidSignature, http.StatusUnauthorized, "", "unauthorized"},
		{models.ErrUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "service temporarily unavailable"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var res models.ApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.False(t, res.Success)
			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.msg, res.Error)
		})
	}
}

func TestRespondErrorFollowsAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		err    error
		msg    string
	}{
		{"fr-FR,fr;q=0.9", models.ErrAlreadyVoted, "Vous avez déjà voté cette année"},
		{"fr", models.ErrNoAvailability, "Aucune chambre disponible pour ces dates"},
		{"pcm", models.ErrNotFound, "We no fit find am"},
		{"pcm", errors.New("boom"), "Wahala don happen"},
		{"en-GB", models.ErrNotFound, "not found"},
		{"de", models.ErrNotFound, "not found"},
		{"", models.ErrUnauthorized, "unauthorized"},
	}

	for _, tt := range tests {
		t.Run(tt.header+" "+tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Accept-Language", tt.header)
			}
			respondError(c, tt.err)

			var res models.ApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.msg, res.Error)
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query  string
		ok     bool
		offset int
		limit  int
		page   int
	}{
		{"", true, 0, 20, 1},
		{"?limit=10&offset=30", true, 30, 10, 4},
		{"?limit=500", true, 0, 100, 1},
		{"?limit=0", false, 0, 0, 0},
		{"?offset=-1", false, 0, 0, 0},
		{"?limit=abc", false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)

			p, ok := parsePage(c, 20)
			assert.Equal(t, tt.ok, ok)
			if !ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				return
			}
			assert.Equal(t, tt.offset, p.Offset)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.page, p.number())
		})
	}
}

func TestQueryTimeAcceptsDates(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?from=2025-12-26&to=2025-12-27T18:00:00Z&bad=tomorrow", nil)

	from, ok := queryTime(c, "from")
	require.True(t, ok)
	assert.Equal(t, 26, from.Day())

	to, ok := queryTime(c, "to")
	require.True(t, ok)
	assert.Equal(t, 18, to.Hour())

	_, ok = queryTime(c, "bad")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentRedirect(t *testing.T) {
	assert.Equal(t, "http://app.test/bookings?payment=success&reference=CXB-AB12CD34",
		paymentRedirect("http://app.test/", "success", "CXB-AB12CD34"))
	assert.Equal(t, "http://app.test/bookings?payment=error", paymentRedirect("http://app.test", "error", ""))
}
