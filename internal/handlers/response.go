package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/helpers"
	"github.com/joshua-takyi/carnivalxperience/internal/i18n"
	"github.com/joshua-takyi/carnivalxperience/internal/middleware"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

// respondError maps service errors onto status codes. Unknown errors are
// attached to the context for the error middleware to log and never reach
// the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrAlreadyVoted):
		c.JSON(http.StatusBadRequest, models.CodedErrorResponse(localized(c, "bands.already_voted", models.ErrAlreadyVoted.Error()), "ALREADY_VOTED"))
	case errors.Is(err, models.ErrNoAvailability):
		c.JSON(http.StatusConflict, models.CodedErrorResponse(localized(c, "booking.no_rooms", models.ErrNoAvailability.Error()), "NO_AVAILABILITY"))
	case errors.Is(err, models.ErrValidation):
		msg := strings.TrimPrefix(err.Error(), models.ErrValidation.Error()+": ")
		c.JSON(http.StatusBadRequest, models.CodedErrorResponse(msg, "VALIDATION"))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.CodedErrorResponse(localized(c, "errors.not_found", "not found"), "NOT_FOUND"))
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.CodedErrorResponse("resource already exists", "CONFLICT"))
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.CodedErrorResponse("forbidden", "FORBIDDEN"))
	case errors.Is(err, models.ErrUnauthorized), errors.Is(err, models.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(localized(c, "errors.unauthorized", "unauthorized")))
	case errors.Is(err, models.ErrUnavailable), errors.Is(err, models.ErrShareCodeExhausted):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, models.CodedErrorResponse("service temporarily unavailable", "UNAVAILABLE"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.CodedErrorResponse(localized(c, "common.error", "Internal server error"), "INTERNAL"))
	}
}

// localized returns key translated for the request, or fallback for English
// and unsupported languages so error strings stay stable for API clients.
func localized(c *gin.Context, key, fallback string) string {
	lang := requestLanguage(c)
	if lang == i18n.DefaultLanguage || !i18n.IsSupported(lang) {
		return fallback
	}
	return i18n.Translate(lang, key)
}

// requestLanguage prefers Accept-Language, then the caller's profile language.
func requestLanguage(c *gin.Context) string {
	if c.Request != nil {
		header := c.GetHeader("Accept-Language")
		if i := strings.IndexAny(header, ",;"); i >= 0 {
			header = header[:i]
		}
		if lang := i18n.Normalize(header); i18n.IsSupported(lang) {
			return lang
		}
	}
	if claims := middleware.CurrentUser(c); claims != nil && claims.Language != "" {
		return i18n.Normalize(claims.Language)
	}
	return i18n.DefaultLanguage
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.CodedErrorResponse(msg, "VALIDATION"))
}

// bindJSON writes a 400 and returns false when the body does not bind.
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, models.ApiResponse{
			Success: false,
			Error:   "invalid request body",
			Message: err.Error(),
			Code:    "VALIDATION",
		})
		return false
	}
	return true
}

// caller returns the authenticated user or writes a 401.
func caller(c *gin.Context) (*helpers.EnhancedClaims, uuid.UUID, bool) {
	claims := middleware.CurrentUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, uuid.Nil, false
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, uuid.Nil, false
	}
	return claims, id, true
}

type pageParams struct {
	Offset int
	Limit  int
}

// page number reported back to clients, 1-based
func (p pageParams) number() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

func parsePage(c *gin.Context, defaultLimit int) (pageParams, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		badRequest(c, "invalid limit parameter")
		return pageParams{}, false
	}
	if limit > 100 {
		limit = 100
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		badRequest(c, "invalid offset parameter")
		return pageParams{}, false
	}
	return pageParams{Offset: offset, Limit: limit}, true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, "invalid "+name+" parameter")
		return nil, false
	}
	return &f, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		badRequest(c, "invalid "+name+" parameter")
		return nil, false
	}
	return &b, true
}

// queryTime accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func queryTime(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := helpers.ParseDate(raw)
	if err != nil {
		badRequest(c, "invalid "+name+" parameter")
		return nil, false
	}
	return &t, true
}
