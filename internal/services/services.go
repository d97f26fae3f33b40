package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrPaymentNotSuccessful = fmt.Errorf("%w: payment was not successful", models.ErrValidation)
	ErrAmountMismatch       = fmt.Errorf("%w: paid amount does not match booking total", models.ErrValidation)
)

// timeNow is swapped in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Page clamps pagination parameters.
func Page(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}

func parseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, models.Invalid("%s must be a valid id", name)
	}
	return id, nil
}

func isConflict(err error) bool {
	return errors.Is(err, models.ErrConflict)
}
