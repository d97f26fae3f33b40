package helpers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	// no 0/O or 1/I, codes get read out over the phone
	codeAlphabet     = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	ShareCodeLength  = 8
	BookingRefPrefix = "CXB-"
	DateLayout       = "2006-01-02"
)

func randomCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random code: %v", err)
		}
		buf[i] = codeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}

// GenerateShareCode returns an 8 character uppercase code. Uniqueness is
// left to the share_code index; callers retry on conflict.
func GenerateShareCode() (string, error) {
	return randomCode(ShareCodeLength)
}

func GenerateBookingReference() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return BookingRefPrefix + code, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NightsBetween counts the nights of a stay. Check-out must be after check-in.
func NightsBetween(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	nights := int(out.Sub(in).Hours() / 24)
	if nights < 1 {
		return 0, fmt.Errorf("check-out must be after check-in")
	}
	return nights, nil
}

func CalculateBookingTotal(nights int, ratePerNight float64, rooms int) float64 {
	return float64(nights) * ratePerNight * float64(rooms)
}
