package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	SignatureHeader    = "x-paystack-signature"
	EventChargeSuccess = "charge.success"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

type InitializeRequest struct {
	Reference   string
	Email       string
	Amount      float64 // major currency units
	Currency    string
	CallbackURL string
	Metadata    map[string]interface{}
}

type InitializeResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

type Verification struct {
	Reference        string
	Status           string
	Amount           float64 // major currency units
	Currency         string
	GatewayReference string
	PaidAt           time.Time
}

func (v *Verification) Successful() bool {
	return v != nil && v.Status == StatusSuccess
}

// Gateway is the payment provider seen by the booking and payment services.
type Gateway interface {
	Name() string
	Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*Verification, error)
	// VerifySignature checks a webhook body against its signature header.
	VerifySignature(body []byte, signature string) bool
}

type WebhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %v", err)
	}
	return &ev, nil
}

// ToMinorUnits converts naira to kobo.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}

// AmountsMatch compares amounts at minor unit precision.
func AmountsMatch(a, b float64) bool {
	return ToMinorUnits(a) == ToMinorUnits(b)
}

// Sign computes the hex HMAC-SHA512 Paystack puts in x-paystack-signature.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func verifyHMAC(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected, err := hex.DecodeString(Sign(secret, body))
	if err != nil {
		return false
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, got)
}
