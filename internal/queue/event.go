// Package queue carries safety and payment events to the message broker.
package queue

import "time"

const (
	SafetyAlertsQueue      = "safety.alerts"
	PaymentsConfirmedQueue = "payments.confirmed"

	AlertEmergency     = "safety.emergency"
	AlertMemberMissing = "safety.member_missing"
)

// SafetyAlertEvent is published for emergency alerts and for family members
// marked missing.
type SafetyAlertEvent struct {
	Kind       string    `json:"kind"`
	UserID     string    `json:"user_id"`
	IncidentID string    `json:"incident_id,omitempty"`
	GroupID    string    `json:"group_id,omitempty"`
	MemberID   string    `json:"member_id,omitempty"`
	MemberName string    `json:"member_name,omitempty"`
	Severity   string    `json:"severity,omitempty"`
	Message    string    `json:"message,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PaymentConfirmedEvent struct {
	BookingID        string    `json:"booking_id"`
	BookingReference string    `json:"booking_reference"`
	UserID           string    `json:"user_id"`
	HotelID          string    `json:"hotel_id"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	Gateway          string    `json:"gateway"`
	PaidAt           time.Time `json:"paid_at"`
}
