package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/joshua-takyi/carnivalxperience/internal/payments"
	"github.com/joshua-takyi/carnivalxperience/internal/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// freezeTime pins timeNow and returns a function that moves the clock.
func freezeTime(t *testing.T, at time.Time) func(time.Duration) {
	t.Helper()
	current := at
	orig := timeNow
	timeNow = func() time.Time { return current }
	t.Cleanup(func() { timeNow = orig })
	return func(d time.Duration) { current = current.Add(d) }
}

var carnivalMorning = time.Date(2025, time.December, 1, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu       sync.Mutex
	alerts   []queue.SafetyAlertEvent
	payments []queue.PaymentConfirmedEvent
}

func (p *recordingPublisher) PublishSafetyAlert(ctx context.Context, ev queue.SafetyAlertEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, ev)
	return nil
}

func (p *recordingPublisher) PublishPaymentConfirmed(ctx context.Context, ev queue.PaymentConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payments = append(p.payments, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// stubGateway answers Verify with a fixed verification.
type stubGateway struct {
	secret       string
	verification payments.Verification
	initErr      error
	verifyErr    error
}

func (g *stubGateway) Name() string { return "stub" }

func (g *stubGateway) Initialize(ctx context.Context, req payments.InitializeRequest) (*payments.InitializeResult, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	return &payments.InitializeResult{AuthorizationURL: "https://pay.test/" + req.Reference, Reference: req.Reference}, nil
}

func (g *stubGateway) Verify(ctx context.Context, reference string) (*payments.Verification, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	v := g.verification
	v.Reference = reference
	return &v, nil
}

func (g *stubGateway) VerifySignature(body []byte, signature string) bool {
	return payments.Sign(g.secret, body) == signature
}
