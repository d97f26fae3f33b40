package payments

import (
	"context"
	"net/url"
	"sync"
	"time"
)

// Demo settles every initialised transaction immediately. The authorization
// URL points straight back at the verify endpoint.
type Demo struct {
	verifyURL     string
	webhookSecret string

	mu      sync.Mutex
	pending map[string]InitializeRequest
}

func NewDemo(verifyURL, webhookSecret string) *Demo {
	return &Demo{
		verifyURL:     verifyURL,
		webhookSecret: webhookSecret,
		pending:       make(map[string]InitializeRequest),
	}
}

func (d *Demo) Name() string { return "demo" }

func (d *Demo) Initialize(ctx context.Context, req InitializeRequest) (*InitializeResult, error) {
	d.mu.Lock()
	d.pending[req.Reference] = req
	d.mu.Unlock()

	return &InitializeResult{
		AuthorizationURL: d.verifyURL + "?reference=" + url.QueryEscape(req.Reference),
		AccessCode:       "demo",
		Reference:        req.Reference,
	}, nil
}

func (d *Demo) Verify(ctx context.Context, reference string) (*Verification, error) {
	d.mu.Lock()
	req, ok := d.pending[reference]
	d.mu.Unlock()

	if !ok {
		return &Verification{Reference: reference, Status: StatusFailed}, nil
	}
	return &Verification{
		Reference:        reference,
		Status:           StatusSuccess,
		Amount:           req.Amount,
		Currency:         req.Currency,
		GatewayReference: "demo-" + reference,
		PaidAt:           time.Now().UTC(),
	}, nil
}

func (d *Demo) VerifySignature(body []byte, signature string) bool {
	return verifyHMAC(d.webhookSecret, body, signature)
}
