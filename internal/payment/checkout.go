package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
)

// CheckoutResult is what the return page needs to know about a hosted
// checkout session. No card data is read.
type CheckoutResult struct {
	SessionID     string `json:"sessionId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Complete      bool   `json:"concluido"`
	ArenaID       string `json:"arenaId,omitempty"`
	Plan          string `json:"plano,omitempty"`
}

type CheckoutLookup interface {
	Lookup(ctx context.Context, sessionID string) (*CheckoutResult, error)
}

type StripeLookup struct {
	client session.Client
}

// NewStripeLookup returns nil when no secret key is configured.
func NewStripeLookup(secretKey string) *StripeLookup {
	if strings.TrimSpace(secretKey) == "" {
		return nil
	}
	return &StripeLookup{client: session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: secretKey}}
}

func (l *StripeLookup) Lookup(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	if l == nil {
		return nil, ErrNotConfigured
	}
	sessionID = strings.TrimSpace(sessionID)
	if !strings.HasPrefix(sessionID, "cs_") {
		return nil, fmt.Errorf("%w: invalid session_id", ErrBadRequest)
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := l.client.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}
	return resultFrom(s), nil
}

func resultFrom(s *stripe.CheckoutSession) *CheckoutResult {
	r := &CheckoutResult{
		SessionID:     s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
	}
	r.Complete = s.Status == stripe.CheckoutSessionStatusComplete &&
		s.PaymentStatus != stripe.CheckoutSessionPaymentStatusUnpaid
	if s.Metadata != nil {
		r.ArenaID = s.Metadata["arenaId"]
		r.Plan = s.Metadata["plan"]
	}
	return r
}
