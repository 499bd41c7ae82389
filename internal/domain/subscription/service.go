package subscription

import (
	"context"
	"fmt"

	"quadras/web/internal/logging"
)

type Backend interface {
	GetSubscription(ctx context.Context, arenaID string) (*Details, error)
	CreatePortalSession(ctx context.Context, arenaID string, in PortalInput) (*SessionURL, error)
	CreateCheckoutSession(ctx context.Context, arenaID string, in CheckoutInput) (*SessionURL, error)
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) Get(ctx context.Context, arenaID string) (*Info, error) {
	if arenaID == "" {
		return nil, fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	d, err := s.backend.GetSubscription(ctx, arenaID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("%w: subscription for arena %s", ErrNotFound, arenaID)
	}
	info := NewInfo(*d)
	return &info, nil
}

func (s *Service) CreateCheckoutSession(ctx context.Context, arenaID string, input CheckoutInput) (string, error) {
	input.Trim()

	if arenaID == "" {
		return "", fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	if input.Plan != PlanPro && input.Plan != PlanBusiness {
		return "", fmt.Errorf("%w: plan must be 'pro' or 'business'", ErrBadRequest)
	}
	if input.Period != PeriodMonthly && input.Period != PeriodYearly {
		return "", fmt.Errorf("%w: period must be 'monthly' or 'yearly'", ErrBadRequest)
	}
	if input.SuccessURL == "" || input.CancelURL == "" {
		return "", fmt.Errorf("%w: successUrl and cancelUrl are required", ErrBadRequest)
	}

	out, err := s.backend.CreateCheckoutSession(ctx, arenaID, input)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	if out == nil || out.URL == "" {
		return "", fmt.Errorf("failed to create checkout session: empty url")
	}
	return out.URL, nil
}

func (s *Service) CreatePortalSession(ctx context.Context, arenaID string, input PortalInput) (string, error) {
	input.Trim()

	if arenaID == "" {
		return "", fmt.Errorf("%w: arenaId is required", ErrBadRequest)
	}
	if input.ReturnURL == "" {
		return "", fmt.Errorf("%w: returnUrl is required", ErrBadRequest)
	}

	out, err := s.backend.CreatePortalSession(ctx, arenaID, input)
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}
	if out == nil || out.URL == "" {
		return "", fmt.Errorf("failed to create portal session: empty url")
	}
	return out.URL, nil
}

// CheckCourtLimit refuses a new court once the plan's limit is reached. A
// failed lookup lets the request through; the backend has the final word.
func (s *Service) CheckCourtLimit(ctx context.Context, arenaID string) error {
	info, err := s.Get(ctx, arenaID)
	if err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "court limit check skipped", "arena_id", arenaID, "error", err)
		return nil
	}
	if info.Courts.Full() {
		return fmt.Errorf("%w: courts limit reached (%d/%d). Upgrade your plan to add more.",
			ErrLimitReached, info.Courts.Current, info.Courts.Limit)
	}
	return nil
}
