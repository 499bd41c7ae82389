package backend

import (
	"context"
	"net/http"

	"quadras/web/internal/domain/subscription"
)

func (c *Client) GetSubscription(ctx context.Context, arenaID string) (*subscription.Details, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/arenas/"+seg(arenaID)+"/assinatura", nil, nil)
	if err != nil {
		return nil, err
	}
	var out subscription.Details
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePortalSession(ctx context.Context, arenaID string, in subscription.PortalInput) (*subscription.SessionURL, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/arenas/"+seg(arenaID)+"/assinatura/portal", nil, in)
	if err != nil {
		return nil, err
	}
	var out subscription.SessionURL
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, arenaID string, in subscription.CheckoutInput) (*subscription.SessionURL, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/arenas/"+seg(arenaID)+"/assinatura/checkout", nil, in)
	if err != nil {
		return nil, err
	}
	var out subscription.SessionURL
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
