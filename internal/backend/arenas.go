package backend

import (
	"context"
	"net/http"
	"net/url"

	"quadras/web/internal/domain/arena"
	"quadras/web/internal/listing"
)

func (c *Client) ListArenas(ctx context.Context, q url.Values) (listing.Result[arena.Arena], error) {
	var out listing.Result[arena.Arena]
	req, err := c.newRequest(ctx, http.MethodGet, "/arenas", q, nil)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

func (c *Client) GetArena(ctx context.Context, arenaID string) (*arena.Arena, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/arenas/"+seg(arenaID), nil, nil)
	if err != nil {
		return nil, err
	}
	var out arena.Arena
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArena(ctx context.Context, arenaID string, in arena.UpdateProfileInput) (*arena.Arena, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/arenas/"+seg(arenaID), nil, in)
	if err != nil {
		return nil, err
	}
	var out arena.Arena
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListReviews(ctx context.Context, arenaID string) ([]arena.Review, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/arenas/"+seg(arenaID)+"/avaliacoes", nil, nil)
	if err != nil {
		return nil, err
	}
	var out []arena.Review
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}
