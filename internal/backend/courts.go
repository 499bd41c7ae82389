package backend

import (
	"context"
	"net/http"
	"net/url"

	"quadras/web/internal/domain/court"
	"quadras/web/internal/listing"
)

func (c *Client) ListCourts(ctx context.Context, q url.Values) (listing.Result[court.Court], error) {
	var out listing.Result[court.Court]
	req, err := c.newRequest(ctx, http.MethodGet, "/quadras", q, nil)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

func (c *Client) GetCourt(ctx context.Context, courtID string) (*court.Court, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/quadras/"+seg(courtID), nil, nil)
	if err != nil {
		return nil, err
	}
	var out court.Court
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSlots(ctx context.Context, courtID, date string) ([]court.Slot, error) {
	q := url.Values{}
	q.Set("data", date)
	req, err := c.newRequest(ctx, http.MethodGet, "/quadras/"+seg(courtID)+"/horarios", q, nil)
	if err != nil {
		return nil, err
	}
	var out []court.Slot
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type courtPayload struct {
	court.Input
	ArenaID string `json:"arenaId,omitempty"`
}

func (c *Client) CreateCourt(ctx context.Context, arenaID string, in court.Input) (*court.Court, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/quadras", nil, courtPayload{Input: in, ArenaID: arenaID})
	if err != nil {
		return nil, err
	}
	var out court.Court
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCourt(ctx context.Context, courtID string, in court.Input) (*court.Court, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/quadras/"+seg(courtID), nil, in)
	if err != nil {
		return nil, err
	}
	var out court.Court
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCourt(ctx context.Context, courtID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/quadras/"+seg(courtID), nil, nil)
	if err != nil {
		return err
	}
	return c.doStatus(req)
}
