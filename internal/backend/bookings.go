package backend

import (
	"context"
	"net/http"
	"net/url"

	"quadras/web/internal/domain/booking"
	"quadras/web/internal/listing"
	"quadras/web/internal/payment"
)

func (c *Client) ListAthleteBookings(ctx context.Context, q url.Values) (listing.Result[booking.Booking], error) {
	var out listing.Result[booking.Booking]
	req, err := c.newRequest(ctx, http.MethodGet, "/agendamentos/atleta", q, nil)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

func (c *Client) ListArenaBookings(ctx context.Context, arenaID string, q url.Values) (listing.Result[booking.Booking], error) {
	var out listing.Result[booking.Booking]
	if q == nil {
		q = url.Values{}
	}
	q.Set("arenaId", arenaID)
	req, err := c.newRequest(ctx, http.MethodGet, "/agendamentos/arena", q, nil)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, in booking.CreateInput) (*booking.Booking, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/agendamentos", nil, in)
	if err != nil {
		return nil, err
	}
	var out booking.Booking
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/agendamentos/"+seg(bookingID)+"/cancelar", nil, nil)
	if err != nil {
		return err
	}
	return c.doStatus(req)
}

func (c *Client) ChangeBookingStatus(ctx context.Context, bookingID string, status booking.Status) error {
	body := map[string]string{"status": string(status)}
	req, err := c.newRequest(ctx, http.MethodPatch, "/agendamentos/"+seg(bookingID)+"/status", nil, body)
	if err != nil {
		return err
	}
	return c.doStatus(req)
}

func (c *Client) CreatePix(ctx context.Context, bookingID string) (*payment.PixCharge, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/agendamentos/"+seg(bookingID)+"/pix", nil, nil)
	if err != nil {
		return nil, err
	}
	var out payment.PixCharge
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSeries(ctx context.Context) ([]booking.Series, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/agendamentos/fixos", nil, nil)
	if err != nil {
		return nil, err
	}
	var out []booking.Series
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetSeries(ctx context.Context, seriesID string) (*booking.Series, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/agendamentos/fixos/"+seg(seriesID), nil, nil)
	if err != nil {
		return nil, err
	}
	var out booking.Series
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelSeries(ctx context.Context, seriesID string) error {
	req, err := c.newRequest(ctx, http.MethodPatch, "/agendamentos/fixos/"+seg(seriesID)+"/cancelar", nil, nil)
	if err != nil {
		return err
	}
	return c.doStatus(req)
}
