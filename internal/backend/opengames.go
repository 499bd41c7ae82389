package backend

import (
	"context"
	"net/http"
	"net/url"

	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/listing"
)

func (c *Client) ListOpenGames(ctx context.Context, q url.Values) (listing.Result[opengame.Game], error) {
	var out listing.Result[opengame.Game]
	req, err := c.newRequest(ctx, http.MethodGet, "/jogos-abertos", q, nil)
	if err != nil {
		return out, err
	}
	err = c.doJSON(req, &out)
	return out, err
}

func (c *Client) RequestJoin(ctx context.Context, gameID string) (*opengame.JoinRequest, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/jogos-abertos/"+seg(gameID)+"/solicitacoes", nil, nil)
	if err != nil {
		return nil, err
	}
	var out opengame.JoinRequest
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RespondJoin(ctx context.Context, gameID, requestID string, accept bool) error {
	status := opengame.RequestRejected
	if accept {
		status = opengame.RequestAccepted
	}
	path := "/jogos-abertos/" + seg(gameID) + "/solicitacoes/" + seg(requestID)
	req, err := c.newRequest(ctx, http.MethodPatch, path, nil, map[string]string{"status": string(status)})
	if err != nil {
		return err
	}
	return c.doStatus(req)
}
