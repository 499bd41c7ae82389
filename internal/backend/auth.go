package backend

import (
	"context"
	"net/http"
)

// ResendCode asks the backend to e-mail a new verification code.
func (c *Client) ResendCode(ctx context.Context, email string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/reenviar-codigo", nil, map[string]string{"email": email})
	if err != nil {
		return err
	}
	return c.doStatus(req)
}
