// Package backend is the typed client of the external booking backend. Every
// call forwards the caller's token taken from the request context.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"quadras/web/internal/authctx"
	"quadras/web/internal/logging"

	"github.com/tidwall/gjson"
)

const defaultUserAgent = "quadras-web/1.0"

var (
	ErrBadRequest   = errors.New("backend: bad request")
	ErrUnauthorized = errors.New("backend: unauthorized")
	ErrForbidden    = errors.New("backend: forbidden")
	ErrNotFound     = errors.New("backend: not found")
	ErrConflict     = errors.New("backend: conflict")
	ErrUnavailable  = errors.New("backend: unavailable")
)

func IsErrBadRequest(err error) bool   { return errors.Is(err, ErrBadRequest) }
func IsErrUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }
func IsErrForbidden(err error) bool    { return errors.Is(err, ErrForbidden) }
func IsErrNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsErrConflict(err error) bool     { return errors.Is(err, ErrConflict) }

// StatusError is a non-2xx answer. Message is the backend's own text when
// the body carries one.
type StatusError struct {
	Status  int
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("request failed: %d %s: %s", e.Status, http.StatusText(e.Status), msg)
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrUnavailable:
		return e.Status >= 500
	}
	return false
}

// Message returns the backend's message for err, or "".
func Message(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}

type Client struct {
	HTTP      *http.Client
	BaseURL   string
	UserAgent string
}

func NewClient(baseURL string, timeout time.Duration, transport http.RoundTripper) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		BaseURL:   baseURL,
		UserAgent: defaultUserAgent,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return nil, err
	}
	// path segments are already escaped by seg
	u := base.JoinPath(strings.TrimPrefix(path, "/"))
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := authctx.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := logging.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, dest any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *Client) doStatus(req *http.Request) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	logger := logging.FromContext(req.Context())
	if err != nil {
		logger.WarnContext(req.Context(), "backend call failed",
			"backend_method", req.Method, "backend_path", req.URL.Path, "error", err)
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, req.Method, req.URL.Path, err)
	}
	logger.DebugContext(req.Context(), "backend call",
		"backend_method", req.Method, "backend_path", req.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, statusError(resp.StatusCode, body)
	}
	return resp, nil
}

func statusError(status int, body []byte) *StatusError {
	e := &StatusError{Status: status, Body: strings.TrimSpace(string(body))}
	if gjson.ValidBytes(body) {
		res := gjson.ParseBytes(body)
		for _, path := range []string{"message", "mensagem", "error.message", "error", "detail"} {
			if v := res.Get(path); v.Exists() && v.Type == gjson.String && v.String() != "" {
				e.Message = v.String()
				break
			}
		}
	}
	return e
}

func seg(id string) string { return url.PathEscape(id) }
