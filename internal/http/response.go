package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"quadras/web/internal/httpjson"
	"quadras/web/internal/logging"
	"quadras/web/internal/validation"
)

type Notification = httpjson.Notification

type APIError struct {
	Message      string            `json:"message"`
	Fields       map[string]string `json:"fields,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	Confirm      bool              `json:"confirmationRequired,omitempty"`
	RetryAfter   int               `json:"retryAfter,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	httpjson.Write(w, status, v)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, APIError{Message: msg})
}

// errorBody maps err with mapper and builds the response body. Validation
// failures carry their fields; upstream failures carry a notification for
// the shell to show.
func errorBody(r *http.Request, err error, mapper func(error) (int, string)) (int, APIError) {
	status, msg := mapper(err)
	body := APIError{Message: msg}

	var verr *validation.Error
	if errors.As(err, &verr) {
		body.Fields = verr.Fields
	}

	logger := logging.FromContext(r.Context())
	if status >= 500 {
		logger.ErrorContext(r.Context(), "request failed", "status", status, "error", err)
		body.Notification = &Notification{Kind: "error", Message: msg}
	} else {
		logger.InfoContext(r.Context(), "request rejected", "status", status, "error", err)
	}
	return status, body
}

func failErr(w http.ResponseWriter, r *http.Request, err error, mapper func(error) (int, string)) {
	status, body := errorBody(r, err, mapper)
	WriteJSON(w, status, body)
}

// decode reads an optional JSON body; an empty body leaves dst untouched.
func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

type confirmInput struct {
	Confirm bool `json:"confirm"`
}

// confirmed lets a destructive action through only when the caller sent
// {"confirm": true} (or ?confirm=true). Otherwise it answers 409 with the
// prompt the shell shows in its dialog.
func confirmed(w http.ResponseWriter, r *http.Request, confirm bool, prompt string) bool {
	if confirm || strings.EqualFold(r.URL.Query().Get("confirm"), "true") {
		return true
	}
	WriteJSON(w, http.StatusConflict, APIError{Message: prompt, Confirm: true})
	return false
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		r.Header.Get("X-Requested-With") != ""
}

// redirectOrJSON sends the browser to a hosted page; fetch callers get the
// URL as JSON instead.
func redirectOrJSON(w http.ResponseWriter, r *http.Request, url string) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]any{"url": url})
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
