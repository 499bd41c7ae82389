// Package httpjson writes the JSON bodies shared by every handler package.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Notification is a toast the browser shell shows once.
type Notification struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorBody struct {
	Message      string        `json:"message"`
	Notification *Notification `json:"notification,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Message: msg})
}

// Upstream reports a failed call to an external service. The message is
// also queued as an error notification.
func Upstream(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Message: msg, Notification: &Notification{Kind: "error", Message: msg}})
}
