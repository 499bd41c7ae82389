package handlers

import (
	"net/http"

	"quadras/web/internal/httpjson"
	"quadras/web/internal/logging"
	"quadras/web/internal/payment"

	"github.com/go-chi/chi/v5"
)

type Checkout struct {
	lookup payment.CheckoutLookup
}

func NewCheckout(lookup payment.CheckoutLookup) *Checkout {
	return &Checkout{lookup: lookup}
}

// Return serves the page the browser lands on after the hosted checkout.
// It reports the session status; the subscription itself is updated by the
// backend.
func (h *Checkout) Return(w http.ResponseWriter, r *http.Request) {
	if h.lookup == nil {
		httpjson.Error(w, http.StatusNotImplemented, "STRIPE_SECRET_KEY not set")
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		httpjson.Error(w, http.StatusBadRequest, "session_id is required")
		return
	}

	res, err := h.lookup.Lookup(r.Context(), sessionID)
	switch {
	case payment.IsErrNotConfigured(err):
		httpjson.Error(w, http.StatusNotImplemented, "STRIPE_SECRET_KEY not set")
		return
	case payment.IsErrBadRequest(err):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "checkout lookup failed", "session_id", sessionID, "error", err)
		httpjson.Upstream(w, http.StatusBadGateway, "Não foi possível confirmar o pagamento.")
		return
	}

	arenaID := chi.URLParam(r, "arenaId")
	if res.ArenaID != "" && arenaID != "" && res.ArenaID != arenaID {
		httpjson.Error(w, http.StatusForbidden, "checkout session belongs to another arena")
		return
	}
	httpjson.Write(w, http.StatusOK, res)
}
