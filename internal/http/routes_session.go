package http

import (
	"net/http"

	"quadras/web/internal/authctx"
	"quadras/web/internal/logging"
	"quadras/web/internal/session"

	"github.com/go-chi/chi/v5"
)

func mountSession(r chi.Router, d RouterDeps) {
	r.Get("/api/me", func(w http.ResponseWriter, r *http.Request) {
		p, ok := authctx.Principal(r.Context())
		if !ok {
			Fail(w, 401, "unauthorized")
			return
		}
		WriteJSON(w, 200, p)
	})

	// Refresh re-reads the role claims, e.g. after an arena was created for
	// the caller, and renews the session cookie when the token changed.
	r.Post("/api/session/refresh", func(w http.ResponseWriter, r *http.Request) {
		p, ok := authctx.Principal(r.Context())
		if !ok || d.Verifier == nil {
			Fail(w, 401, "unauthorized")
			return
		}
		np, err := d.Verifier.Refresh(r.Context(), p)
		if err != nil {
			logging.FromContext(r.Context()).WarnContext(r.Context(), "session refresh failed", "error", err)
			if session.IsErrInvalidToken(err) || session.IsErrMissingToken(err) || session.IsErrUnknownRole(err) {
				Fail(w, 401, err.Error())
				return
			}
			Fail(w, 502, "failed to refresh session")
			return
		}
		if np.Token != "" && np.Token != p.Token {
			http.SetCookie(w, &http.Cookie{
				Name:     d.Cfg.SessionCookie,
				Value:    np.Token,
				Path:     "/",
				HttpOnly: true,
				Secure:   d.Cfg.Env != "dev",
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(d.Cfg.SessionTTL.Seconds()),
			})
		}
		WriteJSON(w, 200, np)
	})

	if d.Uploads != nil {
		r.Post("/api/upload", d.Uploads.Upload)
	}
}
