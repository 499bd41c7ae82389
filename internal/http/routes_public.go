package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"quadras/web/internal/authctx"
	"quadras/web/internal/cooldown"
	"quadras/web/internal/validation"

	"github.com/go-chi/chi/v5"
)

type resendInput struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

func mountPublic(r chi.Router, d RouterDeps) {
	// ===== Arenas =====
	r.Get("/api/arenas", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.ArenaSvc.List(r.Context(), f, c)
		if err != nil {
			failErr(w, r, err, mapArenaError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/api/arenas/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArenaSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArenaError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/api/arenas/{id}/avaliacoes", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.ArenaSvc.Reviews(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapArenaError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Courts =====
	r.Get("/api/quadras", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		out, err := d.CourtSvc.List(r.Context(), f, c)
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/api/quadras/{id}", func(w http.ResponseWriter, r *http.Request) {
		out, err := d.CourtSvc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 200, out)
	})

	r.Get("/api/quadras/{id}/horarios", func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("data"))
		out, err := d.CourtSvc.Slots(r.Context(), chi.URLParam(r, "id"), date)
		if err != nil {
			failErr(w, r, err, mapCourtError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Open games =====
	r.Get("/api/jogos-abertos", func(w http.ResponseWriter, r *http.Request) {
		f, c, err := parseList(r)
		if err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		uid, _ := authctx.UID(r.Context())
		out, err := d.OpenGameSvc.List(r.Context(), uid, f, c)
		if err != nil {
			failErr(w, r, err, mapOpenGameError)
			return
		}
		WriteJSON(w, 200, out)
	})

	// ===== Verification code =====
	r.Post("/api/auth/reenviar-codigo", func(w http.ResponseWriter, r *http.Request) {
		var in resendInput
		if err := decode(r, &in); err != nil {
			Fail(w, 400, "invalid json")
			return
		}
		in.Email = strings.ToLower(strings.TrimSpace(in.Email))
		if err := validation.Struct(in); err != nil {
			failErr(w, r, err, mapCommonError)
			return
		}
		if d.Cooldown == nil || d.Resender == nil {
			Fail(w, 501, "verification codes are not configured")
			return
		}

		if err := d.Cooldown.Acquire(r.Context(), in.Email); err != nil {
			var wait *cooldown.WaitError
			if errors.As(err, &wait) {
				secs := int(wait.Remaining.Seconds() + 0.999)
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				WriteJSON(w, 429, APIError{
					Message:    "Aguarde " + strconv.Itoa(secs) + "s para reenviar o código.",
					RetryAfter: secs,
				})
				return
			}
			failErr(w, r, err, mapCommonError)
			return
		}

		if err := d.Resender.ResendCode(r.Context(), in.Email); err != nil {
			_ = d.Cooldown.Release(r.Context(), in.Email)
			failErr(w, r, err, mapCommonError)
			return
		}
		WriteJSON(w, 202, map[string]any{
			"sent":       true,
			"retryAfter": int(d.Cooldown.TTL().Seconds()),
		})
	})
}
