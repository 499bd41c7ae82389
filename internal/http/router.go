package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"quadras/web/internal/authctx"
	"quadras/web/internal/config"
	"quadras/web/internal/cooldown"
	"quadras/web/internal/domain/arena"
	"quadras/web/internal/domain/booking"
	"quadras/web/internal/domain/court"
	"quadras/web/internal/domain/opengame"
	"quadras/web/internal/domain/subscription"
	"quadras/web/internal/guard"
	"quadras/web/internal/handlers"
	"quadras/web/internal/listing"
	"quadras/web/internal/middleware"
	"quadras/web/internal/payment"
	"quadras/web/internal/recurrence"
	"quadras/web/internal/session"

	"github.com/go-chi/chi/v5"
)

// CodeResender is the backend call behind "resend verification code".
type CodeResender interface {
	ResendCode(ctx context.Context, email string) error
}

type RouterDeps struct {
	Cfg      config.Config
	Logger   *slog.Logger
	Verifier session.Verifier
	Guard    guard.Table

	BookingSvc      *booking.Service
	CourtSvc        *court.Service
	ArenaSvc        *arena.Service
	OpenGameSvc     *opengame.Service
	SubscriptionSvc *subscription.Service
	PaymentSvc      *payment.Service

	AthleteActions recurrence.AthleteActions
	ArenaActions   recurrence.ArenaActions

	Resender CodeResender
	Cooldown *cooldown.Limiter

	Uploads  *handlers.Uploads
	Checkout *handlers.Checkout
}

func NewRouter(d RouterDeps) http.Handler {
	if d.Guard == nil {
		d.Guard = guard.DefaultTable()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))
	r.Use(middleware.WithSession(d.Verifier, d.Cfg.SessionCookie))
	r.Use(guard.Middleware(d.Guard, guard.Options{LoginPath: d.Cfg.LoginPath, DeniedPath: d.Cfg.DeniedPath}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, 200, map[string]any{"ok": true, "ts": time.Now().UTC().Format(time.RFC3339)})
	})

	mountPublic(r, d)
	mountSession(r, d)
	r.Route("/api/atleta", func(ar chi.Router) { mountAthlete(ar, d) })
	r.Route("/api/arena/{arenaId}", func(ar chi.Router) {
		ar.Use(ownArena)
		mountArena(ar, d)
	})
	r.Route("/api/admin", func(ar chi.Router) { mountAdmin(ar, d) })

	mountPages(r, d)
	return r
}

// ownArena refuses arena routes for an arena other than the caller's own.
func ownArena(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := authctx.Principal(r.Context())
		arenaID := chi.URLParam(r, "arenaId")
		if p == nil || (p.ArenaID != "" && p.ArenaID != arenaID) {
			Fail(w, 403, "arena does not belong to the caller")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// parseList reads the filter and page cursor of a list page.
func parseList(r *http.Request) (listing.Filter, listing.Cursor, error) {
	q := r.URL.Query()
	f, err := listing.ParseFilter(q)
	if err != nil {
		return listing.Filter{}, listing.Cursor{}, err
	}
	c, err := listing.ParseCursor(q)
	if err != nil {
		return listing.Filter{}, listing.Cursor{}, err
	}
	return f, c, nil
}
