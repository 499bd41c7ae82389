package middleware

import (
	"net/http"

	"quadras/web/internal/authctx"
	"quadras/web/internal/logging"
	"quadras/web/internal/session"
)

// WithSession resolves the caller's token into a principal when one is sent.
// Anonymous requests pass through untouched; the route guard decides later
// whether the path needs a principal.
func WithSession(v session.Verifier, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := session.TokenFromRequest(r, cookieName)
			if token == "" || v == nil {
				next.ServeHTTP(w, r)
				return
			}

			p, err := v.Verify(r.Context(), token)
			if err != nil {
				logging.FromContext(r.Context()).InfoContext(r.Context(), "session rejected", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := authctx.WithPrincipal(r.Context(), p)
			logger := logging.FromContext(ctx).With("uid", p.UID, "role", string(p.Role))
			ctx = logging.ContextWithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
