package authctx

import (
	"context"

	"quadras/web/internal/session"
)

type ctxKey string

const principalKey ctxKey = "principal"

func WithPrincipal(ctx context.Context, p *session.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func Principal(ctx context.Context) (*session.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*session.Principal)
	return p, ok && p != nil
}

func UID(ctx context.Context) (string, bool) {
	p, ok := Principal(ctx)
	if !ok || p.UID == "" {
		return "", false
	}
	return p.UID, true
}

// Token is the caller's token, forwarded to the backend as-is.
func Token(ctx context.Context) string {
	if p, ok := Principal(ctx); ok {
		return p.Token
	}
	return ""
}
