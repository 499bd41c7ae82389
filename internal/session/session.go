package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type Role string

const (
	RoleArena   Role = "ARENA"
	RoleAthlete Role = "ATLETA"
	RoleAdmin   Role = "ADMIN"
)

var (
	ErrMissingToken = errors.New("missing session token")
	ErrInvalidToken = errors.New("invalid session token")
	ErrUnknownRole  = errors.New("unknown role")
)

func IsErrMissingToken(err error) bool { return errors.Is(err, ErrMissingToken) }
func IsErrInvalidToken(err error) bool { return errors.Is(err, ErrInvalidToken) }
func IsErrUnknownRole(err error) bool  { return errors.Is(err, ErrUnknownRole) }

// ParseRole accepts the role claim in any letter case.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleArena:
		return RoleArena, true
	case RoleAthlete:
		return RoleAthlete, true
	case RoleAdmin:
		return RoleAdmin, true
	}
	return "", false
}

// Principal is the authenticated caller of one request.
type Principal struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
	// ArenaID is set for ARENA users whose claim carries the arena they own.
	ArenaID string `json:"arenaId,omitempty"`

	Token string `json:"-"`
}

func (p *Principal) Has(role Role) bool {
	return p != nil && p.Role == role
}

// Verifier turns a token issued by the auth provider into a Principal.
// Refresh is the imperative update(): it re-reads the claims and may hand
// back a new token.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
	Refresh(ctx context.Context, p *Principal) (*Principal, error)
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > len("bearer ") && strings.EqualFold(h[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	if cookieName == "" {
		return ""
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// roleFromClaims reads the role the same way it is written by cmd/set-role,
// while still accepting older shapes (roles array or admin flag).
func roleFromClaims(claims map[string]any) (Role, bool) {
	if claims == nil {
		return "", false
	}
	if s, ok := claims["role"].(string); ok {
		if r, ok := ParseRole(s); ok {
			return r, true
		}
	}
	if roles, ok := claims["roles"].([]any); ok {
		for _, v := range roles {
			if s, ok := v.(string); ok {
				if r, ok := ParseRole(s); ok {
					return r, true
				}
			}
		}
	}
	if admin, ok := claims["admin"].(bool); ok && admin {
		return RoleAdmin, true
	}
	return "", false
}

func stringClaim(claims map[string]any, key string) string {
	s, _ := claims[key].(string)
	return s
}

// RoleClaims is the custom-claims shape read back by roleFromClaims.
func RoleClaims(role Role, arenaID string) map[string]any {
	claims := map[string]any{"role": string(role)}
	if role == RoleArena && arenaID != "" {
		claims["arenaId"] = arenaID
	}
	return claims
}
