package session

import (
	"context"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	Role    string `json:"role"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	ArenaID string `json:"arenaId,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier handles HS256 session tokens shared with the auth provider.
type JWTVerifier struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTVerifier(secret []byte, ttl time.Duration) *JWTVerifier {
	return &JWTVerifier{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a session token for p that expires after the configured TTL.
func (v *JWTVerifier) Issue(p Principal) (string, error) {
	now := v.now()
	claims := Claims{
		Role:    string(p.Role),
		Email:   p.Email,
		Name:    p.Name,
		ArenaID: p.ArenaID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Subject == "" {
		return nil, ErrInvalidToken
	}
	role, ok := ParseRole(c.Role)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, c.Role)
	}
	return &Principal{
		UID:     c.Subject,
		Email:   c.Email,
		Name:    c.Name,
		Role:    role,
		ArenaID: c.ArenaID,
		Token:   token,
	}, nil
}

// Refresh re-issues the token with a fresh expiry.
func (v *JWTVerifier) Refresh(_ context.Context, p *Principal) (*Principal, error) {
	if p == nil || p.UID == "" {
		return nil, ErrMissingToken
	}
	tok, err := v.Issue(*p)
	if err != nil {
		return nil, err
	}
	out := *p
	out.Token = tok
	return &out, nil
}
