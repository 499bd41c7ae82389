package session

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
)

// FirebaseAuth is the subset of *auth.Client used here.
type FirebaseAuth interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	GetUser(ctx context.Context, uid string) (*auth.UserRecord, error)
}

// FirebaseVerifier checks Firebase ID tokens. The role lives in the custom
// claim "role"; tokens without a known role are rejected.
type FirebaseVerifier struct {
	client FirebaseAuth
}

func NewFirebaseVerifier(client FirebaseAuth) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role, ok := roleFromClaims(tok.Claims)
	if !ok {
		return nil, fmt.Errorf("%w: token for %s carries no role", ErrUnknownRole, tok.UID)
	}
	return &Principal{
		UID:     tok.UID,
		Email:   stringClaim(tok.Claims, "email"),
		Name:    stringClaim(tok.Claims, "name"),
		Role:    role,
		ArenaID: stringClaim(tok.Claims, "arenaId"),
		Token:   token,
	}, nil
}

// Refresh reloads the custom claims from the user record. The ID token itself
// is renewed by the browser SDK, so the returned principal keeps the old one.
func (v *FirebaseVerifier) Refresh(ctx context.Context, p *Principal) (*Principal, error) {
	if p == nil || p.UID == "" {
		return nil, ErrMissingToken
	}
	u, err := v.client.GetUser(ctx, p.UID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role, ok := roleFromClaims(u.CustomClaims)
	if !ok {
		return nil, fmt.Errorf("%w: user %s carries no role", ErrUnknownRole, p.UID)
	}
	out := *p
	out.Role = role
	out.ArenaID = stringClaim(u.CustomClaims, "arenaId")
	if u.UserInfo != nil {
		out.Email = u.Email
		out.Name = u.DisplayName
	}
	return &out, nil
}
