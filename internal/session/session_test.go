package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" arena ")
	assert.True(t, ok)
	assert.Equal(t, RoleArena, r)

	_, ok = ParseRole("coach")
	assert.False(t, ok)
}

func TestTokenFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def")
	assert.Equal(t, "abc.def", TokenFromRequest(req, "session"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(req, "session"))
	assert.Equal(t, "", TokenFromRequest(req, ""))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic Zm9vOmJhcg==")
	assert.Equal(t, "", TokenFromRequest(req, "session"))
}

func TestRoleFromClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]any
		want   Role
		ok     bool
	}{
		{"role string", map[string]any{"role": "ATLETA"}, RoleAthlete, true},
		{"roles array", map[string]any{"roles": []any{"staff", "arena"}}, RoleArena, true},
		{"admin flag", map[string]any{"admin": true}, RoleAdmin, true},
		{"nothing", map[string]any{"email": "x@y"}, "", false},
		{"nil", nil, "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := roleFromClaims(tc.claims)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRoleClaimsRoundTrip(t *testing.T) {
	claims := RoleClaims(RoleArena, "a1")
	role, ok := roleFromClaims(claims)
	assert.True(t, ok)
	assert.Equal(t, RoleArena, role)
	assert.Equal(t, "a1", stringClaim(claims, "arenaId"))

	claims = RoleClaims(RoleAthlete, "a1")
	assert.NotContains(t, claims, "arenaId")
}

func TestJWTVerifier(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewJWTVerifier(secret, time.Hour)
	v.now = func() time.Time { return now }

	tok, err := v.Issue(Principal{UID: "u1", Email: "a@b.c", Role: RoleArena, ArenaID: "ar1"})
	require.NoError(t, err)

	p, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UID)
	assert.Equal(t, RoleArena, p.Role)
	assert.Equal(t, "ar1", p.ArenaID)
	assert.Equal(t, tok, p.Token)

	t.Run("expired", func(t *testing.T) {
		later := NewJWTVerifier(secret, time.Hour)
		later.now = func() time.Time { return now.Add(2 * time.Hour) }
		_, err := later.Verify(context.Background(), tok)
		assert.True(t, IsErrInvalidToken(err))
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTVerifier([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		other.now = v.now
		_, err := other.Verify(context.Background(), tok)
		assert.True(t, IsErrInvalidToken(err))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := v.Verify(context.Background(), "")
		assert.True(t, IsErrMissingToken(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		bad, err := v.Issue(Principal{UID: "u2", Role: "COACH"})
		require.NoError(t, err)
		_, err = v.Verify(context.Background(), bad)
		assert.ErrorIs(t, err, ErrUnknownRole)
	})

	t.Run("refresh extends expiry", func(t *testing.T) {
		v.now = func() time.Time { return now.Add(50 * time.Minute) }
		defer func() { v.now = func() time.Time { return now } }()

		out, err := v.Refresh(context.Background(), p)
		require.NoError(t, err)
		assert.NotEqual(t, tok, out.Token)

		v.now = func() time.Time { return now.Add(100 * time.Minute) }
		again, err := v.Verify(context.Background(), out.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", again.UID)
	})
}

type fakeFirebase struct {
	token *auth.Token
	user  *auth.UserRecord
	err   error
}

func (f *fakeFirebase) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return f.token, f.err
}

func (f *fakeFirebase) GetUser(context.Context, string) (*auth.UserRecord, error) {
	return f.user, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	fb := &fakeFirebase{
		token: &auth.Token{UID: "u9", Claims: map[string]any{"role": "atleta", "email": "u9@x.com"}},
		user: &auth.UserRecord{
			UserInfo:     &auth.UserInfo{UID: "u9", Email: "u9@x.com", DisplayName: "Nove"},
			CustomClaims: map[string]any{"role": "ARENA", "arenaId": "a1"},
		},
	}
	v := NewFirebaseVerifier(fb)

	p, err := v.Verify(context.Background(), "id-token")
	require.NoError(t, err)
	assert.Equal(t, RoleAthlete, p.Role)
	assert.Equal(t, "u9@x.com", p.Email)

	refreshed, err := v.Refresh(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, RoleArena, refreshed.Role)
	assert.Equal(t, "a1", refreshed.ArenaID)
	assert.Equal(t, "Nove", refreshed.Name)
	assert.Equal(t, "id-token", refreshed.Token)
	assert.Equal(t, RoleAthlete, p.Role)

	fb.err = errors.New("expired")
	_, err = v.Verify(context.Background(), "id-token")
	assert.True(t, IsErrInvalidToken(err))
}
