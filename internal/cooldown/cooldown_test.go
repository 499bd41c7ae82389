package cooldown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	l := NewLimiter(s, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx, "Ana@Example.com"))

	now = now.Add(20 * time.Second)
	err := l.Acquire(ctx, " ana@example.com")
	require.True(t, IsErrCoolingDown(err))
	var wait *WaitError
	require.ErrorAs(t, err, &wait)
	assert.Equal(t, 40*time.Second, wait.Remaining)

	require.NoError(t, l.Acquire(ctx, "bia@example.com"))

	now = now.Add(41 * time.Second)
	require.NoError(t, l.Acquire(ctx, "ana@example.com"))
}

func TestMemoryStoreRelease(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), time.Minute)
	ctx := context.Background()

	require.NoError(t, l.Acquire(ctx, "a@b.com"))
	require.Error(t, l.Acquire(ctx, "a@b.com"))
	require.NoError(t, l.Release(ctx, "a@b.com"))
	require.NoError(t, l.Acquire(ctx, "a@b.com"))
}

func TestRedisStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewLimiter(NewRedisStore(db, "resend:"), time.Minute)
	ctx := context.Background()

	mock.ExpectSetNX("resend:a@b.com", "1", time.Minute).SetVal(true)
	require.NoError(t, l.Acquire(ctx, "A@b.com"))

	mock.ExpectSetNX("resend:a@b.com", "1", time.Minute).SetVal(false)
	mock.ExpectTTL("resend:a@b.com").SetVal(25 * time.Second)
	err := l.Acquire(ctx, "a@b.com")
	var wait *WaitError
	require.ErrorAs(t, err, &wait)
	assert.Equal(t, 25*time.Second, wait.Remaining)

	mock.ExpectDel("resend:a@b.com").SetVal(1)
	require.NoError(t, l.Release(ctx, "a@b.com"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	l := NewLimiter(NewRedisStore(db, ""), time.Minute)

	mock.ExpectSetNX("k", "1", time.Minute).SetErr(errors.New("connection refused"))
	err := l.Acquire(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, IsErrCoolingDown(err))
}
