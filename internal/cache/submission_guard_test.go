package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGuard_ClaimOnce(t *testing.T) {
	g := NewMemoryGuard(time.Minute, time.Now)
	ctx := context.Background()

	ok, err := g.Claim(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Claim(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, ok, "second claim of the same token is refused")

	ok, _ = g.Claim(ctx, "tok-2")
	assert.True(t, ok)
}

func TestMemoryGuard_ReleaseAllowsResubmit(t *testing.T) {
	g := NewMemoryGuard(time.Minute, time.Now)
	ctx := context.Background()

	g.Claim(ctx, "tok")
	require.NoError(t, g.Release(ctx, "tok"))

	ok, _ := g.Claim(ctx, "tok")
	assert.True(t, ok)
}

func TestMemoryGuard_Expiry(t *testing.T) {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	g := NewMemoryGuard(time.Minute, func() time.Time { return now })
	ctx := context.Background()

	g.Claim(ctx, "tok")
	now = now.Add(2 * time.Minute)

	ok, _ := g.Claim(ctx, "tok")
	assert.True(t, ok)
}

func TestNewSubmissionGuard_FallsBackWithoutRedis(t *testing.T) {
	require.False(t, Enabled())
	_, ok := NewSubmissionGuard(time.Minute).(*MemoryGuard)
	assert.True(t, ok)
	assert.False(t, IsHealthy(context.Background()))
}
