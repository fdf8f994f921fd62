package service

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.otp.Issue(ctx, "old@example.com", "", domain.PurposeSignup))
	f.clock.Advance(5 * time.Minute)
	require.NoError(t, f.otp.Issue(ctx, "new@example.com", "", domain.PurposeSignup))
	f.clock.Advance(6 * time.Minute)

	hk := NewHousekeepingService(f.store, discardLogger(), 0)
	hk.Now = f.clock.Now
	require.Equal(t, 10*time.Minute, hk.Interval)

	require.Equal(t, int64(1), hk.Cleanup(ctx))
	require.Equal(t, int64(0), hk.Cleanup(ctx))

	_, err := f.otp.Verify(ctx, "new@example.com", f.mailer.lastCode(t, "new@example.com"), "", domain.PurposeSignup)
	require.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)

	hk := NewHousekeepingService(f.store, discardLogger(), time.Hour)
	hk.Stop()

	hk.Start()
	hk.Start()
	hk.Stop()
	hk.Stop()

	// Restartable after a stop.
	hk.Start()
	hk.Stop()
}

func TestHousekeepingRunsImmediately(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.otp.Issue(ctx, "stale@example.com", "", domain.PurposeSignup))
	f.clock.Advance(11 * time.Minute)

	hk := NewHousekeepingService(f.store, discardLogger(), time.Hour)
	hk.Now = f.clock.Now
	hk.Start()
	hk.Stop()

	require.Equal(t, int64(0), hk.Cleanup(ctx))
}
