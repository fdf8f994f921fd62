package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
)

// DefaultHousekeepingInterval is used when no interval is configured.
const DefaultHousekeepingInterval = 10 * time.Minute

// HousekeepingService periodically deletes expired credentials. Expiry is
// already enforced when a code is redeemed; this only keeps the table from
// growing.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = DefaultHousekeepingInterval
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
	}
}

// Start launches the reaper; it runs one pass immediately and then every
// Interval. Calling Start on a running service does nothing.
func (s *HousekeepingService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop cancels the reaper and waits for an in-flight pass to finish. It is
// safe to call on a service that was never started.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// The first pass always completes, even if Stop races it.
	s.Cleanup(context.WithoutCancel(ctx))
	for {
		select {
		case <-ticker.C:
			s.Cleanup(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Cleanup runs one pass and returns how many credentials were removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	n, err := s.Store.Credentials().DeleteExpiredCredentials(ctx, clock(s.Now))
	if err != nil {
		if ctx.Err() == nil {
			s.Logger.Error("failed to delete expired credentials", "error", err)
		}
		return 0
	}

	if n > 0 {
		s.Logger.Info("housekeeping cleanup completed", "expired_credentials", n)
	}
	return n
}
