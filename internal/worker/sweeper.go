package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// PendingExpirer exposes the subset of application functionality required by the sweeper.
type PendingExpirer interface {
	ExpirePending(ttl time.Duration) int
}

// PendingSweeper periodically evicts gateway transactions whose redirect
// callback never arrived, so the in-memory registry cannot grow without
// bound.
type PendingSweeper struct {
	facade   PendingExpirer
	interval time.Duration
	ttl      time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPendingSweeper constructs the sweeper.
func NewPendingSweeper(facade PendingExpirer, interval, ttl time.Duration, logger *slog.Logger) *PendingSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &PendingSweeper{
		facade:   facade,
		interval: interval,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start launches the background sweep loop.
func (s *PendingSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop terminates the loop and waits for it to finish.
func (s *PendingSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *PendingSweeper) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.facade.ExpirePending(s.ttl); evicted > 0 {
				s.logger.Info("pending payments swept", slog.Int("evicted", evicted))
			}
		}
	}
}
