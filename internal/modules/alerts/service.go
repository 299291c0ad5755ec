// README: Alert feed service plus the periodic poll loop for live alerts.
package alerts

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"roadtrip/internal/ai"
	"roadtrip/internal/config"
	"roadtrip/internal/types"
)

// checkTimeout bounds a single poll so a slow model call cannot pile up
// behind the next tick.
const checkTimeout = 20 * time.Second

var ErrNotFound = errors.New("alert not found")

// Checker is the alert-variant structured-generation call. A failed check is
// indistinguishable from "zero alerts this tick".
type Checker interface {
	CheckRouteAlerts(ctx context.Context, order []string) ([]ai.RouteAlert, error)
}

// Service owns the live alert feed and the polling goroutine. At most one
// poll loop is live at a time; Activate cancels any predecessor first.
type Service struct {
	checker Checker
	cfg     config.AlertConfig

	mu     sync.Mutex
	feed   []Alert
	cancel context.CancelFunc
}

func NewService(checker Checker, cfg config.AlertConfig) *Service {
	return &Service{checker: checker, cfg: cfg}
}

func (s *Service) capacity() int {
	if s.cfg.Capacity > 0 {
		return s.cfg.Capacity
	}
	return DefaultCapacity
}

func (s *Service) pollPeriod() time.Duration {
	if s.cfg.PollSeconds > 0 {
		return time.Duration(s.cfg.PollSeconds) * time.Second
	}
	return 30 * time.Second
}

// Merge prepends a batch of new alerts (in the order received) and truncates
// the feed to capacity. Insertion order defines recency.
func (s *Service) Merge(batch []ai.RouteAlert) {
	if len(batch) == 0 {
		return
	}
	now := time.Now()
	incoming := make([]Alert, len(batch))
	for i, a := range batch {
		incoming[i] = Alert{
			ID:        types.ID(uuid.NewString()),
			Type:      Type(a.Type),
			Message:   a.Message,
			Timestamp: now,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = append(incoming, s.feed...)
	if limit := s.capacity(); len(s.feed) > limit {
		s.feed = s.feed[:limit]
	}
}

// Dismiss removes exactly the alert with the given id, leaving the relative
// order of the rest unchanged.
func (s *Service) Dismiss(id types.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.feed {
		if a.ID == id {
			s.feed = append(s.feed[:i], s.feed[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// List returns a copy of the feed, most recent first.
func (s *Service) List() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Alert, len(s.feed))
	copy(out, s.feed)
	return out
}

// Clear empties the feed. It does not touch the poll loop.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = nil
}

// Activate starts the poll loop for the given visit order, replacing any
// loop already running. The order slice is copied; callers may mutate theirs.
func (s *Service) Activate(order []string) {
	snapshot := make([]string, len(order))
	copy(snapshot, order)

	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(ctx, snapshot)
}

// Deactivate stops the poll loop. Safe to call when idle; after it returns
// no further ticks fire.
func (s *Service) Deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Service) run(ctx context.Context, order []string) {
	ticker := time.NewTicker(s.pollPeriod())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkOnce(ctx, order)
		}
	}
}

func (s *Service) checkOnce(ctx context.Context, order []string) {
	callCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	batch, err := s.checker.CheckRouteAlerts(callCtx, order)
	if err != nil {
		// Best effort: a failed poll is the same as an all-clear tick.
		log.Printf("alert poll: %v", err)
		return
	}
	if ctx.Err() != nil {
		// Deactivated while the check was in flight. Its result belongs to
		// a trip that no longer exists and must not reach the feed.
		return
	}
	s.Merge(batch)
}
