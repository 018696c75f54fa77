package cloudsync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gasexpress/internal/core/domain/model/kernel"
	"gasexpress/internal/pkg/metrics"
)

// DefaultDebounce is the quiet period between a tenant's last mutation and
// its snapshot publication.
const DefaultDebounce = 5 * time.Second

// publishTimeout bounds one load-and-publish cycle.
const publishTimeout = 30 * time.Second

// DebouncedSyncer implements ports.StateSyncer. Each notified tenant gets a
// per-tenant timer; further notifications within the debounce window reset
// it, so a burst of mutations produces a single snapshot. Publication runs
// on the timer goroutine and never blocks the notifying caller.
type DebouncedSyncer struct {
	loader    SnapshotLoader
	publisher SnapshotPublisher
	debounce  time.Duration
	logger    *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool

	// inflight lets Close wait for publications already started.
	inflight sync.WaitGroup
}

// NewDebouncedSyncer creates a syncer with the given quiet period.
// A non-positive debounce falls back to DefaultDebounce.
func NewDebouncedSyncer(
	loader SnapshotLoader,
	publisher SnapshotPublisher,
	debounce time.Duration,
	logger *slog.Logger,
) *DebouncedSyncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &DebouncedSyncer{
		loader:    loader,
		publisher: publisher,
		debounce:  debounce,
		logger:    logger.With("component", "cloudsync"),
		timers:    make(map[string]*time.Timer),
	}
}

// NotifyChanged schedules the tenant's snapshot after the quiet period.
// Safe for concurrent use; returns immediately.
func (s *DebouncedSyncer) NotifyChanged(tenantID kernel.TenantID) {
	key := tenantID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if timer, ok := s.timers[key]; ok {
		timer.Reset(s.debounce)
		return
	}

	s.timers[key] = time.AfterFunc(s.debounce, func() {
		s.fire(tenantID)
	})
}

// Close stops pending timers and waits for in-flight publications.
// Tenants whose timers had not fired lose their pending snapshot; the
// periodic catch-up job republishes them on the next pass.
func (s *DebouncedSyncer) Close() {
	s.mu.Lock()
	s.closed = true
	for key, timer := range s.timers {
		timer.Stop()
		delete(s.timers, key)
	}
	s.mu.Unlock()

	s.inflight.Wait()
}

func (s *DebouncedSyncer) fire(tenantID kernel.TenantID) {
	key := tenantID.String()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	delete(s.timers, key)
	s.inflight.Add(1)
	s.mu.Unlock()

	defer s.inflight.Done()

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	snapshot, err := s.loader.Load(ctx, tenantID)
	if err != nil {
		metrics.SnapshotFailuresCounter.WithLabelValues(key).Inc()
		s.logger.Error("snapshot load failed", "tenant", key, "error", err)
		return
	}

	if err = s.publisher.Publish(ctx, snapshot); err != nil {
		metrics.SnapshotFailuresCounter.WithLabelValues(key).Inc()
		s.logger.Error("snapshot publish failed", "tenant", key, "error", err)
		return
	}

	metrics.SnapshotsPublishedCounter.WithLabelValues(key).Inc()
	s.logger.Info("tenant snapshot published",
		"tenant", key,
		"orders", len(snapshot.Orders),
		"drivers", len(snapshot.Drivers),
		"products", len(snapshot.Products))
}
