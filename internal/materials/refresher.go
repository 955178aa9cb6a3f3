package materials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Snapshot holds the current material Store and swaps in new ones built
// from the repository. Readers always see a complete, validated snapshot.
type Snapshot struct {
	mu    sync.RWMutex
	store *Store
}

// NewSnapshot wraps an initial store.
func NewSnapshot(store *Store) *Snapshot {
	return &Snapshot{store: store}
}

// Current returns the live store.
func (s *Snapshot) Current() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store
}

// Swap replaces the live store.
func (s *Snapshot) Swap(store *Store) {
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
}

// Refresher periodically rebuilds the material snapshot from the
// externally synchronized repository. A failed rebuild keeps the previous
// snapshot: a stale library beats a missing one.
type Refresher struct {
	snapshot *Snapshot
	repo     Repository
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
	timeout  time.Duration
}

// NewRefresher creates a refresher on a cron schedule (e.g. "@hourly").
func NewRefresher(snapshot *Snapshot, repo Repository, schedule string, logger *zap.Logger) *Refresher {
	return &Refresher{
		snapshot: snapshot,
		repo:     repo,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
		timeout:  30 * time.Second,
	}
}

// Refresh rebuilds the snapshot once.
func (r *Refresher) Refresh(ctx context.Context) error {
	records, err := r.repo.ListMaterials(ctx)
	if err != nil {
		return fmt.Errorf("failed to load materials: %w", err)
	}
	store, err := NewStore(records)
	if err != nil {
		return fmt.Errorf("failed to build material store: %w", err)
	}
	r.snapshot.Swap(store)
	r.logger.Info("Material snapshot refreshed", zap.Int("materials", store.Len()))
	return nil
}

// Start begins the periodic refresh.
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			r.logger.Error("Material snapshot refresh failed, keeping previous snapshot", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the periodic refresh and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
