package cart

import (
	"context"
	"sync"
	"time"

	"github.com/wichananm65/skincare-storefront/internal/logging"
	"go.uber.org/zap"
)

// Service owns one Store per session.
type Service struct {
	repo   SnapshotRepository
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	stores map[string]*sessionStore
}

type sessionStore struct {
	store    *Store
	lastSeen time.Time
}

func NewService(repo SnapshotRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logging.OrNop(logger),
		now:    time.Now,
		stores: make(map[string]*sessionStore),
	}
}

// Store returns the hydrated cart of sessionID, creating it on first use.
// A snapshot that cannot be loaded is reported as an error and retried on
// the next call.
func (s *Service) Store(ctx context.Context, sessionID string) (*Store, error) {
	if sessionID == "" {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	entry, ok := s.stores[sessionID]
	if !ok {
		entry = &sessionStore{store: NewStore(s.repo, sessionID, s.logger)}
		s.stores[sessionID] = entry
	}
	entry.lastSeen = s.now()
	s.mu.Unlock()

	if err := entry.store.Hydrate(ctx); err != nil {
		return nil, err
	}
	return entry.store, nil
}

// EvictIdle disposes of the carts not used for longer than idle and deletes
// their snapshots. With idle at least the session token lifetime, every
// evicted session has an expired token and can no longer reach its cart.
func (s *Service) EvictIdle(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []string
	for id, entry := range s.stores {
		if entry.lastSeen.Before(cutoff) {
			stale = append(stale, id)
			delete(s.stores, id)
		}
	}
	s.mu.Unlock()

	for _, id := range stale {
		if err := s.repo.Delete(ctx, id, StorageKey); err != nil {
			s.logger.Warn("cart snapshot delete failed", zap.String("session_id", id), zap.Error(err))
		}
	}
	if len(stale) > 0 {
		s.logger.Debug("evicted idle carts", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Len is the number of carts held in memory.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
