package cart

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/skincare-storefront/internal/logging"
	"go.uber.org/zap"
)

// Store is the cart of one session. Every mutation runs under a single
// mutex and is followed by a snapshot write.
type Store struct {
	mu        sync.Mutex
	items     []CartItem
	hydrated  bool
	repo      SnapshotRepository
	sessionID string
	key       string
	logger    *zap.Logger
	now       func() time.Time
}

// NewStore builds an empty store bound to sessionID. Call Hydrate before use
// to restore a previous snapshot.
func NewStore(repo SnapshotRepository, sessionID string, logger *zap.Logger) *Store {
	return &Store{
		items:     []CartItem{},
		repo:      repo,
		sessionID: sessionID,
		key:       StorageKey,
		logger:    logging.OrNop(logger).With(zap.String("session_id", sessionID)),
		now:       time.Now,
	}
}

// Hydrate loads the saved snapshot once. A missing, malformed or
// unsupported snapshot leaves the cart empty. A failing repository is
// returned as an error and the load is retried on the next call, so a
// saved cart is never overwritten by an empty one.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hydrated {
		return nil
	}

	data, err := s.repo.Load(ctx, s.sessionID, s.key)
	if errors.Is(err, ErrSnapshotMissing) {
		s.hydrated = true
		return nil
	}
	if err != nil {
		s.logger.Warn("cart snapshot load failed", zap.Error(err))
		return fmt.Errorf("load cart snapshot: %w", err)
	}
	s.hydrated = true

	items, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Warn("discarding unreadable cart snapshot", zap.Error(err))
		return nil
	}
	s.items = items
	return nil
}

// Add merges item into the cart. A line with the same id has its quantity
// increased; quantities are kept within [1, MaxQuantity].
func (s *Store) Add(ctx context.Context, item CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.Quantity = clampQuantity(item.Quantity)
	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity = clampQuantity(s.items[i].Quantity + item.Quantity)
	} else {
		s.items = append(s.items, item)
	}
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of line id, clamped to [1, MaxQuantity].
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items[i].Quantity = clampQuantity(quantity)
	s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.persist(ctx)
}

// Clear empties the cart and drops its snapshot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = []CartItem{}
	s.drop(ctx)
}

// Checkout takes every line out of the cart and hands them to fn. The cart
// is emptied before fn runs, so lines added meanwhile stay in the cart for
// the next checkout. When fn fails the taken lines are put back in front of
// anything added in the meantime.
func (s *Store) Checkout(ctx context.Context, fn func(items []CartItem) error) error {
	s.mu.Lock()
	if len(s.items) == 0 {
		s.mu.Unlock()
		return ErrEmpty
	}
	taken := s.items
	s.items = []CartItem{}
	s.mu.Unlock()

	err := fn(slices.Clone(taken))

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		added := s.items
		s.items = taken
		for _, it := range added {
			if i := s.indexOf(it.ID); i >= 0 {
				s.items[i].Quantity = clampQuantity(s.items[i].Quantity + it.Quantity)
			} else {
				s.items = append(s.items, it)
			}
		}
	}
	if len(s.items) == 0 {
		s.drop(ctx)
	} else {
		s.persist(ctx)
	}
	return err
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// ItemCount is the sum of all line quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total is the exact sum of price * quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Summary prices the current cart.
func (s *Store) Summary() Summary {
	return SummarizeItems(s.Items())
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it CartItem) bool { return it.ID == id })
}

// persist must be called with s.mu held. Write failures are logged only;
// the in-memory cart stays authoritative.
func (s *Store) persist(ctx context.Context) {
	data, err := encodeSnapshot(s.items, s.now())
	if err != nil {
		s.logger.Warn("cart snapshot encode failed", zap.Error(err))
		return
	}
	if err := s.repo.Save(ctx, s.sessionID, s.key, data); err != nil {
		s.logger.Warn("cart snapshot save failed", zap.Error(err))
	}
}

// drop removes the snapshot of an empty cart. Must be called with s.mu held.
func (s *Store) drop(ctx context.Context) {
	if err := s.repo.Delete(ctx, s.sessionID, s.key); err != nil {
		s.logger.Warn("cart snapshot delete failed", zap.Error(err))
	}
}
