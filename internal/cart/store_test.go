package cart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func item(id, price string, qty int) CartItem {
	return CartItem{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price), Image: "/images/" + id + ".jpg", Quantity: qty}
}

func newTestStore(t *testing.T) (*Store, *InMemoryRepository) {
	t.Helper()
	repo := NewInMemoryRepository()
	st := NewStore(repo, "s1", nil)
	require.NoError(t, st.Hydrate(context.Background()))
	return st, repo
}

func TestStore_AddMergesSameID(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	st.Add(ctx, item("2", "39.99", 1))
	st.Add(ctx, item("2", "39.99", 2))

	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, st.ItemCount())
	assert.Equal(t, "119.97", st.Total().String())
}

func TestStore_AddClampsQuantity(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	st.Add(ctx, item("1", "24.99", 0))
	st.Add(ctx, item("3", "45.00", -4))

	for _, it := range st.Items() {
		assert.Equal(t, 1, it.Quantity, it.ID)
	}
	assert.Equal(t, 2, st.ItemCount())
}

func TestStore_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	st.Add(ctx, item("5", "1", 1))
	st.Add(ctx, item("1", "1", 1))
	st.Add(ctx, item("5", "1", 1))
	st.Add(ctx, item("3", "1", 1))

	var ids []string
	for _, it := range st.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"5", "1", "3"}, ids)
}

func TestStore_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	st.Add(ctx, item("1", "24.99", 2))

	st.UpdateQuantity(ctx, "1", 5)
	assert.Equal(t, 5, st.ItemCount())

	st.UpdateQuantity(ctx, "1", 0)
	assert.Equal(t, 1, st.ItemCount(), "quantity never drops below one")

	st.UpdateQuantity(ctx, "missing", 7)
	require.Len(t, st.Items(), 1)
	assert.Equal(t, 1, st.ItemCount())
}

func TestStore_RemoveAndClear(t *testing.T) {
	ctx := context.Background()
	st, repo := newTestStore(t)
	st.Add(ctx, item("1", "24.99", 1))
	st.Add(ctx, item("2", "39.99", 1))

	st.Remove(ctx, "missing")
	assert.Len(t, st.Items(), 2)

	st.Remove(ctx, "1")
	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)

	st.Clear(ctx)
	assert.Empty(t, st.Items())
	assert.Equal(t, 0, st.ItemCount())
	assert.True(t, st.Total().IsZero())

	_, err := repo.Load(ctx, "s1", StorageKey)
	assert.ErrorIs(t, err, ErrSnapshotMissing)
}

func TestStore_RemoveThenUpdateIsNoop(t *testing.T) {
	ctx := context.Background()
	st, repo := newTestStore(t)
	st.Add(ctx, item("1", "24.99", 1))
	st.Add(ctx, item("2", "39.99", 2))

	st.Remove(ctx, "2")
	before, err := repo.Load(ctx, "s1", StorageKey)
	require.NoError(t, err)

	st.UpdateQuantity(ctx, "2", 4)

	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, 1, st.ItemCount())
	after, err := repo.Load(ctx, "s1", StorageKey)
	require.NoError(t, err)
	assert.Equal(t, before, after, "no snapshot write for an absent line")
}

func TestStore_QuantityIsCapped(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	st.Add(ctx, item("2", "39.99", math.MaxInt))
	st.Add(ctx, item("2", "39.99", 1))
	assert.Equal(t, MaxQuantity, st.ItemCount())
	assert.Equal(t, "3959.01", st.Total().StringFixed(2))

	st.Add(ctx, item("4", "28.99", 98))
	st.Add(ctx, item("4", "28.99", 5))
	st.UpdateQuantity(ctx, "2", math.MaxInt)
	for _, it := range st.Items() {
		assert.Equal(t, MaxQuantity, it.Quantity, it.ID)
	}
	assert.True(t, st.Summary().Total.IsPositive())
}

func TestStore_ItemsIsACopy(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	st.Add(ctx, item("1", "24.99", 1))

	items := st.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, st.ItemCount())
}

func TestStore_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	st, repo := newTestStore(t)
	st.Add(ctx, item("2", "39.99", 3))
	st.Add(ctx, item("4", "34.99", 1))

	reloaded := NewStore(repo, "s1", nil)
	require.NoError(t, reloaded.Hydrate(ctx))
	assert.Equal(t, st.Items(), reloaded.Items())

	other := NewStore(repo, "s2", nil)
	require.NoError(t, other.Hydrate(ctx))
	assert.Empty(t, other.Items(), "snapshots are scoped to the session")
}

func TestStore_HydrateDiscardsBadSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	require.NoError(t, repo.Save(ctx, "s1", StorageKey, []byte("{not json")))

	core, logs := observer.New(zap.WarnLevel)
	st := NewStore(repo, "s1", zap.New(core))
	require.NoError(t, st.Hydrate(ctx))

	assert.Empty(t, st.Items())
	assert.Equal(t, 1, logs.FilterMessage("discarding unreadable cart snapshot").Len())
}

// flakyRepository fails the first Load and then behaves.
type flakyRepository struct {
	*InMemoryRepository
	failures int
}

func (r *flakyRepository) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	if r.failures > 0 {
		r.failures--
		return nil, errors.New("connection reset")
	}
	return r.InMemoryRepository.Load(ctx, sessionID, key)
}

func TestStore_HydrateRetriesAfterLoadError(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepository{InMemoryRepository: NewInMemoryRepository(), failures: 1}
	saved := NewStore(repo.InMemoryRepository, "s1", nil)
	require.NoError(t, saved.Hydrate(ctx))
	saved.Add(ctx, item("2", "39.99", 3))

	st := NewStore(repo, "s1", nil)
	assert.Error(t, st.Hydrate(ctx))

	require.NoError(t, st.Hydrate(ctx))
	st.Add(ctx, item("4", "28.99", 1))

	data, err := repo.InMemoryRepository.Load(ctx, "s1", StorageKey)
	require.NoError(t, err)
	persisted, err := decodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, "2", persisted[0].ID)
	assert.Equal(t, 3, persisted[0].Quantity)
}

func TestStore_CheckoutKeepsLinesAddedMeanwhile(t *testing.T) {
	ctx := context.Background()
	st, repo := newTestStore(t)
	st.Add(ctx, item("2", "39.99", 1))

	var checkedOut []CartItem
	err := st.Checkout(ctx, func(items []CartItem) error {
		checkedOut = items
		st.Add(ctx, item("5", "45.99", 1))
		return nil
	})
	require.NoError(t, err)

	require.Len(t, checkedOut, 1)
	assert.Equal(t, "2", checkedOut[0].ID)
	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "5", items[0].ID)

	data, err := repo.Load(ctx, "s1", StorageKey)
	require.NoError(t, err)
	persisted, err := decodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, items, persisted)
}

func TestStore_CheckoutRestoresOnFailure(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	st.Add(ctx, item("2", "39.99", 2))
	st.Add(ctx, item("1", "24.99", 1))

	boom := errors.New("insert failed")
	err := st.Checkout(ctx, func([]CartItem) error {
		st.Add(ctx, item("1", "24.99", 1))
		st.Add(ctx, item("6", "22.99", 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var ids []string
	for _, it := range st.Items() {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"2", "1", "6"}, ids)
	assert.Equal(t, 5, st.ItemCount())
}

func TestStore_CheckoutEmpty(t *testing.T) {
	st, _ := newTestStore(t)
	called := false
	err := st.Checkout(context.Background(), func([]CartItem) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrEmpty)
	assert.False(t, called)
}

type failingRepository struct {
	*InMemoryRepository
}

func (failingRepository) Save(context.Context, string, string, []byte) error {
	return errors.New("disk full")
}

func TestStore_SaveFailureIsLoggedNotReturned(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.WarnLevel)
	st := NewStore(failingRepository{NewInMemoryRepository()}, "s1", zap.New(core))
	require.NoError(t, st.Hydrate(ctx))

	st.Add(ctx, item("1", "24.99", 2))

	assert.Equal(t, 2, st.ItemCount())
	entries := logs.FilterMessage("cart snapshot save failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].ContextMap()["session_id"])
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Add(ctx, item("1", "24.99", 1))
		}()
	}
	wg.Wait()

	items := st.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 50, items[0].Quantity)
}
