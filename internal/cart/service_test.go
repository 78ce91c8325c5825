package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_StorePerSession(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemoryRepository(), nil)

	a, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	again, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, a, again)

	b, err := svc.Store(ctx, "b")
	require.NoError(t, err)
	a.Add(ctx, item("1", "24.99", 1))
	assert.Empty(t, b.Items())

	_, err = svc.Store(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_StoreReportsLoadError(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepository{InMemoryRepository: NewInMemoryRepository(), failures: 1}
	require.NoError(t, repo.Save(ctx, "a", StorageKey, []byte(`[{"id":"2","price":"39.99","quantity":3}]`)))
	svc := NewService(repo, nil)

	_, err := svc.Store(ctx, "a")
	assert.Error(t, err)

	st, err := svc.Store(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 3, st.ItemCount())
}

func TestService_EvictIdle(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	svc := NewService(repo, nil)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	idle, err := svc.Store(ctx, "idle")
	require.NoError(t, err)
	idle.Add(ctx, item("1", "24.99", 2))

	now = now.Add(90 * time.Minute)
	active, err := svc.Store(ctx, "active")
	require.NoError(t, err)
	active.Add(ctx, item("2", "39.99", 1))

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, svc.EvictIdle(ctx, time.Hour))
	assert.Equal(t, 1, svc.Len())

	_, err = repo.Load(ctx, "idle", StorageKey)
	assert.True(t, errors.Is(err, ErrSnapshotMissing), "idle snapshot deleted")

	again, err := svc.Store(ctx, "active")
	require.NoError(t, err)
	assert.Same(t, active, again)
	assert.Equal(t, 1, again.ItemCount())

	fresh, err := svc.Store(ctx, "idle")
	require.NoError(t, err)
	assert.NotSame(t, idle, fresh)
	assert.Empty(t, fresh.Items())
}
