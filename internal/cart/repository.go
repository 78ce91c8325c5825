package cart

import (
	"context"
	"sync"
)

// SnapshotRepository stores serialized carts keyed by session and storage key.
// Load returns ErrSnapshotMissing when nothing has been saved yet.
type SnapshotRepository interface {
	Load(ctx context.Context, sessionID, key string) ([]byte, error)
	Save(ctx context.Context, sessionID, key string, payload []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}

type snapshotKey struct {
	session string
	key     string
}

// InMemoryRepository keeps snapshots for the lifetime of the process.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[snapshotKey][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{store: make(map[snapshotKey][]byte)}
}

func (r *InMemoryRepository) Load(_ context.Context, sessionID, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.store[snapshotKey{sessionID, key}]
	if !ok {
		return nil, ErrSnapshotMissing
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *InMemoryRepository) Save(_ context.Context, sessionID, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	data := make([]byte, len(payload))
	copy(data, payload)
	r.store[snapshotKey{sessionID, key}] = data
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, sessionID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.store, snapshotKey{sessionID, key})
	return nil
}
