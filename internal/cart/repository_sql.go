package cart

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// sqlQueries carries the dialect-specific statements of a SQL snapshot store.
type sqlQueries struct {
	create string
	load   string
	upsert string
	delete string
}

type sqlRepository struct {
	db *sql.DB
	q  sqlQueries
}

// EnsureSchema creates the cart_snapshots table when it does not exist yet.
func (r *sqlRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, r.q.create)
	return err
}

func (r *sqlRepository) Load(ctx context.Context, sessionID, key string) ([]byte, error) {
	var payload string
	if err := r.db.QueryRowContext(ctx, r.q.load, sessionID, key).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotMissing
		}
		return nil, err
	}
	return []byte(payload), nil
}

func (r *sqlRepository) Save(ctx context.Context, sessionID, key string, payload []byte) error {
	_, err := r.db.ExecContext(ctx, r.q.upsert, sessionID, key, string(payload), time.Now().UTC())
	return err
}

func (r *sqlRepository) Delete(ctx context.Context, sessionID, key string) error {
	_, err := r.db.ExecContext(ctx, r.q.delete, sessionID, key)
	return err
}
