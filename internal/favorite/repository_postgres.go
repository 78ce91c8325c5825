package favorite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	createFavoritesTable = `
		CREATE TABLE IF NOT EXISTS session_favorites (
			session_id TEXT PRIMARY KEY,
			product_ids TEXT[] NOT NULL DEFAULT '{}',
			updated_at TIMESTAMPTZ NOT NULL
		)`
	addFavoriteQuery = `
		INSERT INTO session_favorites (session_id, product_ids, updated_at)
		VALUES ($1, ARRAY[$2::text], $3)
		ON CONFLICT (session_id) DO UPDATE
		SET product_ids = array_append(session_favorites.product_ids, $2::text),
			updated_at = $3
		WHERE NOT ($2::text = ANY(session_favorites.product_ids))
		RETURNING product_ids`
	removeFavoriteQuery = `
		UPDATE session_favorites
		SET product_ids = array_remove(product_ids, $2::text),
			updated_at = $3
		WHERE session_id = $1
			AND ($2::text = ANY(product_ids))
		RETURNING product_ids`
	listFavoritesQuery = `SELECT product_ids FROM session_favorites WHERE session_id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the favorites table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createFavoritesTable)
	return err
}

func (r *PostgresRepository) Add(ctx context.Context, sessionID, productID string) ([]string, error) {
	var ids pq.StringArray
	err := r.db.QueryRowContext(ctx, addFavoriteQuery, sessionID, productID, time.Now().UTC()).Scan(&ids)
	if errors.Is(err, sql.ErrNoRows) {
		// the conflict branch skipped the update: already present
		return nil, ErrAlreadyFavorite
	}
	if err != nil {
		return nil, err
	}
	return []string(ids), nil
}

func (r *PostgresRepository) Remove(ctx context.Context, sessionID, productID string) ([]string, error) {
	var ids pq.StringArray
	err := r.db.QueryRowContext(ctx, removeFavoriteQuery, sessionID, productID, time.Now().UTC()).Scan(&ids)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFavorite
	}
	if err != nil {
		return nil, err
	}
	return nonNil(ids), nil
}

func (r *PostgresRepository) List(ctx context.Context, sessionID string) ([]string, error) {
	var ids pq.StringArray
	err := r.db.QueryRowContext(ctx, listFavoritesQuery, sessionID).Scan(&ids)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return nonNil(ids), nil
}

func nonNil(ids pq.StringArray) []string {
	if ids == nil {
		return []string{}
	}
	return []string(ids)
}
