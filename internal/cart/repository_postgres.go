package cart

import "database/sql"

// PostgresRepository shares snapshots between replicas.
type PostgresRepository struct {
	sqlRepository
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: sqlQueries{
		create: `
        CREATE TABLE IF NOT EXISTS cart_snapshots (
            session_id TEXT NOT NULL,
            storage_key TEXT NOT NULL,
            payload JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL,
            PRIMARY KEY (session_id, storage_key)
        )`,
		load: `SELECT payload::text FROM cart_snapshots WHERE session_id = $1 AND storage_key = $2`,
		upsert: `
        INSERT INTO cart_snapshots (session_id, storage_key, payload, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (session_id, storage_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		delete: `DELETE FROM cart_snapshots WHERE session_id = $1 AND storage_key = $2`,
	}}}
}
