package cart

import "database/sql"

// SQLiteRepository persists snapshots in a local SQLite file.
type SQLiteRepository struct {
	sqlRepository
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqlQueries{
		create: `
        CREATE TABLE IF NOT EXISTS cart_snapshots (
            session_id TEXT NOT NULL,
            storage_key TEXT NOT NULL,
            payload TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL,
            PRIMARY KEY (session_id, storage_key)
        )`,
		load: `SELECT payload FROM cart_snapshots WHERE session_id = ? AND storage_key = ?`,
		upsert: `
        INSERT INTO cart_snapshots (session_id, storage_key, payload, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (session_id, storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		delete: `DELETE FROM cart_snapshots WHERE session_id = ? AND storage_key = ?`,
	}}}
}
