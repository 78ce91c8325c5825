package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLRepository stores orders in Postgres or SQLite. The two dialects only
// differ in placeholders and column types.
type SQLRepository struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	create string
	insert string
	get    string
	list   string
}

var postgresDialect = dialect{
	create: `
        CREATE TABLE IF NOT EXISTS storefront_orders (
            order_number TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            items JSONB NOT NULL,
            summary JSONB NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
	insert: `INSERT INTO storefront_orders (order_number, session_id, items, summary, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)`,
	get: `SELECT order_number, session_id, items::text, summary::text, status, created_at
        FROM storefront_orders WHERE order_number = $1`,
	list: `SELECT order_number, session_id, items::text, summary::text, status, created_at
        FROM storefront_orders WHERE session_id = $1 ORDER BY created_at, order_number`,
}

var sqliteDialect = dialect{
	create: `
        CREATE TABLE IF NOT EXISTS storefront_orders (
            order_number TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            items TEXT NOT NULL,
            summary TEXT NOT NULL,
            status TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL
        )`,
	insert: `INSERT INTO storefront_orders (order_number, session_id, items, summary, status, created_at)
        VALUES (?,?,?,?,?,?)`,
	get: `SELECT order_number, session_id, items, summary, status, created_at
        FROM storefront_orders WHERE order_number = ?`,
	list: `SELECT order_number, session_id, items, summary, status, created_at
        FROM storefront_orders WHERE session_id = ? ORDER BY created_at, order_number`,
}

func NewPostgresRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, dialect: postgresDialect}
}

func NewSQLiteRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db, dialect: sqliteDialect}
}

// EnsureSchema creates the orders table when it does not exist yet.
func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, r.dialect.create)
	return err
}

func (r *SQLRepository) Create(ctx context.Context, ord Order) error {
	items, err := json.Marshal(ord.Items)
	if err != nil {
		return err
	}
	summary, err := json.Marshal(ord.Summary)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, r.dialect.insert,
		ord.Number, ord.SessionID, string(items), string(summary), ord.Status, ord.CreatedAt.UTC())
	return err
}

func (r *SQLRepository) GetByNumber(ctx context.Context, number string) (Order, error) {
	ord, err := scanOrder(r.db.QueryRowContext(ctx, r.dialect.get, number))
	if errors.Is(err, sql.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *SQLRepository) ListBySession(ctx context.Context, sessionID string) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.list, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord     Order
		items   string
		summary string
	)
	if err := row.Scan(&ord.Number, &ord.SessionID, &items, &summary, &ord.Status, &ord.CreatedAt); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal([]byte(items), &ord.Items); err != nil {
		return Order{}, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &ord.Summary); err != nil {
		return Order{}, fmt.Errorf("decode order summary: %w", err)
	}
	return ord, nil
}
