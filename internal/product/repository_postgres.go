package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PostgresRepository keeps the catalog in Postgres for deployments that
// manage products outside the binary. Load reads it once at startup; the
// service then serves it from memory.
type PostgresRepository struct {
	db *sql.DB
}

const (
	createProductsTable = `
        CREATE TABLE IF NOT EXISTS catalog_products (
            id TEXT PRIMARY KEY,
            slug TEXT NOT NULL UNIQUE,
            name TEXT NOT NULL,
            category TEXT NOT NULL,
            price NUMERIC(10,2) NOT NULL,
            original_price NUMERIC(10,2),
            description TEXT NOT NULL DEFAULT '',
            image TEXT NOT NULL DEFAULT '',
            images TEXT[],
            rating DOUBLE PRECISION NOT NULL DEFAULT 0,
            reviews INT NOT NULL DEFAULT 0,
            skin_types TEXT[] NOT NULL,
            concerns TEXT[] NOT NULL,
            key_ingredients JSONB,
            usage TEXT,
            best_used TEXT,
            is_new BOOLEAN NOT NULL DEFAULT FALSE,
            on_sale BOOLEAN NOT NULL DEFAULT FALSE,
            created_at DATE NOT NULL,
            position INT NOT NULL
        )`

	listProductsQuery = `
        SELECT id, slug, name, category, price, original_price, description, image, images,
               rating, reviews, skin_types, concerns, key_ingredients, usage, best_used,
               is_new, on_sale, created_at
        FROM catalog_products
        ORDER BY position, id`

	insertProductQuery = `
        INSERT INTO catalog_products (id, slug, name, category, price, original_price, description, image, images,
            rating, reviews, skin_types, concerns, key_ingredients, usage, best_used, is_new, on_sale, created_at, position)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
        ON CONFLICT (id) DO NOTHING`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the catalog table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, createProductsTable)
	return err
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog_products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Seed inserts products that are not present yet, keeping their order.
func (r *PostgresRepository) Seed(ctx context.Context, products []Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i, p := range products {
		var original any
		if p.OriginalPrice != nil {
			original = p.OriginalPrice.String()
		}
		ingredients, err := json.Marshal(p.KeyIngredients)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertProductQuery,
			p.ID, p.Slug, p.Name, p.Category, p.Price.String(), original, p.Description, p.Image, pq.Array(p.Images),
			p.Rating, p.Reviews, pq.Array(p.SkinTypes), pq.Array(p.Concerns), string(ingredients),
			nullString(p.Usage), nullString(p.BestUsed), p.IsNew, p.OnSale, p.CreatedAt, i,
		); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Slug, err)
		}
	}
	return tx.Commit()
}

// Load returns every product in catalog order.
func (r *PostgresRepository) Load(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		var (
			p           Product
			original    decimal.NullDecimal
			ingredients sql.NullString
			usage       sql.NullString
			bestUsed    sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Category, &p.Price, &original, &p.Description, &p.Image,
			pq.Array(&p.Images), &p.Rating, &p.Reviews, pq.Array(&p.SkinTypes), pq.Array(&p.Concerns),
			&ingredients, &usage, &bestUsed, &p.IsNew, &p.OnSale, &p.CreatedAt); err != nil {
			return nil, err
		}
		if original.Valid {
			v := original.Decimal
			p.OriginalPrice = &v
		}
		if ingredients.Valid && ingredients.String != "" && ingredients.String != "null" {
			if err := json.Unmarshal([]byte(ingredients.String), &p.KeyIngredients); err != nil {
				return nil, fmt.Errorf("product %q key ingredients: %w", p.Slug, err)
			}
		}
		if usage.Valid {
			p.Usage = &usage.String
		}
		if bestUsed.Valid {
			p.BestUsed = &bestUsed.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
