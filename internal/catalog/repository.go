// internal/catalog/repository.go
//
// Shopadmin – Catalog persistence.
//
// Context
//   The create endpoint writes one row per accepted payload.  There is no
//   idempotency key anywhere in the pipeline, so a manual retry after an
//   ambiguous failure inserts a second row; that is accepted behavior, not a
//   bug.  Reads, edits, and deletes are out of scope for this service.
//
//------------------------------------------------------------------------------

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/yanizio/shopadmin/internal/product"
)

// Record mirrors one row of the product table.
type Record struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Type        string    `db:"type"`
	Color       string    `db:"color"`
	Image       string    `db:"image"`
	CreatedAt   time.Time `db:"created_at"`
}

// Repository wraps the catalog database.
type Repository struct {
	db *sqlx.DB
}

// NewRepository returns a Repository over db.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const insertSQL = `
	INSERT INTO product (name, description, price, type, color, image)
	VALUES (?, ?, ?, ?, ?, ?)`

// Insert stores one product and returns its generated ID.
func (r *Repository) Insert(ctx context.Context, p product.Payload) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertSQL,
		p.Name, p.Description, p.Price, string(p.Type), string(p.Color), p.Image)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert product id: %w", err)
	}
	return id, nil
}
