// internal/catalog/schema.go
//
// Shopadmin – Schema bootstrap.
//
// Context
//   Two idempotent migrations run at boot when `catalog.migrate` is true:
//
//     1.  The product table backing the create endpoint.
//     2.  A `type` column on the existing `user` table (free text, default
//         'CUSTOMER').  This is account typing for the wider platform and is
//         unrelated to the product type enumeration; do not confuse the two.
//
//   The user table itself belongs to another service, so the column is only
//   added when the table is present.
//
//------------------------------------------------------------------------------

package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const createProductTable = `
	CREATE TABLE IF NOT EXISTS product (
		id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT         NOT NULL,
		price       DECIMAL(10,2) NOT NULL,
		type        VARCHAR(16)  NOT NULL,
		color       VARCHAR(16)  NOT NULL,
		image       MEDIUMTEXT   NOT NULL,
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

const addUserTypeColumn = `
	ALTER TABLE user ADD COLUMN type VARCHAR(32) NOT NULL DEFAULT 'CUSTOMER'`

// Bootstrap applies the schema migrations.  Safe to run on every boot.
func Bootstrap(ctx context.Context, db *sqlx.DB, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.S()
	}

	if _, err := db.ExecContext(ctx, createProductTable); err != nil {
		return fmt.Errorf("create product table: %w", err)
	}

	ok, err := columnExists(ctx, db, "user", "type")
	switch {
	case err != nil:
		return err
	case ok:
		return nil // already migrated, or user table absent
	}

	if _, err := db.ExecContext(ctx, addUserTypeColumn); err != nil {
		return fmt.Errorf("add user.type column: %w", err)
	}
	log.Infow("schema migrated", "change", "user.type column added")
	return nil
}

// columnExists reports whether table.column is present in the current schema.
// A missing table reports true so Bootstrap skips the ALTER.
func columnExists(ctx context.Context, db *sqlx.DB, table, column string) (bool, error) {
	var tables int
	err := db.GetContext(ctx, &tables, `
		SELECT COUNT(*) FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?`, table)
	if err != nil {
		return false, fmt.Errorf("probe table %s: %w", table, err)
	}
	if tables == 0 {
		return true, nil
	}

	var cols int
	err = db.GetContext(ctx, &cols, `
		SELECT COUNT(*) FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? AND COLUMN_NAME = ?`,
		table, column)
	if err != nil {
		return false, fmt.Errorf("probe column %s.%s: %w", table, column, err)
	}
	return cols > 0, nil
}
