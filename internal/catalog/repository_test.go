// internal/catalog/repository_test.go
//
// Unit-tests for the catalog repository and schema bootstrap using sqlmock.
//
// Run: go test ./internal/catalog -v

package catalog

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/yanizio/shopadmin/internal/product"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestInsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO product (name, description, price, type, color, image)`,
	)).
		WithArgs("Classic Tee", "", 499.0, "TSHIRT", "BLUE", product.PlaceholderImage).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewRepository(db)
	id, err := repo.Insert(context.Background(), product.Payload{
		Name:  "Classic Tee",
		Price: 499,
		Type:  product.TypeTShirt,
		Color: product.ColorBlue,
		Image: product.PlaceholderImage,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBootstrap_AddsUserTypeColumn(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS product`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM information_schema.TABLES`)).
		WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM information_schema.COLUMNS`)).
		WithArgs("user", "type").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`ALTER TABLE user ADD COLUMN type VARCHAR(32) NOT NULL DEFAULT 'CUSTOMER'`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := Bootstrap(context.Background(), db, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestBootstrap_SkipsWhenUserTableAbsent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS product`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM information_schema.TABLES`)).
		WithArgs("user").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	if err := Bootstrap(context.Background(), db, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
