package repository

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"customer-ledger/internal/model"
	"customer-ledger/internal/query"
)

func newTestDB(t *testing.T) (*sql.DB, *logrus.Logger) {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	if err := EnsureSchema(context.Background(), db, logger); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
	return db, logger
}

// Schema creation runs on every start and must tolerate an already
// initialized database.
func TestEnsureSchemaIdempotent(t *testing.T) {
	db, logger := newTestDB(t)
	if err := EnsureSchema(context.Background(), db, logger); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
	if err := EnsureSchema(context.Background(), db, logger); err != nil {
		t.Fatalf("third EnsureSchema: %v", err)
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, logger := newTestDB(t)
	repo := NewCustomerRepository(db, logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &model.Customer{Account: "AAAAAAAAAAAAAA1", Name: "Trent", Balance: 5.5}
	if err := repo.CreateTx(ctx, tx, c); err != nil {
		t.Fatalf("CreateTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	exists, err := repo.Exists(ctx, c.Account)
	if err != nil || !exists {
		t.Fatalf("Exists = %v, %v; want true", exists, err)
	}

	customers, err := repo.List(ctx, "", query.CustomerDefault, query.Ascending)
	if err != nil {
		t.Fatal(err)
	}
	if len(customers) != 1 || customers[0] != *c {
		t.Fatalf("List = %+v, want [%+v]", customers, *c)
	}

	// Updating an absent account matches zero rows and is not an error.
	if err := repo.UpdateName(ctx, "ZZZZZZZZZZZZZZ9", "nobody"); err != nil {
		t.Fatalf("UpdateName on absent account: %v", err)
	}

	if err := repo.Delete(ctx, c.Account); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	exists, err = repo.Exists(ctx, c.Account)
	if err != nil || exists {
		t.Fatalf("Exists after delete = %v, %v; want false", exists, err)
	}
}

// The duplicate-identifier and direction constraints live in the store;
// both must reject bad rows at insert time.
func TestStoreConstraints(t *testing.T) {
	ctx := context.Background()
	db, logger := newTestDB(t)
	customers := NewCustomerRepository(db, logger)
	transactions := NewTransactionRepository(db, logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &model.Customer{Account: "BBBBBBBBBBBBBB2", Name: "Peggy"}
	if err := customers.CreateTx(ctx, tx, c); err != nil {
		t.Fatal(err)
	}
	if err := customers.CreateTx(ctx, tx, c); err == nil {
		t.Fatal("duplicate primary key accepted")
	}
	tx.Rollback()

	tx, err = db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := customers.CreateTx(ctx, tx, c); err != nil {
		t.Fatal(err)
	}
	if _, err := transactions.CreateTx(ctx, tx, &model.Transaction{
		Account:   c.Account,
		Date:      time.Now(),
		Amount:    1.0,
		Direction: model.Direction("X"),
	}); err == nil {
		t.Fatal("direction outside {D, C} accepted")
	}
	tx.Rollback()
}

func TestAdjustBalanceTxMissingRow(t *testing.T) {
	ctx := context.Background()
	db, logger := newTestDB(t)
	repo := NewCustomerRepository(db, logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tx.Rollback()

	if err := repo.AdjustBalanceTx(ctx, tx, "CCCCCCCCCCCCCC3", 10.0); err == nil {
		t.Fatal("balance update with no matching row should fail")
	}
}

// A listed transaction must come back with its calendar date intact,
// and the row itself must hold the plain ISO text the date substring
// filter and external tooling read.
func TestTransactionDateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, logger := newTestDB(t)
	customers := NewCustomerRepository(db, logger)
	transactions := NewTransactionRepository(db, logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &model.Customer{Account: "EEEEEEEEEEEEEE5", Name: "Rupert"}
	if err := customers.CreateTx(ctx, tx, c); err != nil {
		t.Fatal(err)
	}
	number, err := transactions.CreateTx(ctx, tx, &model.Transaction{
		Account:   c.Account,
		Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:    10.0,
		Direction: model.Debit,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	txs, err := transactions.List(ctx, "", query.TransactionNumber, query.Ascending)
	if err != nil {
		t.Fatalf("List failed on a valid row: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("want 1 row, got %d", len(txs))
	}
	if got := txs[0].Date.Format(model.DateFormat); got != "2024-01-01" {
		t.Fatalf("listed date = %q, want 2024-01-01", got)
	}

	// The CAST keeps the driver from mapping the DATE column to
	// time.Time, so this reads the stored text verbatim.
	var raw string
	err = db.QueryRowContext(ctx, `SELECT CAST(date AS TEXT) FROM Transactions WHERE number = ?`, number).Scan(&raw)
	if err != nil {
		t.Fatal(err)
	}
	if raw != "2024-01-01" {
		t.Fatalf("stored date text = %q, want %q", raw, "2024-01-01")
	}
}

func TestTransactionNumbersAssigned(t *testing.T) {
	ctx := context.Background()
	db, logger := newTestDB(t)
	customers := NewCustomerRepository(db, logger)
	transactions := NewTransactionRepository(db, logger)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	c := &model.Customer{Account: "DDDDDDDDDDDDDD4", Name: "Olive"}
	if err := customers.CreateTx(ctx, tx, c); err != nil {
		t.Fatal(err)
	}
	var prev int64
	for i := 0; i < 3; i++ {
		number, err := transactions.CreateTx(ctx, tx, &model.Transaction{
			Account:   c.Account,
			Date:      time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			Amount:    float64(i + 1),
			Direction: model.Debit,
		})
		if err != nil {
			t.Fatalf("CreateTx #%d: %v", i, err)
		}
		if number <= prev {
			t.Fatalf("number %d not greater than %d", number, prev)
		}
		prev = number
	}
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}

	txs, err := transactions.List(ctx, "", query.TransactionNumber, query.Ascending)
	if err != nil {
		t.Fatal(err)
	}
	if len(txs) != 3 {
		t.Fatalf("want 3 rows, got %d", len(txs))
	}
}
