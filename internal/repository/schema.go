package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

// The CREATE statements below are the on-disk compatibility contract:
// external tooling reads these two tables by name and column. Dates are
// stored as ISO-8601 text. Foreign key enforcement is deliberately left
// at SQLite's default (off): deleting a customer leaves its transaction
// history in place as orphaned rows.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Customers (
		account CHAR(15) PRIMARY KEY,
		name VARCHAR(30),
		balance DOUBLE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_account ON Customers(account)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name ON Customers(name)`,
	`CREATE TABLE IF NOT EXISTS Transactions (
		number INTEGER PRIMARY KEY AUTOINCREMENT,
		account CHAR(15),
		date DATE,
		amount DOUBLE,
		direction CHAR(1) CHECK(direction IN ('D', 'C')),
		FOREIGN KEY (account) REFERENCES Customers(account)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_number ON Transactions(number)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_account ON Transactions(account)`,
}

// EnsureSchema creates the Customers and Transactions tables and their
// indexes if they do not exist. It is idempotent and runs on every
// process start; a failure here is fatal to startup, since no ledger
// operation can run without the schema.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *logrus.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	logger.Debug("Customers and Transactions tables ready")
	return nil
}
