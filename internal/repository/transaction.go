package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"customer-ledger/internal/model"
	"customer-ledger/internal/query"
)

type TransactionRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewTransactionRepository(db *sql.DB, logger *logrus.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger}
}

// CreateTx appends a transaction row inside the given transaction and
// returns the surrogate number the store assigned to it. Numbers come
// from the AUTOINCREMENT column, so they are unique and strictly
// increasing in insertion order.
func (r *TransactionRepository) CreateTx(ctx context.Context, tx *sql.Tx, t *model.Transaction) (int64, error) {
	const q = `
		INSERT INTO Transactions (account, date, amount, direction)
		VALUES (?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, q, t.Account, t.Date.Format(model.DateFormat), t.Amount, string(t.Direction))
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	number, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read assigned transaction number: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"number":    number,
		"account":   t.Account,
		"amount":    t.Amount,
		"direction": t.Direction,
	}).Debug("transaction row inserted")
	return number, nil
}

// List runs the filtered/sorted transaction projection.
func (r *TransactionRepository) List(ctx context.Context, filter string, key query.TransactionKey, ord query.Order) ([]model.Transaction, error) {
	q, args := query.Transactions(filter, key, ord)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			t         model.Transaction
			direction string
		)
		// The driver hands DATE-declared columns back as time.Time.
		if err := rows.Scan(&t.Number, &t.Account, &t.Date, &t.Amount, &direction); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Direction = model.Direction(direction)
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}

	return transactions, nil
}
