package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"customer-ledger/internal/model"
	"customer-ledger/internal/query"
)

// rowQuerier is the subset of *sql.DB and *sql.Tx the existence probe
// needs, so the same lookup can run inside or outside a transaction.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type CustomerRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

func NewCustomerRepository(db *sql.DB, logger *logrus.Logger) *CustomerRepository {
	return &CustomerRepository{db: db, logger: logger}
}

// CreateTx inserts a customer row inside the given transaction.
func (r *CustomerRepository) CreateTx(ctx context.Context, tx *sql.Tx, customer *model.Customer) error {
	const q = `
		INSERT INTO Customers (account, name, balance)
		VALUES (?, ?, ?)
	`

	_, err := tx.ExecContext(ctx, q, customer.Account, customer.Name, customer.Balance)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"account": customer.Account,
		"name":    customer.Name,
		"balance": customer.Balance,
	}).Debug("customer row inserted")
	return nil
}

// UpdateName sets the display name of the given account. Matching zero
// rows is not an error: renaming an absent account is a no-op.
func (r *CustomerRepository) UpdateName(ctx context.Context, account, name string) error {
	const q = `UPDATE Customers SET name = ? WHERE account = ?`

	if _, err := r.db.ExecContext(ctx, q, name, account); err != nil {
		return fmt.Errorf("failed to update customer name: %w", err)
	}
	return nil
}

// Delete removes the customer row if present. Transactions referencing
// the account are left untouched.
func (r *CustomerRepository) Delete(ctx context.Context, account string) error {
	const q = `DELETE FROM Customers WHERE account = ?`

	if _, err := r.db.ExecContext(ctx, q, account); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// Exists reports whether an account row is present.
func (r *CustomerRepository) Exists(ctx context.Context, account string) (bool, error) {
	return exists(ctx, r.db, account)
}

// ExistsTx is Exists inside an open transaction, so the probe sees that
// transaction's view of the table.
func (r *CustomerRepository) ExistsTx(ctx context.Context, tx *sql.Tx, account string) (bool, error) {
	return exists(ctx, tx, account)
}

func exists(ctx context.Context, q rowQuerier, account string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM Customers WHERE account = ?`, account).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to probe account: %w", err)
	}
	return true, nil
}

// AdjustBalanceTx moves the account balance by delta (positive or
// negative) inside the given transaction.
func (r *CustomerRepository) AdjustBalanceTx(ctx context.Context, tx *sql.Tx, account string, delta float64) error {
	const q = `UPDATE Customers SET balance = balance + ? WHERE account = ?`

	result, err := tx.ExecContext(ctx, q, delta, account)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no customer row for account %s", account)
	}
	return nil
}

// List runs the filtered/sorted customer projection.
func (r *CustomerRepository) List(ctx context.Context, filter string, key query.CustomerKey, ord query.Order) ([]model.Customer, error) {
	q, args := query.Customers(filter, key, ord)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.Account, &c.Name, &c.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return customers, nil
}
