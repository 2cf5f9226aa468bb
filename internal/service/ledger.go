package service

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"customer-ledger/internal/ident"
	"customer-ledger/internal/model"
	"customer-ledger/internal/query"
	"customer-ledger/internal/repository"
)

// maxNameLength is the VARCHAR(30) bound on customer names.
const maxNameLength = 30

// Ledger owns all reads and writes to the Customers and Transactions
// tables and keeps the two in step: an account's balance always equals
// the signed sum of its transaction history, and the balance update and
// transaction append land in one SQL transaction or not at all.
type Ledger struct {
	db           *sql.DB
	customers    *repository.CustomerRepository
	transactions *repository.TransactionRepository
	logger       *logrus.Logger
}

func NewLedger(
	db *sql.DB,
	customers *repository.CustomerRepository,
	transactions *repository.TransactionRepository,
	logger *logrus.Logger,
) *Ledger {
	return &Ledger{
		db:           db,
		customers:    customers,
		transactions: transactions,
		logger:       logger,
	}
}

func validateName(name string) error {
	// Characters, not bytes: a multibyte name within the limit is fine.
	if n := utf8.RuneCountInString(name); n > maxNameLength {
		return fmt.Errorf("%w: name is %d characters, limit is %d", ErrInvalidName, n, maxNameLength)
	}
	return nil
}

func validateBalance(balance float64) error {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return fmt.Errorf("%w: %v is not a representable balance", ErrInvalidAmount, balance)
	}
	return nil
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v is not a representable amount", ErrInvalidAmount, amount)
	}
	// A negative magnitude would silently invert the stated direction,
	// so it is refused rather than applied.
	if amount < 0 {
		return fmt.Errorf("%w: amount %v is negative", ErrInvalidAmount, amount)
	}
	return nil
}

// CreateAccount validates the name and initial balance, generates a
// unique account identifier and inserts the customer row. A non-zero
// initial balance is backed by an opening transaction dated today,
// written in the same SQL transaction as the customer row, so the
// balance-equals-history invariant holds from the first read.
func (l *Ledger) CreateAccount(ctx context.Context, name string, initialBalance float64) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if err := validateBalance(initialBalance); err != nil {
		return "", err
	}

	// Collision retry is unbounded; over a 36^15 identifier space a
	// second draw is already a rarity.
	account := ident.Generate()
	for {
		exists, err := l.customers.Exists(ctx, account)
		if err != nil {
			return "", fmt.Errorf("failed to check identifier uniqueness: %w", err)
		}
		if !exists {
			break
		}
		l.logger.WithField("account", account).Debug("duplicate identifier hit, generating a new one")
		account = ident.Generate()
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	customer := &model.Customer{Account: account, Name: name, Balance: initialBalance}
	if err := l.customers.CreateTx(ctx, tx, customer); err != nil {
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	if initialBalance != 0 {
		opening := &model.Transaction{
			Account:   account,
			Date:      time.Now(),
			Amount:    initialBalance,
			Direction: model.Debit,
		}
		if initialBalance < 0 {
			opening.Amount = -initialBalance
			opening.Direction = model.Credit
		}
		if _, err := l.transactions.CreateTx(ctx, tx, opening); err != nil {
			return "", fmt.Errorf("failed to record opening balance: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit account creation: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"account": account,
		"name":    name,
		"balance": initialBalance,
	}).Info("account created")
	return account, nil
}

// RenameAccount updates the display name of the given account. Renaming
// an account that does not exist succeeds with no effect.
func (l *Ledger) RenameAccount(ctx context.Context, account, newName string) error {
	if err := validateName(newName); err != nil {
		return err
	}

	if err := l.customers.UpdateName(ctx, account, newName); err != nil {
		return fmt.Errorf("failed to rename account %s: %w", account, err)
	}

	l.logger.WithFields(logrus.Fields{
		"account": account,
		"name":    newName,
	}).Info("account renamed")
	return nil
}

// DeleteAccount removes the customer row if present; deleting an absent
// account is a no-op. Transaction history referencing the account is
// not cascaded and stays in the store.
func (l *Ledger) DeleteAccount(ctx context.Context, account string) error {
	if err := l.customers.Delete(ctx, account); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", account, err)
	}

	l.logger.WithField("account", account).Info("account deleted")
	return nil
}

// ApplyTransaction moves the account balance by amount (up for a debit,
// down for a credit) and appends the matching transaction row, both
// inside one SQL transaction. The account must exist: an unknown
// account is refused before either effect is attempted. On any store
// failure the whole unit rolls back.
func (l *Ledger) ApplyTransaction(ctx context.Context, account string, date time.Time, amount float64, direction model.Direction) error {
	if err := validateAmount(amount); err != nil {
		return err
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := l.customers.ExistsTx(ctx, tx, account)
	if err != nil {
		return fmt.Errorf("failed to check account: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, account)
	}

	if err := l.customers.AdjustBalanceTx(ctx, tx, account, amount*direction.Sign()); err != nil {
		return fmt.Errorf("failed to apply %s of %v to %s: %w", direction, amount, account, err)
	}

	record := &model.Transaction{
		Account:   account,
		Date:      date,
		Amount:    amount,
		Direction: direction,
	}
	number, err := l.transactions.CreateTx(ctx, tx, record)
	if err != nil {
		return fmt.Errorf("failed to record %s of %v to %s: %w", direction, amount, account, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	l.logger.WithFields(logrus.Fields{
		"number":    number,
		"account":   account,
		"amount":    amount,
		"direction": direction.String(),
	}).Info("transaction applied")
	return nil
}

// ListCustomers returns the customer projection for the given search
// term and sort selection. Each call re-queries the store.
func (l *Ledger) ListCustomers(ctx context.Context, filter string, key query.CustomerKey, ord query.Order) ([]model.Customer, error) {
	customers, err := l.customers.List(ctx, filter, key, ord)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, nil
}

// ListTransactions returns the transaction projection for the given
// search term and sort selection.
func (l *Ledger) ListTransactions(ctx context.Context, filter string, key query.TransactionKey, ord query.Order) ([]model.Transaction, error) {
	transactions, err := l.transactions.List(ctx, filter, key, ord)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// AccountExists reports whether the account is present; it has no side
// effects.
func (l *Ledger) AccountExists(ctx context.Context, account string) (bool, error) {
	exists, err := l.customers.Exists(ctx, account)
	if err != nil {
		return false, fmt.Errorf("failed to check account %s: %w", account, err)
	}
	return exists, nil
}
