package service

import "errors"

// Domain errors returned by Ledger operations. Validation errors are
// detected before the store is touched; the caller can report them and
// retry with corrected input. Wrapped messages carry the offending
// value, so errors.Is on these sentinels still works at call sites.
var (
	// ErrInvalidName means a customer name is longer than the 30
	// characters the Customers table holds.
	ErrInvalidName = errors.New("invalid customer name")

	// ErrInvalidAmount means an amount or balance is not a usable
	// floating-point value (NaN or infinite), or a transaction amount
	// is negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnknownAccount means the referenced account does not exist.
	// Transactions are refused before any effect is applied rather than
	// recorded against a missing account.
	ErrUnknownAccount = errors.New("unknown account")
)
