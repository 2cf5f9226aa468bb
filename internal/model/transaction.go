package model

import "time"

// Direction marks which way a transaction moves an account balance,
// using the single-character codes stored in the Transactions table.
type Direction string

const (
	Debit  Direction = "D" // increases the account balance
	Credit Direction = "C" // decreases the account balance
)

// Valid reports whether d is one of the two stored direction codes.
func (d Direction) Valid() bool {
	return d == Debit || d == Credit
}

// Sign returns the factor applied to the transaction amount when it is
// folded into the account balance.
func (d Direction) Sign() float64 {
	if d == Credit {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	switch d {
	case Debit:
		return "debit"
	case Credit:
		return "credit"
	}
	return string(d)
}

// Transaction is one row of the Transactions table. Number is the
// store-assigned surrogate key; rows are append-only and never mutated.
type Transaction struct {
	Number    int64     `json:"number" db:"number"`
	Account   string    `json:"account" db:"account"`
	Date      time.Time `json:"date" db:"date"`
	Amount    float64   `json:"amount" db:"amount"`
	Direction Direction `json:"direction" db:"direction"`
}

// DateFormat is the layout transaction dates are persisted in. The
// substring filter in listing queries matches against this text form.
const DateFormat = "2006-01-02"
