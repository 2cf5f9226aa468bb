package model

// Customer is one row of the Customers table. Account is assigned at
// creation time and never changes; Balance is only ever moved by
// applying a transaction.
type Customer struct {
	Account string  `json:"account" db:"account"`
	Name    string  `json:"name" db:"name"`
	Balance float64 `json:"balance" db:"balance"`
}
