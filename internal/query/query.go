// Package query builds the filtered/sorted SELECT statements behind the
// customer and transaction listings. It never touches the database: it
// only maps a search term and a sort selection to SQL text plus bind
// arguments. All user-supplied text travels as parameters, never spliced
// into the statement.
package query

// Order is a sort direction.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) keyword() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// CustomerKey selects the column a customer listing is ordered by.
type CustomerKey int

const (
	// CustomerDefault keeps insertion order; combined with Descending it
	// reverses it.
	CustomerDefault CustomerKey = iota
	CustomerAccount
	CustomerName
	CustomerBalance
)

// TransactionKey selects the column a transaction listing is ordered by.
type TransactionKey int

const (
	TransactionNumber TransactionKey = iota
	TransactionAccount
	TransactionDate
	TransactionAmount
)

// Customers returns the SELECT over the Customers table for the given
// search term and sort selection. An empty filter omits the WHERE clause
// entirely, and CustomerDefault ascending omits ORDER BY, so the bare
// no-input case is a plain table scan in insertion order.
func Customers(filter string, key CustomerKey, ord Order) (string, []any) {
	q := `SELECT account, name, balance FROM Customers`

	var args []any
	if filter != "" {
		q += ` WHERE account LIKE ? OR name LIKE ?`
		pattern := "%" + filter + "%"
		args = append(args, pattern, pattern)
	}

	switch key {
	case CustomerAccount:
		q += ` ORDER BY account ` + ord.keyword() + `, rowid ASC`
	case CustomerName:
		q += ` ORDER BY name ` + ord.keyword() + `, rowid ASC`
	case CustomerBalance:
		q += ` ORDER BY balance ` + ord.keyword() + `, rowid ASC`
	default:
		if ord == Descending {
			q += ` ORDER BY rowid DESC`
		}
	}

	return q, args
}

// Transactions returns the SELECT over the Transactions table. The
// filter matches number, account and date, each coerced to its text
// form. There is no default sort key: the listing is always ordered by
// the named column, with the surrogate number breaking ties in
// insertion order.
func Transactions(filter string, key TransactionKey, ord Order) (string, []any) {
	q := `SELECT number, account, date, amount, direction FROM Transactions`

	var args []any
	if filter != "" {
		q += ` WHERE CAST(number AS TEXT) LIKE ? OR account LIKE ? OR date LIKE ?`
		pattern := "%" + filter + "%"
		args = append(args, pattern, pattern, pattern)
	}

	var col string
	switch key {
	case TransactionAccount:
		col = "account"
	case TransactionDate:
		col = "date"
	case TransactionAmount:
		col = "amount"
	default:
		col = "number"
	}
	q += ` ORDER BY ` + col + ` ` + ord.keyword()
	if col != "number" {
		q += `, number ASC`
	}

	return q, args
}
