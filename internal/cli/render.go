package cli

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"customer-ledger/internal/model"
)

func renderCustomers(w io.Writer, customers []model.Customer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Account", "Name", "Balance"})
	for _, c := range customers {
		table.Append([]string{
			c.Account,
			c.Name,
			strconv.FormatFloat(c.Balance, 'f', 2, 64),
		})
	}
	table.Render()
}

func renderTransactions(w io.Writer, transactions []model.Transaction) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Number", "Account", "Date", "Amount", "Direction"})
	for _, t := range transactions {
		table.Append([]string{
			strconv.FormatInt(t.Number, 10),
			t.Account,
			t.Date.Format(model.DateFormat),
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			t.Direction.String(),
		})
	}
	table.Render()
}
