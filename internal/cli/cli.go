// Package cli is the presentation layer: it maps commands and flags to
// ledger operations and renders the query results. All transient view
// state (search text, sort selection) lives in flags; nothing here owns
// data, and every listing re-queries the store.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"customer-ledger/internal/model"
	"customer-ledger/internal/query"
	"customer-ledger/internal/service"
)

// New builds the ledger command tree.
func New(ledger *service.Ledger) *cobra.Command {
	root := &cobra.Command{
		Use:           "ledger",
		Short:         "Customer account ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCustomerCommand(ledger))
	root.AddCommand(newTxCommand(ledger))
	return root
}

func newCustomerCommand(ledger *service.Ledger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customer accounts",
	}

	var (
		name    string
		balance float64
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a customer account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := ledger.CreateAccount(cmd.Context(), name, balance)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), account)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "customer name")
	add.Flags().Float64Var(&balance, "balance", 0.0, "initial balance")

	var newName string
	rename := &cobra.Command{
		Use:   "rename ACCOUNT",
		Short: "Change a customer's name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ledger.RenameAccount(cmd.Context(), args[0], newName)
		},
	}
	rename.Flags().StringVar(&newName, "name", "", "new customer name")
	rename.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete ACCOUNT",
		Short: "Delete a customer account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ledger.DeleteAccount(cmd.Context(), args[0])
		},
	}

	var (
		search string
		sortBy string
		desc   bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List customer accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := customerSortKey(sortBy)
			if err != nil {
				return err
			}
			customers, err := ledger.ListCustomers(cmd.Context(), search, key, order(desc))
			if err != nil {
				return err
			}
			renderCustomers(cmd.OutOrStdout(), customers)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "substring match on account or name")
	list.Flags().StringVar(&sortBy, "sort", "default", "sort key: default, account, name or balance")
	list.Flags().BoolVar(&desc, "desc", false, "sort high to low")

	cmd.AddCommand(add, rename, del, list)
	return cmd
}

func newTxCommand(ledger *service.Ledger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Record and list transactions",
	}

	var (
		amount  float64
		txType  string
		dateArg string
	)
	add := &cobra.Command{
		Use:   "add ACCOUNT",
		Short: "Apply a debit or credit to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := parseDirection(txType)
			if err != nil {
				return err
			}
			date := time.Now()
			if dateArg != "" {
				date, err = time.Parse(model.DateFormat, dateArg)
				if err != nil {
					return fmt.Errorf("invalid date %q, want YYYY-MM-DD", dateArg)
				}
			}
			return ledger.ApplyTransaction(cmd.Context(), args[0], date, amount, direction)
		},
	}
	add.Flags().Float64Var(&amount, "amount", 0.0, "transaction amount")
	add.Flags().StringVar(&txType, "type", "debit", "debit or credit")
	add.Flags().StringVar(&dateArg, "date", "", "transaction date (YYYY-MM-DD, default today)")
	add.MarkFlagRequired("amount")

	var (
		search string
		sortBy string
		desc   bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := transactionSortKey(sortBy)
			if err != nil {
				return err
			}
			transactions, err := ledger.ListTransactions(cmd.Context(), search, key, order(desc))
			if err != nil {
				return err
			}
			renderTransactions(cmd.OutOrStdout(), transactions)
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "substring match on number, account or date")
	list.Flags().StringVar(&sortBy, "sort", "number", "sort key: number, account, date or amount")
	list.Flags().BoolVar(&desc, "desc", false, "sort high to low")

	cmd.AddCommand(add, list)
	return cmd
}

func order(desc bool) query.Order {
	if desc {
		return query.Descending
	}
	return query.Ascending
}

func customerSortKey(name string) (query.CustomerKey, error) {
	switch name {
	case "default", "":
		return query.CustomerDefault, nil
	case "account":
		return query.CustomerAccount, nil
	case "name":
		return query.CustomerName, nil
	case "balance":
		return query.CustomerBalance, nil
	}
	return 0, fmt.Errorf("unknown sort key %q", name)
}

func transactionSortKey(name string) (query.TransactionKey, error) {
	switch name {
	case "number", "":
		return query.TransactionNumber, nil
	case "account":
		return query.TransactionAccount, nil
	case "date":
		return query.TransactionDate, nil
	case "amount":
		return query.TransactionAmount, nil
	}
	return 0, fmt.Errorf("unknown sort key %q", name)
}

func parseDirection(name string) (model.Direction, error) {
	switch name {
	case "debit", "D", "d":
		return model.Debit, nil
	case "credit", "C", "c":
		return model.Credit, nil
	}
	return "", fmt.Errorf("unknown transaction type %q, want debit or credit", name)
}
