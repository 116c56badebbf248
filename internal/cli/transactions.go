package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ekstre/internal/domain"
	"ekstre/internal/view"
)

// dateFlag parses an optional YYYY-MM-DD flag value.
func dateFlag(value string) (domain.Date, error) {
	if value == "" {
		return domain.Date{}, nil
	}
	var d domain.Date
	if err := d.UnmarshalJSON([]byte(strconv.Quote(value))); err != nil {
		return domain.Date{}, err
	}
	return d, nil
}

func (a *app) transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Browse imported transactions",
	}
	cmd.AddCommand(a.transactionsListCmd(), a.transactionsGetCmd())
	return cmd
}

func (a *app) transactionsListCmd() *cobra.Command {
	var (
		from, to       string
		txType         string
		currency       string
		category       string
		targetCurrency string
		page           int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewTransactions(a.client)
			if from != "" {
				d, err := dateFlag(from)
				if err != nil {
					return err
				}
				v.Filter.StartDate = d
			}
			if to != "" {
				d, err := dateFlag(to)
				if err != nil {
					return err
				}
				v.Filter.EndDate = d
			}
			v.Filter.Type = domain.TransactionType(txType)
			v.Filter.Currency = currency
			v.Filter.TargetCurrency = targetCurrency
			v.Filter.Page = page
			if category != "" {
				v.SetCategoryInput(category)
				v.FlushCategoryInput()
			}

			if err := v.Load(cmd.Context()); err != nil {
				a.out.Transactions(nil)
				return err
			}
			a.out.Transactions(v.Items)
			if v.Count > len(v.Items) {
				fmt.Printf("\nShowing %d of %d transactions. Use --page to see more.\n", len(v.Items), v.Count)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&txType, "type", "", "transaction type: credit or debit")
	cmd.Flags().StringVar(&currency, "currency", "", "filter by original currency")
	cmd.Flags().StringVar(&category, "category", "", "filter by category substring")
	cmd.Flags().StringVar(&targetCurrency, "target-currency", "", "convert amounts into this currency")
	cmd.Flags().IntVar(&page, "page", 0, "result page")
	return cmd
}

func (a *app) transactionsGetCmd() *cobra.Command {
	var targetCurrency string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show a single transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}
			tx, err := a.client.GetTransaction(cmd.Context(), id, targetCurrency)
			if err != nil {
				return err
			}
			a.out.Transaction(tx)
			return nil
		},
	}
	cmd.Flags().StringVar(&targetCurrency, "target-currency", "", "convert the amount into this currency")
	return cmd
}
