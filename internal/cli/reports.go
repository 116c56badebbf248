package cli

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ekstre/internal/view"
)

func (a *app) summaryCmd() *cobra.Command {
	var (
		from, to       string
		targetCurrency string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the financial summary for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewReports(a.client)
			if from != "" {
				d, err := dateFlag(from)
				if err != nil {
					return err
				}
				v.StartDate = d
			}
			if to != "" {
				d, err := dateFlag(to)
				if err != nil {
					return err
				}
				v.EndDate = d
			}
			v.TargetCurrency = targetCurrency

			if err := v.Load(cmd.Context()); err != nil {
				a.out.Summary(nil)
				return err
			}
			a.out.Summary(v.Summary)
			if v.Summary != nil {
				fmt.Println()
				a.out.TopCategories(v.Summary.TopExpenseCategories)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&targetCurrency, "target-currency", "", "convert amounts into this currency")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "convert AMOUNT FROM TO",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			conv, err := a.client.ConvertCurrency(cmd.Context(), amount, args[1], args[2], date)
			if err != nil {
				return err
			}
			a.out.Conversion(conv)
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "historical rate date (YYYY-MM-DD), latest when omitted")
	return cmd
}
