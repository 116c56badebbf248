package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ekstre/internal/view"
)

func (a *app) dashboardCmd() *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show summary cards and recent transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := view.NewDashboard(a.client)
			v.TargetCurrency = currency
			if currency == "" {
				v.TargetCurrency = a.cfg.DefaultCurrency
			}

			if err := v.Load(cmd.Context()); err != nil {
				a.out.Summary(nil)
				a.out.Transactions(nil)
				return err
			}

			a.out.Summary(v.Summary)
			fmt.Println()
			fmt.Printf("Recent transactions (%s to %s):\n", v.StartDate, v.EndDate)
			a.out.Transactions(v.Transactions)
			return nil
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "convert all amounts into this currency")
	return cmd
}
