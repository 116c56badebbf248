package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ekstre/internal/upload"
	"ekstre/internal/view"
)

func (a *app) uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a CSV bank statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard := view.NewDashboard(a.client)
			if a.cfg.DefaultCurrency != "" {
				dashboard.TargetCurrency = a.cfg.DefaultCurrency
			}

			flow := upload.NewFlow(a.client, func() {
				if err := dashboard.Load(cmd.Context()); err != nil {
					return
				}
				fmt.Println()
				a.out.Summary(dashboard.Summary)
			})

			flow.Select(args[0])
			if err := flow.Start(cmd.Context()); err != nil {
				if msg := flow.Err(); msg != "" {
					return fmt.Errorf("upload failed: %s", msg)
				}
				return err
			}
			a.out.UploadResult(flow.Result())

			// The CLI takes the manual "close and refresh" path instead of
			// waiting out the scheduled delay.
			flow.CloseAndRefresh()
			return nil
		},
	}
}
