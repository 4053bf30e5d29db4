package cli

import (
	"context"
	"fmt"

	"github.com/drew/praxis/internal/money"
	"github.com/spf13/cobra"
)

var unbilledCmd = &cobra.Command{
	Use:   "unbilled",
	Short: "Show unbilled work for a client",
	Long: `Show the billable time entries and expenses for a client that have not
yet been attached to an invoice. These are the candidates for the next
invoice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clientFlag, _ := cmd.Flags().GetString("client")
		if clientFlag == "" {
			return fmt.Errorf("--client is required")
		}

		clientID, err := resolveClientID(ctx, clientFlag)
		if err != nil {
			return err
		}

		entries, err := appInstance.BillingRepo.UnbilledTimeEntries(ctx, clientID)
		if err != nil {
			return fmt.Errorf("failed to fetch unbilled time entries: %w", err)
		}

		expenses, err := appInstance.BillingRepo.UnbilledExpenses(ctx, clientID)
		if err != nil {
			return fmt.Errorf("failed to fetch unbilled expenses: %w", err)
		}

		if len(entries) == 0 && len(expenses) == 0 {
			fmt.Println("No unbilled work for this client")
			return nil
		}

		var total money.Amount

		if len(entries) > 0 {
			fmt.Println("Time Entries:")
			fmt.Printf("  %-5s %-12s %-30s %-8s %s\n", "ID", "Date", "Description", "Hours", "Amount")
			fmt.Println("  ---------------------------------------------------------------------")
			for _, e := range entries {
				fmt.Printf("  %-5d %-12s %-30s %-8.2f %s\n",
					e.ID,
					e.Date.Display(),
					truncate(e.Description, 30),
					e.Hours,
					money.Format(e.Amount),
				)
				total = total.Add(e.Amount)
			}
			fmt.Println()
		}

		if len(expenses) > 0 {
			fmt.Println("Expenses:")
			fmt.Printf("  %-5s %-12s %-30s %s\n", "ID", "Date", "Description", "Amount")
			fmt.Println("  ------------------------------------------------------------")
			for _, x := range expenses {
				fmt.Printf("  %-5d %-12s %-30s %s\n",
					x.ID,
					x.Date.Display(),
					truncate(x.Description, 30),
					money.Format(x.Amount),
				)
				total = total.Add(x.Amount)
			}
			fmt.Println()
		}

		fmt.Printf("Unbilled total: %s (%d time entries, %d expenses)\n",
			money.Format(total), len(entries), len(expenses))
		return nil
	},
}

func init() {
	unbilledCmd.Flags().StringP("client", "c", "", "Client ID or name (required)")
}
