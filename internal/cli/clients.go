package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List practice clients",
	Long:  `List the clients known to the practice management backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		clients, err := appInstance.ClientRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}

		if len(clients) == 0 {
			fmt.Println("No clients found")
			return nil
		}

		// Print table header
		fmt.Printf("%-5s %-30s %-30s %-10s\n", "ID", "Name", "Email", "Status")
		fmt.Println("------------------------------------------------------------------------------")

		for _, client := range clients {
			status := "Active"
			if !client.IsActive {
				status = "Inactive"
			}
			fmt.Printf("%-5d %-30s %-30s %-10s\n",
				client.ID,
				truncate(client.Name(), 30),
				truncate(client.Email, 30),
				status,
			)
		}

		fmt.Printf("\nTotal: %d client(s)\n", len(clients))
		return nil
	},
}
