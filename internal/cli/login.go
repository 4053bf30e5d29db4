package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token for the practice management backend",
	Long: `Store an API token in the system keyring. The token is attached as a
bearer credential to every request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("API URL: %s\n", appInstance.Config.API.BaseURL)
		fmt.Print("Paste your API token: ")

		// Read the token without echo
		token, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}

		if len(token) == 0 {
			return fmt.Errorf("token cannot be empty")
		}

		if err := appInstance.Keyring.SetToken(string(token)); err != nil {
			return fmt.Errorf("failed to store token: %w", err)
		}

		fmt.Println("✓ Token stored")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := appInstance.Keyring.DeleteToken(); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}

		fmt.Println("✓ Token removed")
		return nil
	},
}
