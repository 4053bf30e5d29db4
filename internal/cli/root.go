package cli

import (
	"github.com/drew/praxis/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "praxis",
	Short: "A terminal client for the Praxis legal practice management API",
	Long: `Praxis lets a practice build invoices from unbilled time and expenses
and move them through their lifecycle without leaving the terminal.

By default, running praxis without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(unbilledCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(tuiCmd)
}
