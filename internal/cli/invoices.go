package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/service"
	"github.com/spf13/cobra"
)

var invoicesCmd = &cobra.Command{
	Use:   "invoices",
	Short: "List and manage invoices",
	Long:  `List invoices, inspect one, create one from unbilled work, and move invoices through their lifecycle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var clientID *int64
		if clientFlag, _ := cmd.Flags().GetString("client"); clientFlag != "" {
			id, err := resolveClientID(ctx, clientFlag)
			if err != nil {
				return err
			}
			clientID = &id
		}

		var status *domain.InvoiceStatus
		if statusFlag, _ := cmd.Flags().GetString("status"); statusFlag != "" {
			s := domain.InvoiceStatus(statusFlag)
			switch s {
			case domain.InvoiceStatusDraft, domain.InvoiceStatusSent, domain.InvoiceStatusPaid,
				domain.InvoiceStatusOverdue, domain.InvoiceStatusVoid:
			default:
				return fmt.Errorf("unknown status %q (draft, sent, paid, overdue, void)", statusFlag)
			}
			status = &s
		}

		invoices, err := appInstance.BillingService.ListInvoices(ctx, clientID, status)
		if err != nil {
			return fmt.Errorf("failed to list invoices: %w", err)
		}

		if len(invoices) == 0 {
			fmt.Println("No invoices found")
			return nil
		}

		fmt.Printf("%-5s %-12s %-25s %-12s %-12s %-9s %s\n",
			"ID", "Number", "Client", "Issued", "Due", "Status", "Total")
		fmt.Println("--------------------------------------------------------------------------------------")
		for _, inv := range invoices {
			fmt.Printf("%-5d %-12s %-25s %-12s %-12s %-9s %s\n",
				inv.ID,
				truncate(inv.InvoiceNumber, 12),
				truncate(inv.ClientName, 25),
				inv.IssueDate.Display(),
				inv.DueDate.Display(),
				inv.Status,
				money.Format(inv.Total),
			)
		}

		fmt.Printf("\nTotal: %d invoice(s)\n", len(invoices))
		return nil
	},
}

var invoicesShowCmd = &cobra.Command{
	Use:   "show [invoice-id]",
	Short: "Show an invoice with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid invoice id %q", args[0])
		}

		inv, err := appInstance.BillingService.GetInvoice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch invoice: %w", err)
		}

		printInvoice(inv)
		return nil
	},
}

var invoicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an invoice from unbilled work",
	Long: `Create an invoice for a client from their unbilled time entries and
expenses. Pick items with --time and --expenses (comma-separated ids from
'praxis unbilled'), or pass --all to select everything.`,
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

		draft := domain.NewInvoiceDraft(appInstance.Config.Invoice.DefaultDueDays)
		draft.SetClient(clientID)

		if issueFlag, _ := cmd.Flags().GetString("issue-date"); issueFlag != "" {
			d, err := domain.ParseDate(issueFlag)
			if err != nil {
				return fmt.Errorf("invalid --issue-date: %w", err)
			}
			draft.IssueDate = d
		}
		if dueFlag, _ := cmd.Flags().GetString("due-date"); dueFlag != "" {
			d, err := domain.ParseDate(dueFlag)
			if err != nil {
				return fmt.Errorf("invalid --due-date: %w", err)
			}
			draft.DueDate = d
		}
		draft.Notes, _ = cmd.Flags().GetString("notes")

		if err := appInstance.BillingService.LoadCandidates(ctx, draft); err != nil {
			return fmt.Errorf("failed to load unbilled work: %w", err)
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			draft.Ledger.SelectAll(domain.ItemKindTime)
			draft.Ledger.SelectAll(domain.ItemKindExpense)
		} else {
			timeFlag, _ := cmd.Flags().GetString("time")
			timeIDs, err := parseIDList(timeFlag)
			if err != nil {
				return fmt.Errorf("invalid --time: %w", err)
			}
			expenseFlag, _ := cmd.Flags().GetString("expenses")
			expenseIDs, err := parseIDList(expenseFlag)
			if err != nil {
				return fmt.Errorf("invalid --expenses: %w", err)
			}
			for _, id := range timeIDs {
				draft.Ledger.ToggleTimeEntry(id)
			}
			for _, id := range expenseIDs {
				draft.Ledger.ToggleExpense(id)
			}
		}

		invoice, err := appInstance.BillingService.SubmitDraft(ctx, draft)
		if err != nil {
			var partial *service.PartialCreationError
			if errors.As(err, &partial) {
				fmt.Printf("⚠ Invoice #%d was created but some items could not be attached:\n", partial.InvoiceID)
				if partial.TimeEntryErr != nil {
					fmt.Printf("  time entries: %v\n", partial.TimeEntryErr)
				}
				if partial.ExpenseErr != nil {
					fmt.Printf("  expenses: %v\n", partial.ExpenseErr)
				}
				fmt.Println("Re-run with the same selections against the existing invoice, or fix it in the web app.")
				return err
			}
			return fmt.Errorf("failed to create invoice: %w", err)
		}

		fmt.Printf("✓ Created invoice #%d (%s) for %s\n",
			invoice.ID, invoice.InvoiceNumber, money.Format(draft.Ledger.Total()))
		return nil
	},
}

var invoicesMarkSentCmd = &cobra.Command{
	Use:   "mark-sent [invoice-id]",
	Short: "Mark a draft invoice as sent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(args[0], domain.CommandMarkSent)
	},
}

var invoicesMarkPaidCmd = &cobra.Command{
	Use:   "mark-paid [invoice-id]",
	Short: "Mark a sent or overdue invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(args[0], domain.CommandMarkPaid)
	},
}

var invoicesVoidCmd = &cobra.Command{
	Use:   "void [invoice-id]",
	Short: "Void an invoice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransition(args[0], domain.CommandVoid)
	},
}

func runTransition(arg string, command domain.TransitionCommand) error {
	ctx := context.Background()

	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid invoice id %q", arg)
	}

	invoice, err := appInstance.BillingService.GetInvoice(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch invoice: %w", err)
	}

	updated, err := appInstance.BillingService.ApplyTransition(ctx, invoice, command)
	if err != nil {
		var rejected *service.RejectedTransitionError
		if errors.As(err, &rejected) {
			return fmt.Errorf("%v", rejected)
		}
		return fmt.Errorf("transition failed: %w", err)
	}

	fmt.Printf("✓ Invoice #%d (%s) is now %s\n", updated.ID, updated.InvoiceNumber, updated.Status)
	return nil
}

func printInvoice(inv *domain.Invoice) {
	fmt.Printf("Invoice #%d  %s\n", inv.ID, inv.InvoiceNumber)
	fmt.Printf("  Client: %s\n", inv.ClientName)
	fmt.Printf("  Status: %s\n", inv.Status)
	fmt.Printf("  Issued: %s   Due: %s\n", inv.IssueDate.Display(), inv.DueDate.Display())
	if !inv.PaidDate.IsZero() {
		fmt.Printf("  Paid:   %s\n", inv.PaidDate.Display())
	}
	if inv.Notes != "" {
		fmt.Printf("  Notes:  %s\n", inv.Notes)
	}
	fmt.Printf("  Total:  %s\n", money.Format(inv.Total))

	if len(inv.TimeEntries) > 0 {
		fmt.Println("\n  Time Entries:")
		for _, e := range inv.TimeEntries {
			fmt.Printf("    %-12s %-30s %6.2fh  %s\n",
				e.Date.Display(), truncate(e.Description, 30), e.Hours, money.Format(e.Amount))
		}
	}
	if len(inv.Expenses) > 0 {
		fmt.Println("\n  Expenses:")
		for _, x := range inv.Expenses {
			fmt.Printf("    %-12s %-30s         %s\n",
				x.Date.Display(), truncate(x.Description, 30), money.Format(x.Amount))
		}
	}

	if cmds := inv.Status.Commands(); len(cmds) > 0 {
		fmt.Printf("\n  Next: ")
		for i, c := range cmds {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(string(c))
		}
		fmt.Println()
	}
}

func init() {
	invoicesCmd.Flags().StringP("client", "c", "", "Filter by client ID or name")
	invoicesCmd.Flags().StringP("status", "s", "", "Filter by status (draft, sent, paid, overdue, void)")

	invoicesCreateCmd.Flags().StringP("client", "c", "", "Client ID or name (required)")
	invoicesCreateCmd.Flags().String("time", "", "Comma-separated time entry ids to attach")
	invoicesCreateCmd.Flags().String("expenses", "", "Comma-separated expense ids to attach")
	invoicesCreateCmd.Flags().Bool("all", false, "Select all unbilled items")
	invoicesCreateCmd.Flags().String("issue-date", "", "Issue date (YYYY-MM-DD, default today)")
	invoicesCreateCmd.Flags().String("due-date", "", "Due date (YYYY-MM-DD, default issue + configured due days)")
	invoicesCreateCmd.Flags().String("notes", "", "Invoice notes")

	invoicesCmd.AddCommand(invoicesShowCmd)
	invoicesCmd.AddCommand(invoicesCreateCmd)
	invoicesCmd.AddCommand(invoicesMarkSentCmd)
	invoicesCmd.AddCommand(invoicesMarkPaidCmd)
	invoicesCmd.AddCommand(invoicesVoidCmd)
}
