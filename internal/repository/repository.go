package repository

import (
	"context"

	"github.com/drew/praxis/internal/domain"
)

// ClientRepository reads practice clients from the backend.
type ClientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
}

// InvoiceHeader is the create-invoice request body. The server assigns
// the id and invoice number and computes the total.
type InvoiceHeader struct {
	ClientID  int64       `json:"client"`
	IssueDate domain.Date `json:"issue_date"`
	DueDate   domain.Date `json:"due_date"`
	Notes     string      `json:"notes"`
}

// BillingRepository is the REST surface of the billing backend: unbilled
// candidate queries, invoice creation and attachment, and lifecycle
// transition commands.
type BillingRepository interface {
	// UnbilledTimeEntries returns a client's billable, not-yet-invoiced time entries.
	UnbilledTimeEntries(ctx context.Context, clientID int64) ([]*domain.TimeEntry, error)

	// UnbilledExpenses returns a client's billable, not-yet-invoiced expenses.
	UnbilledExpenses(ctx context.Context, clientID int64) ([]*domain.Expense, error)

	// CreateInvoice persists an invoice header and returns the server-assigned invoice.
	CreateInvoice(ctx context.Context, header InvoiceHeader) (*domain.Invoice, error)

	// AttachTimeEntries links time entries to an invoice in one batch call.
	// Re-attaching an already-attached id is a server-side no-op, which makes
	// manual retry after partial failure safe.
	AttachTimeEntries(ctx context.Context, invoiceID int64, entryIDs []int64) error

	// AttachExpenses links expenses to an invoice in one batch call.
	AttachExpenses(ctx context.Context, invoiceID int64, expenseIDs []int64) error

	// SubmitTransition issues a lifecycle command for an invoice. The server
	// holds the authoritative guard and may reject the command.
	SubmitTransition(ctx context.Context, invoiceID int64, cmd domain.TransitionCommand) error

	// GetInvoice re-fetches the authoritative invoice, including attached items.
	GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error)

	// ListInvoices lists invoices with optional client and status filters.
	ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
}
