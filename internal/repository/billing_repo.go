package repository

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/drew/praxis/internal/api"
	"github.com/drew/praxis/internal/domain"
)

// BillingRepo is a REST implementation of BillingRepository
type BillingRepo struct {
	transport api.Transport
}

// NewBillingRepo creates a new BillingRepo
func NewBillingRepo(transport api.Transport) *BillingRepo {
	return &BillingRepo{transport: transport}
}

// unbilledQuery builds the candidate filter: billable items for the client
// that are not yet attached to any invoice.
func unbilledQuery(clientID int64) url.Values {
	q := url.Values{}
	q.Set("client_id", strconv.FormatInt(clientID, 10))
	q.Set("invoiced", "false")
	q.Set("billable", "true")
	return q
}

// UnbilledTimeEntries fetches a client's outstanding billable time entries
func (r *BillingRepo) UnbilledTimeEntries(ctx context.Context, clientID int64) ([]*domain.TimeEntry, error) {
	var resp listResponse[*domain.TimeEntry]
	if err := r.transport.Get(ctx, "/api/billing/time-entries/", unbilledQuery(clientID), &resp); err != nil {
		return nil, fmt.Errorf("failed to load unbilled time entries: %w", err)
	}
	return resp.Items, nil
}

// UnbilledExpenses fetches a client's outstanding billable expenses
func (r *BillingRepo) UnbilledExpenses(ctx context.Context, clientID int64) ([]*domain.Expense, error) {
	var resp listResponse[*domain.Expense]
	if err := r.transport.Get(ctx, "/api/billing/expenses/", unbilledQuery(clientID), &resp); err != nil {
		return nil, fmt.Errorf("failed to load unbilled expenses: %w", err)
	}
	return resp.Items, nil
}

// CreateInvoice persists the invoice header and returns the server-assigned invoice
func (r *BillingRepo) CreateInvoice(ctx context.Context, header InvoiceHeader) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := r.transport.Post(ctx, "/api/billing/invoices/", header, &invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return &invoice, nil
}

// AttachTimeEntries links time entries to the invoice in one batch call
func (r *BillingRepo) AttachTimeEntries(ctx context.Context, invoiceID int64, entryIDs []int64) error {
	path := fmt.Sprintf("/api/billing/invoices/%d/add_time_entries/", invoiceID)
	body := map[string][]int64{"time_entry_ids": entryIDs}
	if err := r.transport.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to attach time entries: %w", err)
	}
	return nil
}

// AttachExpenses links expenses to the invoice in one batch call
func (r *BillingRepo) AttachExpenses(ctx context.Context, invoiceID int64, expenseIDs []int64) error {
	path := fmt.Sprintf("/api/billing/invoices/%d/add_expenses/", invoiceID)
	body := map[string][]int64{"expense_ids": expenseIDs}
	if err := r.transport.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to attach expenses: %w", err)
	}
	return nil
}

// transitionPath maps a lifecycle command to its endpoint suffix
func transitionPath(invoiceID int64, cmd domain.TransitionCommand) (string, error) {
	var suffix string
	switch cmd {
	case domain.CommandMarkSent:
		suffix = "mark_as_sent"
	case domain.CommandMarkPaid:
		suffix = "mark_as_paid"
	case domain.CommandVoid:
		suffix = "void"
	default:
		return "", fmt.Errorf("unknown transition command %q", cmd)
	}
	return fmt.Sprintf("/api/billing/invoices/%d/%s/", invoiceID, suffix), nil
}

// SubmitTransition issues a lifecycle command for the invoice
func (r *BillingRepo) SubmitTransition(ctx context.Context, invoiceID int64, cmd domain.TransitionCommand) error {
	path, err := transitionPath(invoiceID, cmd)
	if err != nil {
		return err
	}
	if err := r.transport.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to submit %s: %w", cmd, err)
	}
	return nil
}

// GetInvoice re-fetches the authoritative invoice with attached items
func (r *BillingRepo) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	var invoice domain.Invoice
	path := fmt.Sprintf("/api/billing/invoices/%d/", invoiceID)
	if err := r.transport.Get(ctx, path, nil, &invoice); err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

// ListInvoices lists invoices with optional client and status filters
func (r *BillingRepo) ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	q := url.Values{}
	if clientID != nil {
		q.Set("client_id", strconv.FormatInt(*clientID, 10))
	}
	if status != nil {
		q.Set("status", string(*status))
	}

	var resp listResponse[*domain.Invoice]
	if err := r.transport.Get(ctx, "/api/billing/invoices/", q, &resp); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return resp.Items, nil
}
