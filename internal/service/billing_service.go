package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/drew/praxis/internal/api"
	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/repository"
)

// BillingService drives invoice draft construction and the invoice
// lifecycle against the backend.
type BillingService interface {
	// LoadCandidates fetches the draft client's unbilled time entries and
	// expenses into the draft's ledger. Selections of ids that no longer
	// exist are dropped.
	LoadCandidates(ctx context.Context, draft *domain.InvoiceDraft) error

	// SubmitDraft persists the draft: create the header, then attach the
	// selected items. Returns the created invoice on full success. A
	// *ValidationError means no call was made; a *PartialCreationError
	// means the invoice exists but is missing line items.
	SubmitDraft(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error)

	// ApplyTransition issues a guarded lifecycle command and, on success,
	// returns the re-fetched authoritative invoice. Illegal commands are
	// rejected locally with *RejectedTransitionError before any call.
	ApplyTransition(ctx context.Context, invoice *domain.Invoice, cmd domain.TransitionCommand) (*domain.Invoice, error)

	// GetInvoice fetches an invoice with its attached items.
	GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error)

	// ListInvoices lists invoices with optional filters.
	ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error)
}

type billingService struct {
	billingRepo repository.BillingRepository
}

// NewBillingService creates a new billing service
func NewBillingService(billingRepo repository.BillingRepository) BillingService {
	return &billingService{billingRepo: billingRepo}
}

func (s *billingService) LoadCandidates(ctx context.Context, draft *domain.InvoiceDraft) error {
	if draft.ClientID <= 0 {
		return &ValidationError{Fields: []string{"client"}}
	}

	entries, err := s.billingRepo.UnbilledTimeEntries(ctx, draft.ClientID)
	if err != nil {
		return err
	}

	expenses, err := s.billingRepo.UnbilledExpenses(ctx, draft.ClientID)
	if err != nil {
		return err
	}

	draft.Ledger.SetCandidates(entries, expenses)
	return nil
}

func (s *billingService) SubmitDraft(ctx context.Context, draft *domain.InvoiceDraft) (*domain.Invoice, error) {
	// Preconditions: fail fast, no network calls
	var missing []string
	if draft.ClientID <= 0 {
		missing = append(missing, "client")
	}
	if !draft.Ledger.HasSelection() {
		missing = append(missing, "line items")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}
	if !draft.DueDate.IsZero() && draft.DueDate.Before(draft.IssueDate) {
		return nil, &ValidationError{
			Fields: []string{"due_date"},
			Reason: "due date must be on or after issue date",
		}
	}

	// Step 1: create the header. If this fails nothing exists to recover;
	// the whole operation fails and may be retried as a unit.
	invoice, err := s.billingRepo.CreateInvoice(ctx, repository.InvoiceHeader{
		ClientID:  draft.ClientID,
		IssueDate: draft.IssueDate,
		DueDate:   draft.DueDate,
		Notes:     draft.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHeaderCreation, err)
	}

	// Steps 2 and 3: attach the selected items. The two batches are
	// independent; a time entry failure does not stop the expense attach.
	// Steps run sequentially since step 1's id feeds both.
	timeIDs := draft.Ledger.SelectedTimeEntryIDs()
	expenseIDs := draft.Ledger.SelectedExpenseIDs()

	var timeErr, expenseErr error
	if len(timeIDs) > 0 {
		timeErr = s.billingRepo.AttachTimeEntries(ctx, invoice.ID, timeIDs)
	}
	if len(expenseIDs) > 0 {
		expenseErr = s.billingRepo.AttachExpenses(ctx, invoice.ID, expenseIDs)
	}

	if timeErr != nil || expenseErr != nil {
		return invoice, &PartialCreationError{
			InvoiceID:    invoice.ID,
			TimeEntryErr: timeErr,
			ExpenseErr:   expenseErr,
		}
	}

	return invoice, nil
}

func (s *billingService) ApplyTransition(ctx context.Context, invoice *domain.Invoice, cmd domain.TransitionCommand) (*domain.Invoice, error) {
	if invoice == nil {
		return nil, errors.New("invoice is required")
	}

	// Local guard first: an unsupported transition is reported without a
	// network call. The server holds the authoritative guard regardless.
	if !invoice.Status.Allows(cmd) {
		return nil, &RejectedTransitionError{
			InvoiceID: invoice.ID,
			Command:   cmd,
			Status:    invoice.Status,
		}
	}

	if err := s.billingRepo.SubmitTransition(ctx, invoice.ID, cmd); err != nil {
		if api.IsRejected(err) {
			return nil, &RejectedTransitionError{
				InvoiceID: invoice.ID,
				Command:   cmd,
				Status:    invoice.Status,
				Err:       err,
			}
		}
		return nil, err
	}

	// Never patch local fields from the transition response; re-fetch so
	// status and total stay authoritative.
	return s.billingRepo.GetInvoice(ctx, invoice.ID)
}

func (s *billingService) GetInvoice(ctx context.Context, id int64) (*domain.Invoice, error) {
	return s.billingRepo.GetInvoice(ctx, id)
}

func (s *billingService) ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	return s.billingRepo.ListInvoices(ctx, clientID, status)
}
