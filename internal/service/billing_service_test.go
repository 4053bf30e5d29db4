package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/drew/praxis/internal/api"
	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/repository"
)

// mock implementation
type mockBillingRepo struct {
	calls []string

	entries  []*domain.TimeEntry
	expenses []*domain.Expense

	created        *domain.Invoice
	createErr      error
	attachTimeErr  error
	attachExpErr   error
	transitionErr  error
	fetched        *domain.Invoice
	fetchErr       error
	attachedTime   []int64
	attachedExp    []int64
	lastTransition domain.TransitionCommand
}

func (m *mockBillingRepo) UnbilledTimeEntries(ctx context.Context, clientID int64) ([]*domain.TimeEntry, error) {
	m.calls = append(m.calls, "unbilled_time")
	return m.entries, nil
}

func (m *mockBillingRepo) UnbilledExpenses(ctx context.Context, clientID int64) ([]*domain.Expense, error) {
	m.calls = append(m.calls, "unbilled_expenses")
	return m.expenses, nil
}

func (m *mockBillingRepo) CreateInvoice(ctx context.Context, header repository.InvoiceHeader) (*domain.Invoice, error) {
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.created != nil {
		return m.created, nil
	}
	return &domain.Invoice{ID: 33, InvoiceNumber: "INV-2026-0007", ClientID: header.ClientID, Status: domain.InvoiceStatusDraft}, nil
}

func (m *mockBillingRepo) AttachTimeEntries(ctx context.Context, invoiceID int64, entryIDs []int64) error {
	m.calls = append(m.calls, "attach_time")
	m.attachedTime = entryIDs
	return m.attachTimeErr
}

func (m *mockBillingRepo) AttachExpenses(ctx context.Context, invoiceID int64, expenseIDs []int64) error {
	m.calls = append(m.calls, "attach_expenses")
	m.attachedExp = expenseIDs
	return m.attachExpErr
}

func (m *mockBillingRepo) SubmitTransition(ctx context.Context, invoiceID int64, cmd domain.TransitionCommand) error {
	m.calls = append(m.calls, "transition")
	m.lastTransition = cmd
	return m.transitionErr
}

func (m *mockBillingRepo) GetInvoice(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	m.calls = append(m.calls, "get")
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.fetched != nil {
		return m.fetched, nil
	}
	return &domain.Invoice{ID: invoiceID, Status: domain.InvoiceStatusSent}, nil
}

func (m *mockBillingRepo) ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	m.calls = append(m.calls, "list")
	return nil, nil
}

func draftWithSelection() *domain.InvoiceDraft {
	draft := domain.NewInvoiceDraft(30)
	draft.SetClient(1)
	draft.Ledger.SetCandidates(
		[]*domain.TimeEntry{
			{ID: 101, Amount: money.MustNew("100.00"), Billable: true},
			{ID: 102, Amount: money.MustNew("50.25"), Billable: true},
		},
		[]*domain.Expense{
			{ID: 201, Amount: money.MustNew("12.75"), Billable: true},
		},
	)
	draft.Ledger.ToggleTimeEntry(101)
	draft.Ledger.ToggleTimeEntry(102)
	draft.Ledger.ToggleExpense(201)
	return draft
}

func TestSubmitDraft_MissingClient(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := domain.NewInvoiceDraft(30)
	draft.Ledger.SetCandidates([]*domain.TimeEntry{{ID: 1, Amount: money.MustNew("10.00")}}, nil)
	draft.Ledger.ToggleTimeEntry(1)

	_, err := svc.SubmitDraft(context.Background(), draft)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(mock.calls) != 0 {
		t.Fatalf("expected zero network calls, got %v", mock.calls)
	}
}

func TestSubmitDraft_EmptySelection(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := domain.NewInvoiceDraft(30)
	draft.SetClient(1)

	_, err := svc.SubmitDraft(context.Background(), draft)

	var v *ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(v.Fields) != 1 || v.Fields[0] != "line items" {
		t.Errorf("expected missing line items, got %v", v.Fields)
	}
	if len(mock.calls) != 0 {
		t.Fatalf("expected zero network calls, got %v", mock.calls)
	}
}

func TestSubmitDraft_DueBeforeIssue(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := draftWithSelection()
	draft.IssueDate = domain.MustParseDate("2026-08-29")
	draft.DueDate = domain.MustParseDate("2026-08-01")

	_, err := svc.SubmitDraft(context.Background(), draft)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(mock.calls) != 0 {
		t.Fatalf("expected zero network calls, got %v", mock.calls)
	}
}

func TestSubmitDraft_HappyPath(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := draftWithSelection()

	if draft.Ledger.Total().String() != "163.00" {
		t.Fatalf("expected advisory total 163.00, got %s", draft.Ledger.Total())
	}

	invoice, err := svc.SubmitDraft(context.Background(), draft)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invoice.ID != 33 {
		t.Errorf("expected invoice id 33, got %d", invoice.ID)
	}

	want := []string{"create", "attach_time", "attach_expenses"}
	if len(mock.calls) != 3 {
		t.Fatalf("expected exactly 3 calls, got %v", mock.calls)
	}
	for i, call := range want {
		if mock.calls[i] != call {
			t.Errorf("call %d: got %s, want %s", i, mock.calls[i], call)
		}
	}

	if len(mock.attachedTime) != 2 || mock.attachedTime[0] != 101 || mock.attachedTime[1] != 102 {
		t.Errorf("unexpected time entry ids: %v", mock.attachedTime)
	}
	if len(mock.attachedExp) != 1 || mock.attachedExp[0] != 201 {
		t.Errorf("unexpected expense ids: %v", mock.attachedExp)
	}
}

func TestSubmitDraft_SkipsEmptyBatches(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := domain.NewInvoiceDraft(30)
	draft.SetClient(1)
	draft.Ledger.SetCandidates(nil, []*domain.Expense{{ID: 201, Amount: money.MustNew("12.75")}})
	draft.Ledger.ToggleExpense(201)

	if _, err := svc.SubmitDraft(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.calls) != 2 || mock.calls[0] != "create" || mock.calls[1] != "attach_expenses" {
		t.Fatalf("expected create + attach_expenses only, got %v", mock.calls)
	}
}

func TestSubmitDraft_HeaderFailure(t *testing.T) {
	mock := &mockBillingRepo{createErr: errors.New("boom")}
	svc := NewBillingService(mock)

	_, err := svc.SubmitDraft(context.Background(), draftWithSelection())
	if !errors.Is(err, ErrHeaderCreation) {
		t.Fatalf("expected header creation error, got %v", err)
	}

	// Nothing else may be attempted after a header failure
	if len(mock.calls) != 1 || mock.calls[0] != "create" {
		t.Fatalf("expected only the create call, got %v", mock.calls)
	}
}

func TestSubmitDraft_PartialFailure_ExpensesStillAttempted(t *testing.T) {
	mock := &mockBillingRepo{attachTimeErr: errors.New("attach failed")}
	svc := NewBillingService(mock)

	invoice, err := svc.SubmitDraft(context.Background(), draftWithSelection())

	var partial *PartialCreationError
	if !errors.As(err, &partial) {
		t.Fatalf("expected partial creation error, got %v", err)
	}
	if partial.InvoiceID != 33 {
		t.Errorf("partial error must reference the new invoice id, got %d", partial.InvoiceID)
	}
	if partial.TimeEntryErr == nil || partial.ExpenseErr != nil {
		t.Errorf("expected only the time entry batch to fail: %+v", partial)
	}

	// The invoice exists and is returned alongside the error
	if invoice == nil || invoice.ID != 33 {
		t.Errorf("expected created invoice with the error, got %v", invoice)
	}

	// The expense batch is independent of the time entry failure
	found := false
	for _, call := range mock.calls {
		if call == "attach_expenses" {
			found = true
		}
	}
	if !found {
		t.Errorf("add_expenses must still be attempted after a time entry failure: %v", mock.calls)
	}
}

func TestSubmitDraft_BothAttachmentsFail(t *testing.T) {
	mock := &mockBillingRepo{
		attachTimeErr: errors.New("time failed"),
		attachExpErr:  errors.New("expense failed"),
	}
	svc := NewBillingService(mock)

	_, err := svc.SubmitDraft(context.Background(), draftWithSelection())

	var partial *PartialCreationError
	if !errors.As(err, &partial) {
		t.Fatalf("expected partial creation error, got %v", err)
	}
	if partial.TimeEntryErr == nil || partial.ExpenseErr == nil {
		t.Errorf("expected both batches reported: %+v", partial)
	}
}

func TestApplyTransition_GuardedLocally(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	invoice := &domain.Invoice{ID: 9, Status: domain.InvoiceStatusDraft}
	_, err := svc.ApplyTransition(context.Background(), invoice, domain.CommandMarkPaid)

	var rejected *RejectedTransitionError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected rejected transition, got %v", err)
	}
	if rejected.Err != nil {
		t.Error("local rejection must not carry a server error")
	}
	if len(mock.calls) != 0 {
		t.Fatalf("expected zero network calls for a local rejection, got %v", mock.calls)
	}
}

func TestApplyTransition_SendThenRefetch(t *testing.T) {
	mock := &mockBillingRepo{
		fetched: &domain.Invoice{ID: 9, Status: domain.InvoiceStatusSent, Total: money.MustNew("163.00")},
	}
	svc := NewBillingService(mock)

	invoice := &domain.Invoice{ID: 9, Status: domain.InvoiceStatusDraft}
	fresh, err := svc.ApplyTransition(context.Background(), invoice, domain.CommandMarkSent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Exactly one transition call, then exactly one re-fetch
	if len(mock.calls) != 2 || mock.calls[0] != "transition" || mock.calls[1] != "get" {
		t.Fatalf("expected transition then get, got %v", mock.calls)
	}
	if mock.lastTransition != domain.CommandMarkSent {
		t.Errorf("unexpected command %s", mock.lastTransition)
	}

	// Returned state is the authoritative re-fetched copy
	if fresh.Status != domain.InvoiceStatusSent || fresh.Total.String() != "163.00" {
		t.Errorf("expected re-fetched invoice, got %+v", fresh)
	}
	// The local copy is not patched
	if invoice.Status != domain.InvoiceStatusDraft {
		t.Error("local invoice must not be mutated optimistically")
	}
}

func TestApplyTransition_ServerRejection(t *testing.T) {
	mock := &mockBillingRepo{
		transitionErr: &api.Error{Status: http.StatusConflict, Method: "POST", Path: "/api/billing/invoices/9/mark_as_sent/", Detail: "not in draft"},
	}
	svc := NewBillingService(mock)

	invoice := &domain.Invoice{ID: 9, Status: domain.InvoiceStatusDraft}
	_, err := svc.ApplyTransition(context.Background(), invoice, domain.CommandMarkSent)

	var rejected *RejectedTransitionError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected rejected transition, got %v", err)
	}
	if rejected.Err == nil {
		t.Error("server rejection must carry the underlying error")
	}

	// No re-fetch after a rejected command
	for _, call := range mock.calls {
		if call == "get" {
			t.Errorf("must not re-fetch after rejection: %v", mock.calls)
		}
	}
}

func TestApplyTransition_NetworkFailureLeavesStateAlone(t *testing.T) {
	mock := &mockBillingRepo{
		transitionErr: &api.Error{Method: "POST", Path: "/api/billing/invoices/9/void/", Err: errors.New("connection refused")},
	}
	svc := NewBillingService(mock)

	invoice := &domain.Invoice{ID: 9, Status: domain.InvoiceStatusSent}
	_, err := svc.ApplyTransition(context.Background(), invoice, domain.CommandVoid)

	if err == nil {
		t.Fatal("expected error")
	}
	var rejected *RejectedTransitionError
	if errors.As(err, &rejected) {
		t.Fatal("network failure must not classify as rejection")
	}
	if invoice.Status != domain.InvoiceStatusSent {
		t.Error("invoice state must be left as last fetched")
	}
}

func TestLoadCandidates_PopulatesLedger(t *testing.T) {
	mock := &mockBillingRepo{
		entries:  []*domain.TimeEntry{{ID: 1, Amount: money.MustNew("100.00"), Billable: true}},
		expenses: []*domain.Expense{{ID: 10, Amount: money.MustNew("5.00"), Billable: true}},
	}
	svc := NewBillingService(mock)

	draft := domain.NewInvoiceDraft(30)
	draft.SetClient(7)

	if err := svc.LoadCandidates(context.Background(), draft); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(draft.Ledger.TimeEntries()) != 1 || len(draft.Ledger.Expenses()) != 1 {
		t.Errorf("candidates not loaded")
	}

	draft.Ledger.ToggleTimeEntry(1)
	draft.Ledger.ToggleExpense(10)
	if draft.Ledger.Total().String() != "105.00" {
		t.Errorf("expected 105.00, got %s", draft.Ledger.Total())
	}
}

func TestLoadCandidates_RequiresClient(t *testing.T) {
	mock := &mockBillingRepo{}
	svc := NewBillingService(mock)

	draft := domain.NewInvoiceDraft(30)
	if err := svc.LoadCandidates(context.Background(), draft); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(mock.calls) != 0 {
		t.Fatalf("expected zero calls, got %v", mock.calls)
	}
}
