package service

import (
	"context"
	"testing"

	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/repository"
)

type listOnlyRepo struct {
	repository.BillingRepository
	invoices []*domain.Invoice
}

func (r *listOnlyRepo) ListInvoices(ctx context.Context, clientID *int64, status *domain.InvoiceStatus) ([]*domain.Invoice, error) {
	return r.invoices, nil
}

func TestGetBillingSummary(t *testing.T) {
	repo := &listOnlyRepo{invoices: []*domain.Invoice{
		{ID: 1, Status: domain.InvoiceStatusDraft, Total: money.MustNew("100.00")},
		{ID: 2, Status: domain.InvoiceStatusSent, Total: money.MustNew("200.00")},
		{ID: 3, Status: domain.InvoiceStatusOverdue, Total: money.MustNew("50.00")},
		{ID: 4, Status: domain.InvoiceStatusPaid, Total: money.MustNew("300.00")},
		{ID: 5, Status: domain.InvoiceStatusVoid, Total: money.MustNew("75.00")},
	}}
	svc := NewSummaryService(repo)

	summary, err := svc.GetBillingSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.DraftCount != 1 || summary.SentCount != 1 || summary.OverdueCount != 1 || summary.PaidCount != 1 {
		t.Errorf("unexpected counts: %+v", summary)
	}
	if summary.Outstanding.String() != "250.00" {
		t.Errorf("expected outstanding 250.00, got %s", summary.Outstanding)
	}
	if summary.OverdueTotal.String() != "50.00" {
		t.Errorf("expected overdue 50.00, got %s", summary.OverdueTotal)
	}
	if summary.PaidTotal.String() != "300.00" {
		t.Errorf("expected paid 300.00, got %s", summary.PaidTotal)
	}
}
