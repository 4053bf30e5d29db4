package service

import (
	"context"

	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/repository"
)

// BillingSummary aggregates invoice totals for the dashboard. All figures
// come from server-reported invoice totals; nothing is computed locally
// beyond the grouping.
type BillingSummary struct {
	DraftCount   int
	SentCount    int
	OverdueCount int
	PaidCount    int

	Outstanding  money.Amount // total of sent + overdue invoices
	OverdueTotal money.Amount
	PaidTotal    money.Amount
}

// SummaryService provides billing aggregations
type SummaryService interface {
	GetBillingSummary(ctx context.Context) (*BillingSummary, error)
}

type summaryService struct {
	billingRepo repository.BillingRepository
}

// NewSummaryService creates a new summary service
func NewSummaryService(billingRepo repository.BillingRepository) SummaryService {
	return &summaryService{billingRepo: billingRepo}
}

func (s *summaryService) GetBillingSummary(ctx context.Context) (*BillingSummary, error) {
	invoices, err := s.billingRepo.ListInvoices(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	summary := &BillingSummary{}
	for _, inv := range invoices {
		switch inv.Status {
		case domain.InvoiceStatusDraft:
			summary.DraftCount++
		case domain.InvoiceStatusSent:
			summary.SentCount++
			summary.Outstanding = summary.Outstanding.Add(inv.Total)
		case domain.InvoiceStatusOverdue:
			summary.OverdueCount++
			summary.Outstanding = summary.Outstanding.Add(inv.Total)
			summary.OverdueTotal = summary.OverdueTotal.Add(inv.Total)
		case domain.InvoiceStatusPaid:
			summary.PaidCount++
			summary.PaidTotal = summary.PaidTotal.Add(inv.Total)
		}
	}

	return summary, nil
}
