package tui

import (
	"context"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drew/praxis/internal/app"
	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	summary *service.BillingSummary
	recent  []*domain.Invoice

	loading bool
	err     error
}

type dashboardDataMsg struct {
	summary *service.BillingSummary
	recent  []*domain.Invoice
	err     error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		summary, err := m.app.SummaryService.GetBillingSummary(ctx)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		invoices, err := m.app.BillingService.ListInvoices(ctx, nil, nil)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		// Most recent first by issue date
		sort.Slice(invoices, func(i, j int) bool {
			return invoices[j].IssueDate.Before(invoices[i].IssueDate)
		})

		return dashboardDataMsg{summary: summary, recent: invoices}
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.summary = msg.summary
		m.recent = msg.recent
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	if m.summary != nil {
		s += fmt.Sprintf(
			"  Outstanding:  %-14s  Overdue:  %s\n  Collected:    %-14s\n",
			money.Format(m.summary.Outstanding),
			money.Format(m.summary.OverdueTotal),
			money.Format(m.summary.PaidTotal),
		)
		s += "\n"
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %d draft  |  %d sent  |  %d overdue  |  %d paid",
			m.summary.DraftCount, m.summary.SentCount,
			m.summary.OverdueCount, m.summary.PaidCount,
		)) + "\n"
	}

	s += "\n" + m.renderRecentInvoices()

	return s
}

func (m *DashboardModel) renderRecentInvoices() string {
	header := "  Recent Invoices\n"
	if len(m.recent) == 0 {
		return header + subtitleStyle.Render("  No invoices yet") + "\n"
	}

	s := header
	limit := 8
	if len(m.recent) < limit {
		limit = len(m.recent)
	}

	for i := 0; i < limit; i++ {
		inv := m.recent[i]
		s += fmt.Sprintf("  %-14s %-22s %-14s %10s  %s\n",
			truncateStr(inv.InvoiceNumber, 14),
			truncateStr(inv.ClientName, 22),
			inv.IssueDate.Display(),
			money.Format(inv.Total),
			statusBadge(inv.Status),
		)
	}

	return s
}
