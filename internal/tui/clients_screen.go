package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drew/praxis/internal/app"
	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
)

// ClientsModel displays a navigable list of clients with their unbilled totals
type ClientsModel struct {
	app      *app.App
	clients  []*domain.Client
	unbilled map[int64]money.Amount
	cursor   int
	loading  bool
	err      error
}

type clientsDataMsg struct {
	clients  []*domain.Client
	unbilled map[int64]money.Amount
	err      error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:      a,
		unbilled: make(map[int64]money.Amount),
		loading:  true,
	}
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		clients, err := m.app.ClientRepo.List(ctx)
		if err != nil {
			return clientsDataMsg{err: err}
		}

		// Unbilled total per client, skipping clients that error
		unbilled := make(map[int64]money.Amount)
		for _, client := range clients {
			entries, err := m.app.BillingRepo.UnbilledTimeEntries(ctx, client.ID)
			if err != nil {
				continue
			}
			expenses, err := m.app.BillingRepo.UnbilledExpenses(ctx, client.ID)
			if err != nil {
				continue
			}
			total := money.Zero
			for _, e := range entries {
				total = total.Add(e.Amount)
			}
			for _, x := range expenses {
				total = total.Add(x.Amount)
			}
			unbilled[client.ID] = total
		}

		return clientsDataMsg{clients: clients, unbilled: unbilled}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		m.clients = msg.clients
		if msg.unbilled != nil {
			m.unbilled = msg.unbilled
		}
		if m.cursor >= len(m.clients) {
			m.cursor = 0
		}
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			// Start an invoice for the highlighted client
			if len(m.clients) > 0 {
				client := m.clients[m.cursor]
				switchCmd := func() tea.Msg { return SwitchScreenMsg{Screen: ScreenInvoices} }
				startCmd := func() tea.Msg { return StartDraftMsg{Client: client} }
				return m, tea.Sequence(switchCmd, startCmd)
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) View() string {
	if m.loading {
		return "Loading clients..."
	}

	var s string
	s += titleStyle.Render("Clients") + "\n\n"

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.clients) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No clients found")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-28s  %-28s  %-10s  %12s",
		"Name", "Email", "Status", "Unbilled",
	)) + "\n"

	for i, client := range m.clients {
		status := "Active"
		if !client.IsActive {
			status = "Inactive"
		}

		unbilledStr := "-"
		if total, ok := m.unbilled[client.ID]; ok && !total.IsZero() {
			unbilledStr = money.Format(total)
		}

		line := fmt.Sprintf("  %-28s  %-28s  %-10s  %12s",
			truncateStr(client.Name(), 28),
			truncateStr(client.Email, 28),
			status,
			unbilledStr,
		)

		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new invoice for client")

	return s
}
