package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drew/praxis/internal/app"
	"github.com/drew/praxis/internal/domain"
	"github.com/drew/praxis/internal/money"
	"github.com/drew/praxis/internal/service"
)

type invoiceViewMode int

const (
	invoiceViewList       invoiceViewMode = iota
	invoiceViewDetail                     // Viewing a single invoice
	invoiceViewPickClient                 // Draft step 1: pick client
	invoiceViewPickItems                  // Draft step 2: toggle unbilled items
	invoiceViewForm                       // Draft step 3: dates and notes
)

// draft form field indices
const (
	draftFieldIssueDate = iota
	draftFieldDueDate
	draftFieldNotes
	draftFieldCount
)

// InvoicesModel displays invoices and drives the new-invoice draft flow
type InvoicesModel struct {
	app       *app.App
	mode      invoiceViewMode
	invoices  []*domain.Invoice
	cursor    int
	selected  *domain.Invoice
	loading   bool
	err       error
	statusMsg string

	// Draft state
	draft        *domain.InvoiceDraft
	draftClients []*domain.Client
	draftCursor  int
	draftClient  *domain.Client
	itemCursor   int // index into the combined time-entries-then-expenses list
	fields       []textinput.Model
	fieldFocus   int
}

// IsCapturingInput returns true when the draft form inputs are active
func (m *InvoicesModel) IsCapturingInput() bool {
	return m.mode == invoiceViewForm
}

type invoicesDataMsg struct {
	invoices []*domain.Invoice
	err      error
}

type invoiceDetailMsg struct {
	invoice *domain.Invoice
	err     error
}

// draftClientsMsg carries the client list for draft step 1
type draftClientsMsg struct {
	clients []*domain.Client
	err     error
}

// draftCandidatesMsg signals the draft's unbilled candidates are loaded
type draftCandidatesMsg struct {
	err error
}

// draftSubmittedMsg signals draft submission finished
type draftSubmittedMsg struct {
	invoice *domain.Invoice
	err     error
}

// transitionDoneMsg signals a lifecycle command finished
type transitionDoneMsg struct {
	invoice *domain.Invoice
	err     error
}

// NewInvoicesModel creates a new invoices screen model
func NewInvoicesModel(a *app.App) tea.Model {
	return &InvoicesModel{
		app:     a,
		mode:    invoiceViewList,
		loading: true,
	}
}

func (m *InvoicesModel) Init() tea.Cmd {
	return m.loadInvoices()
}

func (m *InvoicesModel) loadInvoices() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		invoices, err := m.app.BillingService.ListInvoices(ctx, nil, nil)
		if err != nil {
			return invoicesDataMsg{err: err}
		}
		return invoicesDataMsg{invoices: invoices}
	}
}

func (m *InvoicesModel) loadDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		invoice, err := m.app.BillingService.GetInvoice(ctx, id)
		if err != nil {
			return invoiceDetailMsg{err: err}
		}
		return invoiceDetailMsg{invoice: invoice}
	}
}

func (m *InvoicesModel) loadDraftClients() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		clients, err := m.app.ClientRepo.List(ctx)
		if err != nil {
			return draftClientsMsg{err: err}
		}
		var active []*domain.Client
		for _, c := range clients {
			if c.IsActive {
				active = append(active, c)
			}
		}
		return draftClientsMsg{clients: active}
	}
}

func (m *InvoicesModel) loadDraftCandidates() tea.Cmd {
	draft := m.draft
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.app.BillingService.LoadCandidates(ctx, draft); err != nil {
			return draftCandidatesMsg{err: err}
		}
		return draftCandidatesMsg{}
	}
}

func (m *InvoicesModel) submitDraft() tea.Cmd {
	draft := m.draft
	return func() tea.Msg {
		ctx := context.Background()
		invoice, err := m.app.BillingService.SubmitDraft(ctx, draft)
		return draftSubmittedMsg{invoice: invoice, err: err}
	}
}

func (m *InvoicesModel) applyTransition(invoice *domain.Invoice, cmd domain.TransitionCommand) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		updated, err := m.app.BillingService.ApplyTransition(ctx, invoice, cmd)
		return transitionDoneMsg{invoice: updated, err: err}
	}
}

// startDraft begins the item-picking step for a known client
func (m *InvoicesModel) startDraft(client *domain.Client) tea.Cmd {
	m.draft = domain.NewInvoiceDraft(m.app.Config.Invoice.DefaultDueDays)
	m.draft.SetClient(client.ID)
	m.draftClient = client
	m.itemCursor = 0
	m.err = nil
	m.statusMsg = ""
	m.loading = true
	m.mode = invoiceViewPickItems
	return m.loadDraftCandidates()
}

func (m *InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.mode == invoiceViewList {
			m.loading = true
			return m, m.loadInvoices()
		}
		return m, nil

	case StartDraftMsg:
		return m, m.startDraft(msg.Client)

	case invoicesDataMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		if m.cursor >= len(m.invoices) {
			m.cursor = 0
		}
		return m, nil

	case invoiceDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.invoice
		m.mode = invoiceViewDetail
		return m, nil

	case draftClientsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		if len(msg.clients) == 0 {
			m.err = fmt.Errorf("no active clients")
			m.mode = invoiceViewList
			return m, nil
		}
		m.draftClients = msg.clients
		m.draftCursor = 0
		m.mode = invoiceViewPickClient
		return m, nil

	case draftCandidatesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.mode = invoiceViewList
			return m, nil
		}
		return m, nil

	case draftSubmittedMsg:
		m.loading = false
		if msg.err != nil {
			var partial *service.PartialCreationError
			if errors.As(msg.err, &partial) {
				// The invoice exists but is missing line items; never report
				// this as a success.
				m.err = msg.err
				m.mode = invoiceViewList
				m.draft = nil
				m.draftClient = nil
				return m, m.loadInvoices()
			}
			// Validation and header failures leave the draft intact for
			// another attempt.
			m.err = msg.err
			if service.IsValidation(msg.err) {
				m.mode = invoiceViewForm
			}
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Invoice %s created for %s",
			msg.invoice.InvoiceNumber, m.draftClient.Name())
		m.mode = invoiceViewList
		m.draft = nil
		m.draftClient = nil
		m.draftClients = nil
		return m, m.loadInvoices()

	case transitionDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.selected = msg.invoice
		m.statusMsg = fmt.Sprintf("Invoice %s is now %s", msg.invoice.InvoiceNumber, msg.invoice.Status)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch m.mode {
		case invoiceViewList:
			return m.updateList(msg)
		case invoiceViewDetail:
			return m.updateDetail(msg)
		case invoiceViewPickClient:
			return m.updatePickClient(msg)
		case invoiceViewPickItems:
			return m.updatePickItems(msg)
		case invoiceViewForm:
			return m.updateForm(msg)
		}
	}

	// Forward all non-key messages to form inputs (for cursor blink, etc.)
	if m.mode == invoiceViewForm && len(m.fields) > 0 {
		var cmd tea.Cmd
		m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *InvoicesModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.invoices) > 0 {
			m.loading = true
			return m, m.loadDetail(m.invoices[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.loading = true
		m.err = nil
		m.statusMsg = ""
		return m, m.loadDraftClients()
	}

	return m, nil
}

func (m *InvoicesModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, DefaultKeyMap.Back) {
		m.mode = invoiceViewList
		m.selected = nil
		m.err = nil
		m.loading = true
		return m, m.loadInvoices()
	}

	if m.selected == nil {
		return m, nil
	}

	// Lifecycle commands; offered only when the current status allows them
	var cmd domain.TransitionCommand
	switch msg.String() {
	case "s":
		cmd = domain.CommandMarkSent
	case "p":
		cmd = domain.CommandMarkPaid
	case "v":
		cmd = domain.CommandVoid
	default:
		return m, nil
	}

	if !m.selected.Status.Allows(cmd) {
		return m, nil
	}

	m.err = nil
	m.statusMsg = ""
	m.loading = true
	return m, m.applyTransition(m.selected, cmd)
}

func (m *InvoicesModel) updatePickClient(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewList
		m.draftClients = nil
		return m, nil
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.draftCursor > 0 {
			m.draftCursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.draftCursor < len(m.draftClients)-1 {
			m.draftCursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.draftClients) > 0 {
			return m, m.startDraft(m.draftClients[m.draftCursor])
		}
	}
	return m, nil
}

func (m *InvoicesModel) updatePickItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ledger := m.draft.Ledger
	entries := ledger.TimeEntries()
	expenses := ledger.Expenses()
	itemCount := len(entries) + len(expenses)

	switch {
	case key.Matches(msg, DefaultKeyMap.Back):
		m.mode = invoiceViewPickClient
		m.draft = nil
		m.draftClient = nil
		if len(m.draftClients) == 0 {
			m.mode = invoiceViewList
		}
		return m, nil

	case key.Matches(msg, DefaultKeyMap.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}

	case key.Matches(msg, DefaultKeyMap.Down):
		if m.itemCursor < itemCount-1 {
			m.itemCursor++
		}

	case key.Matches(msg, DefaultKeyMap.Toggle):
		if m.itemCursor < len(entries) {
			ledger.ToggleTimeEntry(entries[m.itemCursor].ID)
		} else if m.itemCursor-len(entries) < len(expenses) {
			ledger.ToggleExpense(expenses[m.itemCursor-len(entries)].ID)
		}

	case msg.String() == "a":
		// Toggle-all for the section under the cursor
		if m.itemCursor < len(entries) {
			ledger.ToggleAll(domain.ItemKindTime)
		} else {
			ledger.ToggleAll(domain.ItemKindExpense)
		}

	case key.Matches(msg, DefaultKeyMap.Select):
		if !ledger.HasSelection() {
			m.err = fmt.Errorf("select at least one item")
			return m, nil
		}
		m.err = nil
		m.initForm()
		m.mode = invoiceViewForm
		return m, m.fields[m.fieldFocus].Focus()
	}

	return m, nil
}

func (m *InvoicesModel) initForm() {
	m.fields = make([]textinput.Model, draftFieldCount)

	m.fields[draftFieldIssueDate] = textinput.New()
	m.fields[draftFieldIssueDate].Placeholder = "YYYY-MM-DD"
	m.fields[draftFieldIssueDate].CharLimit = 10
	m.fields[draftFieldIssueDate].Width = 14
	m.fields[draftFieldIssueDate].SetValue(m.draft.IssueDate.String())

	m.fields[draftFieldDueDate] = textinput.New()
	m.fields[draftFieldDueDate].Placeholder = "YYYY-MM-DD"
	m.fields[draftFieldDueDate].CharLimit = 10
	m.fields[draftFieldDueDate].Width = 14
	m.fields[draftFieldDueDate].SetValue(m.draft.DueDate.String())

	m.fields[draftFieldNotes] = textinput.New()
	m.fields[draftFieldNotes].Placeholder = "Optional notes"
	m.fields[draftFieldNotes].CharLimit = 200
	m.fields[draftFieldNotes].Width = 50
	m.fields[draftFieldNotes].SetValue(m.draft.Notes)

	m.fieldFocus = draftFieldIssueDate
}

func (m *InvoicesModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = invoiceViewPickItems
		m.err = nil
		return m, nil

	case "tab", "down":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % draftFieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "shift+tab", "up":
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus - 1 + draftFieldCount) % draftFieldCount
		return m, m.fields[m.fieldFocus].Focus()

	case "enter":
		if m.fieldFocus == draftFieldCount-1 {
			return m.submitForm()
		}
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus++
		return m, m.fields[m.fieldFocus].Focus()

	case "ctrl+s":
		return m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *InvoicesModel) submitForm() (tea.Model, tea.Cmd) {
	issue, err := domain.ParseDate(m.fields[draftFieldIssueDate].Value())
	if err != nil {
		m.err = fmt.Errorf("issue date: %w", err)
		return m, nil
	}
	due, err := domain.ParseDate(m.fields[draftFieldDueDate].Value())
	if err != nil {
		m.err = fmt.Errorf("due date: %w", err)
		return m, nil
	}
	if due.Before(issue) {
		m.err = fmt.Errorf("due date must be on or after issue date")
		return m, nil
	}

	m.draft.IssueDate = issue
	m.draft.DueDate = due
	m.draft.Notes = m.fields[draftFieldNotes].Value()

	m.err = nil
	m.loading = true
	return m, m.submitDraft()
}

func (m *InvoicesModel) View() string {
	if m.loading {
		return "Loading..."
	}

	switch m.mode {
	case invoiceViewDetail:
		return m.viewDetail()
	case invoiceViewPickClient:
		return m.viewPickClient()
	case invoiceViewPickItems:
		return m.viewPickItems()
	case invoiceViewForm:
		return m.viewForm()
	default:
		return m.viewList()
	}
}

func (m *InvoicesModel) viewList() string {
	var s string
	s += titleStyle.Render("Invoices") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.invoices) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No invoices yet. Press 'n' to build one.")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-14s  %-22s  %-14s  %-14s  %10s  %s",
		"Number", "Client", "Issued", "Due", "Total", "Status",
	)) + "\n"

	for i, inv := range m.invoices {
		line := fmt.Sprintf("  %-14s  %-22s  %-14s  %-14s  %10s  %s",
			truncateStr(inv.InvoiceNumber, 14),
			truncateStr(inv.ClientName, 22),
			inv.IssueDate.Display(),
			inv.DueDate.Display(),
			money.Format(inv.Total),
			statusBadge(inv.Status),
		)

		if i == m.cursor {
			s += selectedStyle.Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: view detail  n: new invoice")

	return s
}

func (m *InvoicesModel) viewDetail() string {
	inv := m.selected
	if inv == nil {
		return "No invoice selected"
	}

	var s string
	s += titleStyle.Render(fmt.Sprintf("Invoice %s", inv.InvoiceNumber)) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}
	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += fmt.Sprintf("  Client:   %s\n", inv.ClientName)
	s += fmt.Sprintf("  Issued:   %s\n", inv.IssueDate.Display())
	s += fmt.Sprintf("  Due:      %s\n", inv.DueDate.Display())
	if !inv.PaidDate.IsZero() {
		s += fmt.Sprintf("  Paid:     %s\n", inv.PaidDate.Display())
	}
	s += fmt.Sprintf("  Status:   %s\n", statusBadge(inv.Status))
	if inv.Notes != "" {
		s += fmt.Sprintf("  Notes:    %s\n", inv.Notes)
	}
	s += "\n"

	if len(inv.TimeEntries) == 0 && len(inv.Expenses) == 0 {
		s += subtitleStyle.Render("  No line items") + "\n"
	}

	if len(inv.TimeEntries) > 0 {
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %-14s  %-32s  %8s  %10s",
			"Date", "Description", "Hours", "Amount",
		)) + "\n"
		for _, e := range inv.TimeEntries {
			s += fmt.Sprintf("  %-14s  %-32s  %8s  %10s\n",
				e.Date.Display(),
				truncateStr(e.Description, 32),
				money.FormatHours(e.Hours),
				money.Format(e.Amount),
			)
		}
	}

	if len(inv.Expenses) > 0 {
		s += "\n" + subtitleStyle.Render("  Expenses") + "\n"
		for _, x := range inv.Expenses {
			s += fmt.Sprintf("  %-14s  %-32s  %8s  %10s\n",
				x.Date.Display(),
				truncateStr(x.Description, 32),
				"",
				money.Format(x.Amount),
			)
		}
	}

	s += "\n" + lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("  Total:     %10s", money.Format(inv.Total)),
	) + "\n"

	// Only legal actions are offered
	var actions []string
	if inv.Status.Allows(domain.CommandMarkSent) {
		actions = append(actions, "s: mark sent")
	}
	if inv.Status.Allows(domain.CommandMarkPaid) {
		actions = append(actions, "p: mark paid")
	}
	if inv.Status.Allows(domain.CommandVoid) {
		actions = append(actions, "v: void")
	}
	actions = append(actions, "esc: back")

	help := "  "
	for i, a := range actions {
		if i > 0 {
			help += "  "
		}
		help += a
	}
	s += "\n" + helpStyle.Render(help)

	return s
}

func (m *InvoicesModel) viewPickClient() string {
	var s string
	s += titleStyle.Render("New Invoice - Select Client") + "\n\n"

	for i, client := range m.draftClients {
		indicator := "  "
		if i == m.draftCursor {
			indicator = "> "
		}

		line := fmt.Sprintf("%s%-30s  %s", indicator, truncateStr(client.Name(), 30), client.Email)

		if i == m.draftCursor {
			s += lipgloss.NewStyle().Bold(true).Foreground(primaryColor).Render(line) + "\n"
		} else {
			s += line + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: select  esc: cancel")

	return s
}

func (m *InvoicesModel) viewPickItems() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("New Invoice - %s", m.draftClient.Name())) + "\n\n"

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	ledger := m.draft.Ledger
	entries := ledger.TimeEntries()
	expenses := ledger.Expenses()

	if len(entries) == 0 && len(expenses) == 0 {
		s += subtitleStyle.Render("  No unbilled work for this client") + "\n"
		s += "\n" + helpStyle.Render("  esc: back")
		return s
	}

	row := 0
	renderRow := func(checked bool, line string) {
		mark := "[ ]"
		if checked {
			mark = checkedStyle.Render("[x]")
		}
		full := fmt.Sprintf("  %s %s", mark, line)
		if row == m.itemCursor {
			s += selectedStyle.Render(full) + "\n"
		} else {
			s += full + "\n"
		}
		row++
	}

	if len(entries) > 0 {
		s += subtitleStyle.Render("  Time Entries") + "\n"
		for _, e := range entries {
			renderRow(ledger.TimeEntrySelected(e.ID), fmt.Sprintf(
				"%-14s  %-30s  %8s  %10s",
				e.Date.Display(),
				truncateStr(e.Description, 30),
				money.FormatHours(e.Hours),
				money.Format(e.Amount),
			))
		}
		s += "\n"
	}

	if len(expenses) > 0 {
		s += subtitleStyle.Render("  Expenses") + "\n"
		for _, x := range expenses {
			renderRow(ledger.ExpenseSelected(x.ID), fmt.Sprintf(
				"%-14s  %-30s  %8s  %10s",
				x.Date.Display(),
				truncateStr(x.Description, 30),
				"",
				money.Format(x.Amount),
			))
		}
		s += "\n"
	}

	// Running total is derived from the selection on every render
	s += totalStyle.Render(fmt.Sprintf("  Selected total: %s", money.Format(ledger.Total()))) + "\n"

	s += "\n" + helpStyle.Render("  space: toggle  a: toggle section  enter: continue  esc: back")

	return s
}

func (m *InvoicesModel) viewForm() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("New Invoice - %s", m.draftClient.Name())) + "\n\n"

	ledger := m.draft.Ledger
	s += fmt.Sprintf("  %d time entries, %d expenses selected  |  %s\n\n",
		len(ledger.SelectedTimeEntryIDs()),
		len(ledger.SelectedExpenseIDs()),
		money.Format(ledger.Total()),
	)

	labels := []string{"Issue Date:", "Due Date:", "Notes:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: create invoice  esc: back to items")

	return s
}
