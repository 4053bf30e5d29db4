package domain

import "github.com/drew/praxis/internal/money"

type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusSent    InvoiceStatus = "sent"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusOverdue InvoiceStatus = "overdue"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// TransitionCommand is a named lifecycle command issued against an invoice.
type TransitionCommand string

const (
	CommandMarkSent TransitionCommand = "mark_sent"
	CommandMarkPaid TransitionCommand = "mark_paid"
	CommandVoid     TransitionCommand = "void"
)

// Invoice is the server-owned persisted invoice. Total and status are
// authoritative on the server; after any mutation the client re-fetches
// rather than patching local fields.
type Invoice struct {
	ID            int64         `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	ClientID      int64         `json:"client"`
	ClientName    string        `json:"client_name,omitempty"`
	IssueDate     Date          `json:"issue_date"`
	DueDate       Date          `json:"due_date"`
	Notes         string        `json:"notes,omitempty"`
	Status        InvoiceStatus `json:"status"`
	Total         money.Amount  `json:"total_amount"`
	PaidDate      Date          `json:"paid_date,omitempty"`

	// Attached items, populated on detail fetches
	TimeEntries []*TimeEntry `json:"time_entries,omitempty"`
	Expenses    []*Expense   `json:"expenses,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusVoid
}

// Allows reports whether cmd is a legal transition from this status.
// The server enforces the same guards; this check exists so illegal
// commands are rejected before any network call.
func (s InvoiceStatus) Allows(cmd TransitionCommand) bool {
	switch cmd {
	case CommandMarkSent:
		return s == InvoiceStatusDraft
	case CommandMarkPaid:
		// overdue is server-derived from the due date and behaves like sent
		return s == InvoiceStatusSent || s == InvoiceStatusOverdue
	case CommandVoid:
		return !s.IsTerminal()
	default:
		return false
	}
}

// Commands returns the transition commands legal from this status.
func (s InvoiceStatus) Commands() []TransitionCommand {
	var cmds []TransitionCommand
	for _, cmd := range []TransitionCommand{CommandMarkSent, CommandMarkPaid, CommandVoid} {
		if s.Allows(cmd) {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

// ItemTotal sums the attached time entry and expense amounts. Display
// only; the server's Total is the authoritative figure.
func (i *Invoice) ItemTotal() money.Amount {
	total := money.Zero
	for _, e := range i.TimeEntries {
		total = total.Add(e.Amount)
	}
	for _, x := range i.Expenses {
		total = total.Add(x.Amount)
	}
	return total
}
