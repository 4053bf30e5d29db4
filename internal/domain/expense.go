package domain

import "github.com/drew/praxis/internal/money"

// Expense is a billable case expense owned by the backend. Like TimeEntry,
// only its invoice association is ever mutated, and only server-side.
type Expense struct {
	ID          int64        `json:"id"`
	CaseID      int64        `json:"case"`
	CaseTitle   string       `json:"case_title,omitempty"`
	Date        Date         `json:"date"`
	Description string       `json:"description"`
	Amount      money.Amount `json:"amount"`
	Billable    bool         `json:"billable"`
	Invoiced    bool         `json:"invoiced"`
	InvoiceID   *int64       `json:"invoice,omitempty"`
}

// Unbilled reports whether the expense is eligible for a new invoice.
func (e *Expense) Unbilled() bool {
	return e.Billable && !e.Invoiced
}
