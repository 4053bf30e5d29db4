package domain

import "github.com/drew/praxis/internal/money"

// TimeEntry is a billable time record owned by the backend. From the
// client's perspective it is immutable; only its invoice association
// changes server-side when it is attached to an invoice.
type TimeEntry struct {
	ID          int64        `json:"id"`
	CaseID      int64        `json:"case"`
	CaseTitle   string       `json:"case_title,omitempty"`
	StaffID     int64        `json:"staff"`
	StaffName   string       `json:"staff_name,omitempty"`
	Date        Date         `json:"date"`
	Description string       `json:"description"`
	Hours       float64      `json:"hours"`
	Rate        money.Amount `json:"rate"`
	Amount      money.Amount `json:"amount"`
	Billable    bool         `json:"billable"`
	Invoiced    bool         `json:"invoiced"`
	InvoiceID   *int64       `json:"invoice,omitempty"`
}

// Unbilled reports whether the entry is eligible for a new invoice.
func (e *TimeEntry) Unbilled() bool {
	return e.Billable && !e.Invoiced
}
