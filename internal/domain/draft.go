package domain

// InvoiceDraft is the client-local invoice-in-progress: header fields plus
// the selection ledger. It exists only in memory until submission succeeds
// (replaced by the persisted Invoice) or the user abandons it.
type InvoiceDraft struct {
	ClientID  int64
	IssueDate Date
	DueDate   Date
	Notes     string
	Ledger    *SelectionLedger
}

// NewInvoiceDraft creates a draft with an empty ledger, issued today and
// due after the given number of days.
func NewInvoiceDraft(dueDays int) *InvoiceDraft {
	if dueDays <= 0 {
		dueDays = 30
	}
	issue := Today()
	return &InvoiceDraft{
		IssueDate: issue,
		DueDate:   issue.AddDays(dueDays),
		Ledger:    NewSelectionLedger(),
	}
}

// SetClient switches the draft to a different client. Selections are
// cleared because candidate lists are client-scoped.
func (d *InvoiceDraft) SetClient(clientID int64) {
	if d.ClientID != clientID {
		d.ClientID = clientID
		d.Ledger.Reset()
	}
}
