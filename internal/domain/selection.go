package domain

import "github.com/drew/praxis/internal/money"

// ItemKind distinguishes the two kinds of unbilled candidates.
type ItemKind string

const (
	ItemKindTime    ItemKind = "time"
	ItemKindExpense ItemKind = "expense"
)

// SelectionLedger tracks which unbilled items are chosen for an invoice
// draft and derives the running total from the selected subset. It holds
// the candidate lists loaded for the active client; selections are always
// a subset of those candidates.
type SelectionLedger struct {
	timeEntries []*TimeEntry
	expenses    []*Expense

	selectedTime     map[int64]bool
	selectedExpenses map[int64]bool
}

// NewSelectionLedger creates an empty ledger.
func NewSelectionLedger() *SelectionLedger {
	return &SelectionLedger{
		selectedTime:     make(map[int64]bool),
		selectedExpenses: make(map[int64]bool),
	}
}

// SetCandidates replaces both candidate lists. Selections of ids no longer
// present are dropped so the selection stays a subset of the candidates.
func (l *SelectionLedger) SetCandidates(entries []*TimeEntry, expenses []*Expense) {
	l.timeEntries = entries
	l.expenses = expenses

	keep := make(map[int64]bool)
	for _, e := range entries {
		if l.selectedTime[e.ID] {
			keep[e.ID] = true
		}
	}
	l.selectedTime = keep

	keepX := make(map[int64]bool)
	for _, x := range expenses {
		if l.selectedExpenses[x.ID] {
			keepX[x.ID] = true
		}
	}
	l.selectedExpenses = keepX
}

// TimeEntries returns the loaded time entry candidates.
func (l *SelectionLedger) TimeEntries() []*TimeEntry { return l.timeEntries }

// Expenses returns the loaded expense candidates.
func (l *SelectionLedger) Expenses() []*Expense { return l.expenses }

// ToggleTimeEntry flips membership of id in the selected time entry set.
func (l *SelectionLedger) ToggleTimeEntry(id int64) {
	if l.selectedTime[id] {
		delete(l.selectedTime, id)
	} else {
		l.selectedTime[id] = true
	}
}

// ToggleExpense flips membership of id in the selected expense set.
func (l *SelectionLedger) ToggleExpense(id int64) {
	if l.selectedExpenses[id] {
		delete(l.selectedExpenses, id)
	} else {
		l.selectedExpenses[id] = true
	}
}

// TimeEntrySelected reports whether the time entry id is selected.
func (l *SelectionLedger) TimeEntrySelected(id int64) bool { return l.selectedTime[id] }

// ExpenseSelected reports whether the expense id is selected.
func (l *SelectionLedger) ExpenseSelected(id int64) bool { return l.selectedExpenses[id] }

// SelectAll selects every candidate of the given kind.
func (l *SelectionLedger) SelectAll(kind ItemKind) {
	switch kind {
	case ItemKindTime:
		for _, e := range l.timeEntries {
			l.selectedTime[e.ID] = true
		}
	case ItemKindExpense:
		for _, x := range l.expenses {
			l.selectedExpenses[x.ID] = true
		}
	}
}

// DeselectAll clears the selected set of the given kind.
func (l *SelectionLedger) DeselectAll(kind ItemKind) {
	switch kind {
	case ItemKindTime:
		l.selectedTime = make(map[int64]bool)
	case ItemKindExpense:
		l.selectedExpenses = make(map[int64]bool)
	}
}

// ToggleAll alternates between the full set and the empty set: if every
// candidate of the kind is already selected it deselects all, otherwise
// it selects all. Repeated calls therefore alternate all/none rather
// than staying at "all".
func (l *SelectionLedger) ToggleAll(kind ItemKind) {
	if l.allSelected(kind) {
		l.DeselectAll(kind)
	} else {
		l.SelectAll(kind)
	}
}

func (l *SelectionLedger) allSelected(kind ItemKind) bool {
	switch kind {
	case ItemKindTime:
		if len(l.timeEntries) == 0 {
			return false
		}
		for _, e := range l.timeEntries {
			if !l.selectedTime[e.ID] {
				return false
			}
		}
		return true
	case ItemKindExpense:
		if len(l.expenses) == 0 {
			return false
		}
		for _, x := range l.expenses {
			if !l.selectedExpenses[x.ID] {
				return false
			}
		}
		return true
	}
	return false
}

// SelectedTimeEntryIDs returns the selected time entry ids in candidate order.
func (l *SelectionLedger) SelectedTimeEntryIDs() []int64 {
	ids := make([]int64, 0, len(l.selectedTime))
	for _, e := range l.timeEntries {
		if l.selectedTime[e.ID] {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// SelectedExpenseIDs returns the selected expense ids in candidate order.
func (l *SelectionLedger) SelectedExpenseIDs() []int64 {
	ids := make([]int64, 0, len(l.selectedExpenses))
	for _, x := range l.expenses {
		if l.selectedExpenses[x.ID] {
			ids = append(ids, x.ID)
		}
	}
	return ids
}

// HasSelection reports whether at least one item of either kind is selected.
func (l *SelectionLedger) HasSelection() bool {
	return len(l.selectedTime) > 0 || len(l.selectedExpenses) > 0
}

// Total derives the running total from the selected subset. It is computed
// from the candidate lists on every call, never cached, so it cannot go
// stale across toggles or candidate replacement. Advisory only; the
// server's invoice total is authoritative.
func (l *SelectionLedger) Total() money.Amount {
	total := money.Zero
	for _, e := range l.timeEntries {
		if l.selectedTime[e.ID] {
			total = total.Add(e.Amount)
		}
	}
	for _, x := range l.expenses {
		if l.selectedExpenses[x.ID] {
			total = total.Add(x.Amount)
		}
	}
	return total
}

// Reset clears both selected sets. Called when the active client changes,
// since candidate lists are client-scoped.
func (l *SelectionLedger) Reset() {
	l.selectedTime = make(map[int64]bool)
	l.selectedExpenses = make(map[int64]bool)
}
