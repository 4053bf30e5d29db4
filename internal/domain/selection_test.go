package domain

import (
	"testing"

	"github.com/drew/praxis/internal/money"
)

func testCandidates() ([]*TimeEntry, []*Expense) {
	entries := []*TimeEntry{
		{ID: 1, Amount: money.MustNew("100.00"), Billable: true},
		{ID: 2, Amount: money.MustNew("50.25"), Billable: true},
		{ID: 3, Amount: money.MustNew("75.00"), Billable: true},
	}
	expenses := []*Expense{
		{ID: 10, Amount: money.MustNew("12.75"), Billable: true},
		{ID: 11, Amount: money.MustNew("8.00"), Billable: true},
	}
	return entries, expenses
}

func TestTotal_SubsetSum(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.ToggleTimeEntry(1)
	l.ToggleTimeEntry(2)
	l.ToggleExpense(10)

	if got := l.Total(); got.String() != "163.00" {
		t.Errorf("expected total 163.00, got %s", got.String())
	}
}

func TestTotal_OrderIndependent(t *testing.T) {
	entries, expenses := testCandidates()

	a := NewSelectionLedger()
	a.SetCandidates(entries, expenses)
	a.ToggleTimeEntry(2)
	a.ToggleExpense(11)
	a.ToggleTimeEntry(1)

	b := NewSelectionLedger()
	b.SetCandidates(entries, expenses)
	b.ToggleExpense(11)
	b.ToggleTimeEntry(1)
	b.ToggleTimeEntry(2)

	if !a.Total().Equal(b.Total()) {
		t.Errorf("totals differ by toggle order: %s vs %s", a.Total(), b.Total())
	}
}

func TestToggle_Involution(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.ToggleTimeEntry(1)
	before := l.Total()

	l.ToggleTimeEntry(3)
	l.ToggleTimeEntry(3)

	if l.TimeEntrySelected(3) {
		t.Error("entry 3 should be deselected after double toggle")
	}
	if !l.Total().Equal(before) {
		t.Errorf("total changed after double toggle: %s vs %s", before, l.Total())
	}
}

func TestToggleAll_Alternates(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.ToggleAll(ItemKindTime)
	if len(l.SelectedTimeEntryIDs()) != 3 {
		t.Fatalf("expected all 3 entries selected, got %d", len(l.SelectedTimeEntryIDs()))
	}

	// A second call must deselect everything, not stay at "all"
	l.ToggleAll(ItemKindTime)
	if len(l.SelectedTimeEntryIDs()) != 0 {
		t.Fatalf("expected empty selection after second toggle-all, got %d", len(l.SelectedTimeEntryIDs()))
	}
	if !l.Total().IsZero() {
		t.Errorf("expected zero total, got %s", l.Total())
	}
}

func TestToggleAll_PartialSelectsAll(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.ToggleExpense(10)
	l.ToggleAll(ItemKindExpense)

	if len(l.SelectedExpenseIDs()) != 2 {
		t.Errorf("expected all expenses selected from partial state, got %d", len(l.SelectedExpenseIDs()))
	}
}

func TestSelectAll_Idempotent(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.SelectAll(ItemKindTime)
	l.SelectAll(ItemKindTime)

	if len(l.SelectedTimeEntryIDs()) != 3 {
		t.Errorf("expected all entries still selected, got %d", len(l.SelectedTimeEntryIDs()))
	}

	l.DeselectAll(ItemKindTime)
	l.DeselectAll(ItemKindTime)
	if l.HasSelection() {
		t.Error("expected no selection after deselect-all")
	}
}

func TestSetCandidates_PrunesVanishedIDs(t *testing.T) {
	l := NewSelectionLedger()
	entries, expenses := testCandidates()
	l.SetCandidates(entries, expenses)

	l.ToggleTimeEntry(1)
	l.ToggleTimeEntry(3)
	l.ToggleExpense(10)

	// Entry 3 and expense 10 disappear from the reloaded lists
	l.SetCandidates(entries[:2], expenses[1:])

	if l.TimeEntrySelected(3) {
		t.Error("selection of vanished entry 3 should be dropped")
	}
	if l.ExpenseSelected(10) {
		t.Error("selection of vanished expense 10 should be dropped")
	}
	if !l.TimeEntrySelected(1) {
		t.Error("selection of surviving entry 1 should be kept")
	}
	if got := l.Total(); got.String() != "100.00" {
		t.Errorf("expected total 100.00 after prune, got %s", got)
	}
}

func TestDraftSetClient_ResetsSelection(t *testing.T) {
	d := NewInvoiceDraft(30)
	entries, expenses := testCandidates()
	d.Ledger.SetCandidates(entries, expenses)
	d.SetClient(7)

	d.Ledger.ToggleTimeEntry(1)
	d.Ledger.ToggleExpense(10)

	d.SetClient(8)

	if d.Ledger.HasSelection() {
		t.Error("changing client must clear the selection")
	}
	if !d.Ledger.Total().IsZero() {
		t.Errorf("expected zero total after client change, got %s", d.Ledger.Total())
	}

	// Re-setting the same client is a no-op
	d.Ledger.ToggleTimeEntry(1)
	d.SetClient(8)
	if !d.Ledger.HasSelection() {
		t.Error("setting the same client must not clear the selection")
	}
}
