package domain

import "testing"

func TestStatusAllows(t *testing.T) {
	tests := []struct {
		status InvoiceStatus
		cmd    TransitionCommand
		want   bool
	}{
		{InvoiceStatusDraft, CommandMarkSent, true},
		{InvoiceStatusSent, CommandMarkSent, false},
		{InvoiceStatusOverdue, CommandMarkSent, false},

		{InvoiceStatusSent, CommandMarkPaid, true},
		{InvoiceStatusOverdue, CommandMarkPaid, true},
		{InvoiceStatusDraft, CommandMarkPaid, false},
		{InvoiceStatusPaid, CommandMarkPaid, false},

		{InvoiceStatusDraft, CommandVoid, true},
		{InvoiceStatusSent, CommandVoid, true},
		{InvoiceStatusOverdue, CommandVoid, true},
		{InvoiceStatusPaid, CommandVoid, false},
		{InvoiceStatusVoid, CommandVoid, false},

		{InvoiceStatusSent, TransitionCommand("bogus"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Allows(tt.cmd); got != tt.want {
			t.Errorf("%s.Allows(%s) = %v, want %v", tt.status, tt.cmd, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusVoid} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		if len(s.Commands()) != 0 {
			t.Errorf("%s should allow no commands, got %v", s, s.Commands())
		}
	}
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusOverdue} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
