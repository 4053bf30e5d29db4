package tui

import "github.com/drew/praxis/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// StartDraftMsg tells the invoices screen to begin a draft for a client
type StartDraftMsg struct {
	Client *domain.Client
}

// authCheckMsg reports whether an API token is stored
type authCheckMsg struct {
	hasToken bool
}
