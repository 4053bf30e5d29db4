package domain

import "strings"

// Client is a practice client as returned by the backend. Clients are
// referenced by drafts and invoices, never mutated from this side.
type Client struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Name returns the display name, with a placeholder for incomplete records.
func (c *Client) Name() string {
	if strings.TrimSpace(c.DisplayName) == "" {
		return "(unnamed client)"
	}
	return c.DisplayName
}
