package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/drew/praxis/internal/domain"
)

// ErrHeaderCreation marks a draft submission that failed before any
// invoice existed server-side. Retrying the whole submission is safe.
var ErrHeaderCreation = errors.New("invoice creation failed")

// ValidationError is a precondition failure detected before any network
// call is made. The form fields named in Fields need fixing.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid draft: %s", e.Reason)
	}
	return fmt.Sprintf("invalid draft: missing %s", strings.Join(e.Fields, ", "))
}

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// RejectedTransitionError is a lifecycle command refused because the
// invoice status disallows it, either locally before any call or by the
// server's authoritative guard.
type RejectedTransitionError struct {
	InvoiceID int64
	Command   domain.TransitionCommand
	Status    domain.InvoiceStatus
	Err       error // non-nil when the server rejected it
}

func (e *RejectedTransitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invoice %d: %s rejected by server: %v", e.InvoiceID, e.Command, e.Err)
	}
	return fmt.Sprintf("invoice %d: cannot %s while %s", e.InvoiceID, e.Command, e.Status)
}

func (e *RejectedTransitionError) Unwrap() error {
	return e.Err
}

// PartialCreationError reports a submission where the invoice header was
// persisted but one or both attachment calls failed. The invoice exists;
// the caller must tell the user it is missing line items rather than
// claim success. The attach endpoints treat already-attached ids as
// no-ops, so retrying the attachment manually is safe.
type PartialCreationError struct {
	InvoiceID    int64
	TimeEntryErr error
	ExpenseErr   error
}

func (e *PartialCreationError) Error() string {
	var failed []string
	if e.TimeEntryErr != nil {
		failed = append(failed, "time entries")
	}
	if e.ExpenseErr != nil {
		failed = append(failed, "expenses")
	}
	return fmt.Sprintf("invoice %d created but attaching %s failed", e.InvoiceID, strings.Join(failed, " and "))
}

func (e *PartialCreationError) Unwrap() error {
	if e.TimeEntryErr != nil {
		return e.TimeEntryErr
	}
	return e.ExpenseErr
}
