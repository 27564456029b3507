// README: Booking submission states and contact validation.
package booking

import (
	"strings"
	"time"

	"wheels/internal/types"
)

type Status string

const (
	StatusDraft      Status = "draft"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
	StatusConfirmed  Status = "confirmed"
	StatusFailed     Status = "failed"
)

// AllowedTransitions represents the submission state flow as code.
// Confirmed and Failed are terminal; a failed submission goes back through
// Draft via an explicit user retry, never automatically.
var AllowedTransitions = map[Status][]Status{
	StatusDraft:      {StatusValidating},
	StatusValidating: {StatusDraft, StatusSubmitting},
	StatusSubmitting: {StatusConfirmed, StatusFailed},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Contact holds the details collected on the final booking page.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ScrubPhone drops every non-digit character, mirroring the widget's
// as-you-type input scrubbing.
func ScrubPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c Contact) Validate() []types.FieldError {
	var errs []types.FieldError
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, types.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, types.FieldError{Field: "email", Message: "email is required"})
	}
	if len(ScrubPhone(c.Phone)) != 10 {
		errs = append(errs, types.FieldError{Field: "phone", Message: "phone must be exactly 10 digits"})
	}
	return errs
}

// Result is the terminal outcome of a submission attempt.
type Result struct {
	Status      Status             `json:"status"`
	BookingID   string             `json:"booking_id,omitempty"`
	Message     string             `json:"message,omitempty"`
	FieldErrors []types.FieldError `json:"field_errors,omitempty"`
}

// Event records one state transition of a submission, kept for diagnostics.
type Event struct {
	ProfileID  string
	FromStatus Status
	ToStatus   Status
	BookingID  *string
	Detail     string
	CreatedAt  time.Time
}
