package member

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Payment status constants (the backend's values, verbatim).
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// Domain errors
var (
	ErrEmptyName          = errors.New("member name cannot be empty")
	ErrEmptyUsername      = errors.New("member username cannot be empty")
	ErrInvalidEmail       = errors.New("member email must contain '@'")
	ErrInvalidPayment     = errors.New("payment status must be 'Paid' or 'Unpaid'")
	ErrNegativeAttendance = errors.New("attendance cannot be negative")
	ErrEmptyPassword      = errors.New("password is required for a new member")
)

// TrainerRef is the assigned-trainer summary embedded in a member record.
type TrainerRef struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

// Record is a member as the backend returns it. The backend owns these
// entities; this side only holds cached copies and never assigns IDs.
type Record struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Plan            string      `json:"plan"`
	PaymentStatus   string      `json:"paymentStatus"`
	Attendance      int         `json:"attendance"`
	AssignedTrainer *TrainerRef `json:"assignedTrainer"`
}

// TrainerName returns the assigned trainer's name, or "N/A" when unassigned.
// INVARIANT: Record fields are not mutated
func (r *Record) TrainerName() string {
	if r.AssignedTrainer == nil {
		return "N/A"
	}
	return r.AssignedTrainer.Name
}

// IsPaid returns true if the member's fees are settled.
// INVARIANT: Record fields are not mutated
func (r *Record) IsPaid() bool {
	return r.PaymentStatus == PaymentPaid
}

// Payload is the create/update body sent to the backend. AssignedTrainer
// carries a trainer ID, or nil for "none". Password is present only when
// creating; edits never resubmit it.
type Payload struct {
	Name            string  `json:"name"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	Plan            string  `json:"plan"`
	PaymentStatus   string  `json:"paymentStatus"`
	Attendance      int     `json:"attendance"`
	AssignedTrainer *string `json:"assignedTrainer"`
	Password        string  `json:"password,omitempty"`
}

// Validate checks the payload before it is dispatched upstream.
// PRE: Payload is populated from the submitted form
// POST: Returns nil if valid, a domain error otherwise
func (p *Payload) Validate(creating bool) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("member name cannot exceed 100 characters")
	}
	if strings.TrimSpace(p.Username) == "" {
		return ErrEmptyUsername
	}
	if !strings.Contains(p.Email, "@") {
		return ErrInvalidEmail
	}
	if p.PaymentStatus != PaymentPaid && p.PaymentStatus != PaymentUnpaid {
		return ErrInvalidPayment
	}
	if p.Attendance < 0 {
		return ErrNegativeAttendance
	}
	if creating && p.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
