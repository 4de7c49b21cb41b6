package trainer

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Domain errors
var (
	ErrEmptyName            = errors.New("trainer name cannot be empty")
	ErrEmptyUsername        = errors.New("trainer username cannot be empty")
	ErrEmptySpecialization  = errors.New("trainer specialization cannot be empty")
	ErrNegativeExperience   = errors.New("experience cannot be negative")
	ErrNegativeAttendance   = errors.New("attendance cannot be negative")
	ErrEmptyPassword        = errors.New("password is required for a new trainer")
)

// MemberRef is the member summary listed under a trainer's assigned members.
type MemberRef struct {
	Name       string `json:"name"`
	Plan       string `json:"plan"`
	Attendance int    `json:"attendance"`
}

// Record is a trainer as the backend returns it. AssignedMembers preserves
// the backend's ordering; no client-side sorting is applied.
type Record struct {
	ID              string      `json:"_id"`
	Name            string      `json:"name"`
	Username        string      `json:"username"`
	Specialization  string      `json:"specialization"`
	Experience      int         `json:"experience"`
	Phone           string      `json:"phone"`
	Attendance      int         `json:"attendance"`
	AssignedMembers []MemberRef `json:"assignedMembers"`
}

// Payload is the create/update body sent to the backend. Password is present
// only when creating.
type Payload struct {
	Name           string `json:"name"`
	Username       string `json:"username"`
	Specialization string `json:"specialization"`
	Experience     int    `json:"experience"`
	Phone          string `json:"phone"`
	Attendance     int    `json:"attendance"`
	Password       string `json:"password,omitempty"`
}

// Validate checks the payload before it is dispatched upstream.
// PRE: Payload is populated from the submitted form
// POST: Returns nil if valid, a domain error otherwise
func (p *Payload) Validate(creating bool) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if len(p.Name) > MaxNameLength {
		return errors.New("trainer name cannot exceed 100 characters")
	}
	if strings.TrimSpace(p.Username) == "" {
		return ErrEmptyUsername
	}
	if strings.TrimSpace(p.Specialization) == "" {
		return ErrEmptySpecialization
	}
	if p.Experience < 0 {
		return ErrNegativeExperience
	}
	if p.Attendance < 0 {
		return ErrNegativeAttendance
	}
	if creating && p.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}
