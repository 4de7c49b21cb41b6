package member

import (
	"errors"
	"strings"
	"testing"
)

func validPayload() Payload {
	return Payload{
		Name:          "Ravi Kumar",
		Username:      "ravi",
		Email:         "ravi@example.com",
		Phone:         "9876543210",
		Plan:          "Premium",
		PaymentStatus: PaymentPaid,
		Attendance:    12,
		Password:      "secret123",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Payload)
		creating bool
		wantErr  error
	}{
		{"valid create", func(p *Payload) {}, true, nil},
		{"valid update without password", func(p *Payload) { p.Password = "" }, false, nil},
		{"empty name", func(p *Payload) { p.Name = "  " }, true, ErrEmptyName},
		{"empty username", func(p *Payload) { p.Username = "" }, true, ErrEmptyUsername},
		{"bad email", func(p *Payload) { p.Email = "not-an-email" }, true, ErrInvalidEmail},
		{"bad payment status", func(p *Payload) { p.PaymentStatus = "pending" }, true, ErrInvalidPayment},
		{"negative attendance", func(p *Payload) { p.Attendance = -1 }, true, ErrNegativeAttendance},
		{"missing password on create", func(p *Payload) { p.Password = "" }, true, ErrEmptyPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)
			err := p.Validate(tt.creating)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNameLength(t *testing.T) {
	p := validPayload()
	p.Name = strings.Repeat("x", MaxNameLength+1)
	if err := p.Validate(true); err == nil {
		t.Error("over-length name should fail validation")
	}
	p.Name = strings.Repeat("x", MaxNameLength)
	if err := p.Validate(true); err != nil {
		t.Errorf("name at the limit should pass, got %v", err)
	}
}

func TestTrainerName(t *testing.T) {
	r := Record{Name: "Ravi"}
	if got := r.TrainerName(); got != "N/A" {
		t.Errorf("got %q, want N/A for unassigned member", got)
	}
	r.AssignedTrainer = &TrainerRef{ID: "t1", Name: "Anil"}
	if got := r.TrainerName(); got != "Anil" {
		t.Errorf("got %q, want Anil", got)
	}
}

func TestIsPaid(t *testing.T) {
	r := Record{PaymentStatus: PaymentPaid}
	if !r.IsPaid() {
		t.Error("Paid record should report paid")
	}
	r.PaymentStatus = PaymentUnpaid
	if r.IsPaid() {
		t.Error("Unpaid record should not report paid")
	}
	r.PaymentStatus = "paid"
	if r.IsPaid() {
		t.Error("status comparison is case-sensitive; lowercase is not paid")
	}
}
