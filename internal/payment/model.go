// Package payment provides the rent payment domain model.
package payment

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rentkit/rentkit/internal/money"
)

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Status is the caller-driven payment state. It is never derived from
// the due date automatically; marking a payment overdue is a user action.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Statuses lists every payment status in display order.
var Statuses = []Status{StatusPending, StatusPaid, StatusOverdue}

// ValidStatus returns true if s is a known payment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// Payment represents a rent payment due from a tenant for a property.
// PropertyID and TenantID are unenforced references and may dangle.
type Payment struct {
	ID         string         `json:"id"`
	PropertyID string         `json:"propertyId"`
	TenantID   string         `json:"tenantId"`
	Amount     float64        `json:"amount" validate:"gte=0"`
	Currency   money.Currency `json:"currency" validate:"required,oneof=USD EUR EGP"`
	DueDate    string         `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Status     Status         `json:"status" validate:"required,oneof=pending paid overdue"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UserID     string         `json:"user_id"`
}

var validate = validator.New()

// Validate checks the payment's fields against the model constraints.
func (p *Payment) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid payment: %w", err)
	}
	return nil
}

// EntityID returns the payment's identifier.
func (p *Payment) EntityID() string { return p.ID }

// SetIdentity stamps the identifier, owner, and creation time.
func (p *Payment) SetIdentity(id, owner string, createdAt time.Time) {
	p.ID = id
	p.UserID = owner
	p.CreatedAt = createdAt
}

// DueIn reports whether the payment's due date falls inside the calendar
// month containing month. Payments with unparseable due dates never match.
func (p *Payment) DueIn(month time.Time) bool {
	due, err := time.Parse(DateLayout, p.DueDate)
	if err != nil {
		return false
	}
	return due.Year() == month.Year() && due.Month() == month.Month()
}
