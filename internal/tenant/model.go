// Package tenant provides the tenant domain model.
package tenant

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the wire format for lease dates.
const DateLayout = "2006-01-02"

// Tenant represents a person leasing a property.
// PropertyID references a Property by identifier; the reference is not
// enforced for existence and may dangle after a property is deleted.
type Tenant struct {
	ID              string    `json:"id"`
	FullName        string    `json:"fullName" validate:"required"`
	Email           string    `json:"email" validate:"omitempty,email"`
	Phone           string    `json:"phone"`
	PropertyID      string    `json:"propertyId"`
	LeaseStart      string    `json:"leaseStart" validate:"omitempty,datetime=2006-01-02"`
	LeaseEnd        string    `json:"leaseEnd" validate:"omitempty,datetime=2006-01-02"`
	DoorCode        string    `json:"doorCode,omitempty"`
	SpecialRequests string    `json:"specialRequests,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UserID          string    `json:"user_id"`
}

var validate = validator.New()

// Validate checks the tenant's fields against the model constraints.
// Lease ordering (start before end) is expected but deliberately not enforced.
func (t *Tenant) Validate() error {
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("invalid tenant: %w", err)
	}
	return nil
}

// EntityID returns the tenant's identifier.
func (t *Tenant) EntityID() string { return t.ID }

// SetIdentity stamps the identifier, owner, and creation time.
func (t *Tenant) SetIdentity(id, owner string, createdAt time.Time) {
	t.ID = id
	t.UserID = owner
	t.CreatedAt = createdAt
}

// LeaseActiveOn reports whether the lease interval covers the given day.
// Tenants with unparseable lease dates are never active.
func (t *Tenant) LeaseActiveOn(day time.Time) bool {
	start, err := time.Parse(DateLayout, t.LeaseStart)
	if err != nil {
		return false
	}
	end, err := time.Parse(DateLayout, t.LeaseEnd)
	if err != nil {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// LeaseActive reports whether the lease is still running at the given time.
func (t *Tenant) LeaseActive(now time.Time) bool {
	end, err := time.Parse(DateLayout, t.LeaseEnd)
	if err != nil {
		return false
	}
	return end.After(now)
}
