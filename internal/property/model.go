// Package property provides the rental property domain model.
package property

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rentkit/rentkit/internal/money"
)

// Type categorizes a rental property.
type Type string

const (
	TypeApartment Type = "apartment"
	TypeHouse     Type = "house"
	TypeStudio    Type = "studio"
	TypeCondo     Type = "condo"
	TypeTownhouse Type = "townhouse"
)

// Types lists every property type in display order.
var Types = []Type{TypeApartment, TypeHouse, TypeStudio, TypeCondo, TypeTownhouse}

// ValidType returns true if s is a known property type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeApartment, TypeHouse, TypeStudio, TypeCondo, TypeTownhouse:
		return true
	}
	return false
}

// Property represents a managed rental unit.
type Property struct {
	ID          string         `json:"id"`
	Name        string         `json:"name" validate:"required"`
	Location    string         `json:"location"`
	City        string         `json:"city"`
	Address     string         `json:"address"`
	Type        Type           `json:"type" validate:"required,oneof=apartment house studio condo townhouse"`
	Bedrooms    int            `json:"bedrooms" validate:"gte=0"`
	Bathrooms   float64        `json:"bathrooms" validate:"gte=0"`
	Rent        float64        `json:"rent" validate:"gte=0"`
	Currency    money.Currency `json:"currency" validate:"required,oneof=USD EUR EGP"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UserID      string         `json:"user_id"`
}

var validate = validator.New()

// Validate checks the property's fields against the model constraints.
func (p *Property) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid property: %w", err)
	}
	return nil
}

// EntityID returns the property's identifier.
func (p *Property) EntityID() string { return p.ID }

// SetIdentity stamps the identifier, owner, and creation time.
// Called exactly once, when the record is first added.
func (p *Property) SetIdentity(id, owner string, createdAt time.Time) {
	p.ID = id
	p.UserID = owner
	p.CreatedAt = createdAt
}
