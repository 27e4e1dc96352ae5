// Package comment provides the tenant comment domain model.
package comment

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Comment is a free-text note about a tenant at a property. Both
// references are unenforced and may dangle.
type Comment struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenantId"`
	PropertyID string    `json:"propertyId"`
	Text       string    `json:"text" validate:"required"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
}

var validate = validator.New()

// Validate checks the comment's fields against the model constraints.
func (c *Comment) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid comment: %w", err)
	}
	return nil
}

// EntityID returns the comment's identifier.
func (c *Comment) EntityID() string { return c.ID }

// SetIdentity stamps the identifier, owner, and creation time.
func (c *Comment) SetIdentity(id, owner string, createdAt time.Time) {
	c.ID = id
	c.UserID = owner
	c.CreatedAt = createdAt
}

// CreatedIn reports whether the comment was created inside the calendar
// month containing month.
func (c *Comment) CreatedIn(month time.Time) bool {
	return c.CreatedAt.Year() == month.Year() && c.CreatedAt.Month() == month.Month()
}
