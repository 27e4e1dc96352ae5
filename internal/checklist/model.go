// Package checklist provides the checklist domain model and task helpers.
package checklist

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Task is a single ordered item inside a checklist.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewTask creates a task with a fresh identifier.
func NewTask(text string) Task {
	return Task{ID: uuid.NewString(), Text: text}
}

// Checklist is an ordered list of tasks, optionally tied to a property.
// A checklist with no property association is a template, reusable as a
// starting point for new checklists.
type Checklist struct {
	ID         string    `json:"id"`
	Name       string    `json:"name" validate:"required"`
	PropertyID string    `json:"propertyId"`
	IsTemplate bool      `json:"isTemplate"`
	Tasks      []Task    `json:"tasks"`
	CreatedAt  time.Time `json:"created_at"`
	UserID     string    `json:"user_id"`
}

var validate = validator.New()

// Validate checks the checklist's fields against the model constraints.
func (c *Checklist) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid checklist: %w", err)
	}
	return nil
}

// EntityID returns the checklist's identifier.
func (c *Checklist) EntityID() string { return c.ID }

// SetIdentity stamps the identifier, owner, and creation time.
func (c *Checklist) SetIdentity(id, owner string, createdAt time.Time) {
	c.ID = id
	c.UserID = owner
	c.CreatedAt = createdAt
}

// ToggledTasks returns a copy of the task list with the named task's
// completed flag inverted. The second return is false if no task matched.
func (c *Checklist) ToggledTasks(taskID string) ([]Task, bool) {
	found := false
	tasks := make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		if t.ID == taskID {
			t.Completed = !t.Completed
			found = true
		}
		tasks[i] = t
	}
	return tasks, found
}

// Progress returns the number of completed tasks and the total task count.
func (c *Checklist) Progress() (done, total int) {
	for _, t := range c.Tasks {
		if t.Completed {
			done++
		}
	}
	return done, len(c.Tasks)
}

// Duplicate returns a copy of the checklist ready to be added as a new
// record: suffixed name, fresh task identifiers, all completion flags
// reset. The property and template associations are copied verbatim; the
// copy carries no identity of its own until it is added.
func Duplicate(c *Checklist) *Checklist {
	tasks := make([]Task, len(c.Tasks))
	for i, t := range c.Tasks {
		tasks[i] = Task{ID: uuid.NewString(), Text: t.Text}
	}
	return &Checklist{
		Name:       c.Name + " (Copy)",
		PropertyID: c.PropertyID,
		IsTemplate: c.IsTemplate,
		Tasks:      tasks,
	}
}
