package comment

import (
	"testing"
	"time"
)

func TestCreatedIn(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{"same month", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), true},
		{"previous month", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
		{"same month other year", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), false},
		{"zero time", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comment{CreatedAt: tt.created}
			if got := c.CreatedIn(march); got != tt.want {
				t.Errorf("CreatedIn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (&Comment{Text: "Paid late"}).Validate(); err != nil {
		t.Errorf("valid comment rejected: %v", err)
	}
	if err := (&Comment{}).Validate(); err == nil {
		t.Error("textless comment accepted")
	}
}
