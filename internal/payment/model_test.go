package payment

import (
	"testing"
	"time"

	"github.com/rentkit/rentkit/internal/money"
)

func TestDueIn(t *testing.T) {
	march := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  string
		want bool
	}{
		{"first of month", "2024-03-01", true},
		{"last of month", "2024-03-31", true},
		{"previous month", "2024-02-29", false},
		{"next month", "2024-04-01", false},
		{"same month other year", "2023-03-15", false},
		{"unparseable", "soon", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Payment{DueDate: tt.due}
			if got := p.DueIn(march); got != tt.want {
				t.Errorf("DueIn(%q) = %v, want %v", tt.due, got, tt.want)
			}
		})
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(string(s)) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "late", "PAID"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		payment Payment
		wantErr bool
	}{
		{"valid", Payment{Amount: 500, Currency: money.USD, Status: StatusPending, DueDate: "2024-03-01"}, false},
		{"zero amount", Payment{Currency: money.USD, Status: StatusPaid}, false},
		{"negative amount", Payment{Amount: -1, Currency: money.USD, Status: StatusPending}, true},
		{"missing currency", Payment{Amount: 500, Status: StatusPending}, true},
		{"unknown status", Payment{Amount: 500, Currency: money.USD, Status: "late"}, true},
		{"bad due date", Payment{Amount: 500, Currency: money.USD, Status: StatusPending, DueDate: "tomorrow"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
