// Package report produces read-only aggregations over entity snapshots:
// dashboard metrics, calendar occupancy, and exported PDF/XLSX reports.
// Everything here is a pure function of its inputs; nothing mutates
// collections or touches the network.
package report

import (
	"time"

	"github.com/rentkit/rentkit/internal/checklist"
	"github.com/rentkit/rentkit/internal/comment"
	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/payment"
	"github.com/rentkit/rentkit/internal/property"
	"github.com/rentkit/rentkit/internal/tenant"
)

// Unknown is displayed for dangling entity references.
const Unknown = "Unknown"

// Snapshot is a read-only view of all five collections.
type Snapshot struct {
	Properties []*property.Property
	Tenants    []*tenant.Tenant
	Payments   []*payment.Payment
	Checklists []*checklist.Checklist
	Comments   []*comment.Comment
}

// PropertyName resolves a property reference, degrading to Unknown.
func (s Snapshot) PropertyName(id string) string {
	for _, p := range s.Properties {
		if p.ID == id {
			return p.Name
		}
	}
	return Unknown
}

// TenantName resolves a tenant reference, degrading to Unknown.
func (s Snapshot) TenantName(id string) string {
	for _, t := range s.Tenants {
		if t.ID == id {
			return t.FullName
		}
	}
	return Unknown
}

// Summary is the metrics block shared by the dashboard and the exported
// reports.
type Summary struct {
	Month           time.Time
	Currency        money.Currency
	TotalProperties int
	ActiveTenants   int
	OccupancyRate   float64 // percent
	MonthlyIncome   float64 // paid payments due in Month, in Currency
	OverdueTotal    float64 // overdue payments due in Month, in Currency
}

// BuildSummary computes the metrics for one month and currency. Monthly
// income counts only payments marked paid: a pending or overdue payment
// due in the month contributes nothing.
func BuildSummary(snap Snapshot, month time.Time, cur money.Currency, now time.Time) Summary {
	sum := Summary{
		Month:           month,
		Currency:        cur,
		TotalProperties: len(snap.Properties),
	}

	for _, t := range snap.Tenants {
		if t.LeaseActive(now) {
			sum.ActiveTenants++
		}
	}

	if sum.TotalProperties > 0 {
		sum.OccupancyRate = float64(sum.ActiveTenants) / float64(sum.TotalProperties) * 100
	}

	for _, p := range PaymentsInMonth(snap.Payments, month, cur) {
		switch p.Status {
		case payment.StatusPaid:
			sum.MonthlyIncome += p.Amount
		case payment.StatusOverdue:
			sum.OverdueTotal += p.Amount
		}
	}

	return sum
}

// PaymentsInMonth filters payments to those due in the given calendar
// month with the given currency, preserving order.
func PaymentsInMonth(payments []*payment.Payment, month time.Time, cur money.Currency) []*payment.Payment {
	var out []*payment.Payment
	for _, p := range payments {
		if p.Currency == cur && p.DueIn(month) {
			out = append(out, p)
		}
	}
	return out
}

// CommentsInMonth filters comments to those created in the given calendar
// month, preserving order.
func CommentsInMonth(comments []*comment.Comment, month time.Time) []*comment.Comment {
	var out []*comment.Comment
	for _, c := range comments {
		if c.CreatedIn(month) {
			out = append(out, c)
		}
	}
	return out
}

// OverdueCount returns the number of payments currently marked overdue in
// the given currency, regardless of month.
func OverdueCount(payments []*payment.Payment, cur money.Currency) int {
	n := 0
	for _, p := range payments {
		if p.Status == payment.StatusOverdue && p.Currency == cur {
			n++
		}
	}
	return n
}
