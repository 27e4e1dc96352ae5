package report

import (
	"time"

	"github.com/rentkit/rentkit/internal/tenant"
)

// OccupancyOn returns the tenants whose lease interval covers the given
// day, preserving order.
func OccupancyOn(tenants []*tenant.Tenant, day time.Time) []*tenant.Tenant {
	var out []*tenant.Tenant
	for _, t := range tenants {
		if t.LeaseActiveOn(day) {
			out = append(out, t)
		}
	}
	return out
}

// MonthOccupancy returns, for each day of the month (1-based index 0..n-1),
// the tenants occupying on that day.
func MonthOccupancy(tenants []*tenant.Tenant, month time.Time) [][]*tenant.Tenant {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	out := make([][]*tenant.Tenant, days)
	for d := 0; d < days; d++ {
		out[d] = OccupancyOn(tenants, first.AddDate(0, 0, d))
	}
	return out
}
