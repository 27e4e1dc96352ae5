package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/report"
)

// parseMonth accepts YYYY-MM, defaulting to the current month.
func parseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	m, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return m, nil
}

func newDashboardCmd() *cobra.Command {
	var monthFlag, currency string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the monthly metrics summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !money.Valid(currency) {
				return fmt.Errorf("invalid currency: %s", currency)
			}
			now := time.Now().UTC()
			month, err := parseMonth(monthFlag, now)
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			a.store.Load(cmd.Context())

			snap := a.snapshot()
			sum := report.BuildSummary(snap, month, money.Currency(currency), now)

			if isJSON() {
				return printJSON(map[string]any{
					"month":           month.Format("2006-01"),
					"currency":        sum.Currency,
					"totalProperties": sum.TotalProperties,
					"activeTenants":   sum.ActiveTenants,
					"occupancyRate":   sum.OccupancyRate,
					"monthlyIncome":   sum.MonthlyIncome,
					"overdueTotal":    sum.OverdueTotal,
					"overdueCount":    report.OverdueCount(snap.Payments, sum.Currency),
				})
			}

			fmt.Printf("Dashboard for %s (%s)\n", month.Format("January 2006"), sum.Currency)
			fmt.Printf("  Properties:      %d\n", sum.TotalProperties)
			fmt.Printf("  Active tenants:  %d\n", sum.ActiveTenants)
			fmt.Printf("  Occupancy:       %.1f%%\n", sum.OccupancyRate)
			fmt.Printf("  Monthly income:  %s\n", formatAmount(sum.MonthlyIncome, sum.Currency))
			fmt.Printf("  Overdue:         %s (%d payments)\n",
				formatAmount(sum.OverdueTotal, sum.Currency),
				report.OverdueCount(snap.Payments, sum.Currency))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to summarize (YYYY-MM, default: current)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency to summarize (USD|EUR|EGP)")

	return cmd
}
