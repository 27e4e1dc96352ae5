package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/report"
)

func newCalendarCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show per-day lease occupancy for a month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			days := report.MonthOccupancy(a.store.Tenants.Items(), month)

			if isJSON() {
				type day struct {
					Date    string   `json:"date"`
					Tenants []string `json:"tenants"`
				}
				out := make([]day, len(days))
				for i, occupants := range days {
					d := day{Date: month.AddDate(0, 0, i).Format("2006-01-02")}
					for _, t := range occupants {
						d.Tenants = append(d.Tenants, t.FullName)
					}
					out[i] = d
				}
				return printJSON(out)
			}

			fmt.Printf("Occupancy for %s\n", month.Format("January 2006"))
			for i, occupants := range days {
				names := make([]string, 0, len(occupants))
				for _, t := range occupants {
					names = append(names, t.FullName)
				}
				if len(names) == 0 {
					continue
				}
				fmt.Printf("  %s  %s\n", month.AddDate(0, 0, i).Format("Mon 02"), strings.Join(names, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to show (YYYY-MM, default: current)")

	return cmd
}
