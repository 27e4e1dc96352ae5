package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/report"
)

func newReportCmd() *cobra.Command {
	var monthFlag, currency, out string

	cmd := &cobra.Command{
		Use:   "report <pdf|xlsx>",
		Short: "Export a monthly report",
		Long:  "Export a monthly report as a PDF document or a multi-sheet XLSX workbook.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := args[0]
			if format != "pdf" && format != "xlsx" {
				return fmt.Errorf("unknown report format %q: expected pdf or xlsx", format)
			}
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

			path := out
			if path == "" {
				path = fmt.Sprintf("rental-report-%s.%s", month.Format("2006-01"), format)
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating report file: %w", err)
			}

			snap := a.snapshot()
			cur := money.Currency(currency)
			switch format {
			case "pdf":
				err = report.WritePDF(f, snap, month, cur, now)
			case "xlsx":
				err = report.WriteXLSX(f, snap, month, cur, now)
			}
			if err != nil {
				f.Close()
				os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing report file: %w", err)
			}

			fmt.Printf("✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to report on (YYYY-MM, default: current)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "currency to report on (USD|EUR|EGP)")
	cmd.Flags().StringVar(&out, "out", "", "output path (default: rental-report-YYYY-MM.<format>)")

	return cmd
}
