package report

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rentkit/rentkit/internal/money"
)

// WriteXLSX renders the monthly report as a multi-sheet workbook. The
// Summary sheet is always present; the detail sheets (Payments,
// Properties, Tenants, Comments) appear only when they have rows.
func WriteXLSX(w io.Writer, snap Snapshot, month time.Time, cur money.Currency, now time.Time) error {
	sum := BuildSummary(snap, month, cur, now)

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("closing workbook", "error", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("naming summary sheet: %w", err)
	}

	summaryRows := [][]any{
		{"Property Rental Report"},
		{"Period: " + month.Format("January 2006")},
		{"Currency: " + string(cur)},
		{"Generated: " + now.Format("Jan 02, 2006")},
		{},
		{"SUMMARY"},
		{"Total Properties", sum.TotalProperties},
		{"Active Tenants", sum.ActiveTenants},
		{"Occupancy Rate", fmt.Sprintf("%.1f%%", sum.OccupancyRate)},
		{"Monthly Income", fmt.Sprintf("%s%.2f", money.Symbol(cur), sum.MonthlyIncome)},
		{"Overdue Amount", fmt.Sprintf("%s%.2f", money.Symbol(cur), sum.OverdueTotal)},
	}
	if err := writeSheet(f, "Summary", summaryRows); err != nil {
		return err
	}

	if payments := PaymentsInMonth(snap.Payments, month, cur); len(payments) > 0 {
		rows := [][]any{
			{"Property", "Tenant", "Amount", "Currency", "Due Date", "Status", "Notes"},
		}
		for _, p := range payments {
			rows = append(rows, []any{
				snap.PropertyName(p.PropertyID),
				snap.TenantName(p.TenantID),
				p.Amount,
				string(p.Currency),
				p.DueDate,
				string(p.Status),
				p.Notes,
			})
		}
		if err := addSheet(f, "Payments", rows); err != nil {
			return err
		}
	}

	if len(snap.Properties) > 0 {
		rows := [][]any{
			{"Name", "Location", "City", "Type", "Bedrooms", "Bathrooms", "Monthly Rent", "Currency"},
		}
		for _, p := range snap.Properties {
			rows = append(rows, []any{
				p.Name, p.Location, p.City, string(p.Type),
				p.Bedrooms, p.Bathrooms, p.Rent, string(p.Currency),
			})
		}
		if err := addSheet(f, "Properties", rows); err != nil {
			return err
		}
	}

	if len(snap.Tenants) > 0 {
		rows := [][]any{
			{"Name", "Email", "Phone", "Property", "Lease Start", "Lease End", "Door Code", "Special Requests"},
		}
		for _, t := range snap.Tenants {
			rows = append(rows, []any{
				t.FullName, t.Email, t.Phone, snap.PropertyName(t.PropertyID),
				t.LeaseStart, t.LeaseEnd, t.DoorCode, t.SpecialRequests,
			})
		}
		if err := addSheet(f, "Tenants", rows); err != nil {
			return err
		}
	}

	if comments := CommentsInMonth(snap.Comments, month); len(comments) > 0 {
		rows := [][]any{
			{"Date", "Tenant", "Property", "Comment"},
		}
		for _, c := range comments {
			rows = append(rows, []any{
				c.CreatedAt.Format("2006-01-02"),
				snap.TenantName(c.TenantID),
				snap.PropertyName(c.PropertyID),
				c.Text,
			})
		}
		if err := addSheet(f, "Comments", rows); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// addSheet creates a sheet and fills it with rows.
func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	return writeSheet(f, name, rows)
}

// writeSheet fills an existing sheet row by row starting at A1.
func writeSheet(f *excelize.File, name string, rows [][]any) error {
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+1, err)
		}
	}
	return nil
}
