package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/rentkit/rentkit/internal/money"
)

// WritePDF renders the monthly report as a paginated PDF document: a
// title block, the summary metrics, the payments due in the period, and
// the comments written in the period.
func WritePDF(w io.Writer, snap Snapshot, month time.Time, cur money.Currency, now time.Time) error {
	sum := BuildSummary(snap, month, cur, now)

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, "Property Rental Report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, "Period: "+month.Format("January 2006"))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Currency: "+string(cur))
	pdf.Ln(8)
	pdf.Cell(0, 8, "Generated: "+now.Format("Jan 02, 2006"))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Total Properties: %d", sum.TotalProperties),
		fmt.Sprintf("Active Tenants: %d", sum.ActiveTenants),
		fmt.Sprintf("Occupancy Rate: %.1f%%", sum.OccupancyRate),
		fmt.Sprintf("Monthly Income: %s%.2f", money.Symbol(cur), sum.MonthlyIncome),
		fmt.Sprintf("Overdue Amount: %s%.2f", money.Symbol(cur), sum.OverdueTotal),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, tr(line))
		pdf.Ln(8)
	}

	if payments := PaymentsInMonth(snap.Payments, month, cur); len(payments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 10, "Payments")
		pdf.Ln(10)

		widths := []float64{50, 45, 30, 30, 30}
		writeTableHeader(pdf, widths, []string{"Property", "Tenant", "Amount", "Due Date", "Status"})
		pdf.SetFont("Helvetica", "", 9)
		for _, p := range payments {
			writeTableRow(pdf, widths, []string{
				tr(snap.PropertyName(p.PropertyID)),
				tr(snap.TenantName(p.TenantID)),
				tr(fmt.Sprintf("%s%.2f", money.Symbol(cur), p.Amount)),
				formatDueDate(p.DueDate),
				capitalize(string(p.Status)),
			})
		}
	}

	if comments := CommentsInMonth(snap.Comments, month); len(comments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.Cell(0, 10, "Comments & Notes")
		pdf.Ln(10)

		widths := []float64{45, 25, 115}
		writeTableHeader(pdf, widths, []string{"Tenant", "Date", "Comment"})
		pdf.SetFont("Helvetica", "", 9)
		for _, c := range comments {
			writeTableRow(pdf, widths, []string{
				tr(snap.TenantName(c.TenantID)),
				c.CreatedAt.Format("Jan 02"),
				tr(c.Text),
			})
		}
	}

	return pdf.Output(w)
}

func writeTableHeader(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(14, 165, 233)
	pdf.SetTextColor(255, 255, 255)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func writeTableRow(pdf *fpdf.Fpdf, widths []float64, cells []string) {
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

// formatDueDate renders a wire date as "Jan 02", passing through values
// that do not parse.
func formatDueDate(due string) string {
	d, err := time.Parse("2006-01-02", due)
	if err != nil {
		return due
	}
	return d.Format("Jan 02")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
