package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rentkit/rentkit/internal/checklist"
	"github.com/rentkit/rentkit/internal/comment"
	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/payment"
	"github.com/rentkit/rentkit/internal/property"
	"github.com/rentkit/rentkit/internal/report"
	"github.com/rentkit/rentkit/internal/tenant"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatAmount renders an amount with its currency symbol.
func formatAmount(amount float64, cur money.Currency) string {
	return fmt.Sprintf("%s%.2f", money.Symbol(cur), amount)
}

// printPropertyDetail prints a single property in text format.
func printPropertyDetail(p *property.Property) {
	fmt.Printf("Property %s\n", p.ID)
	fmt.Printf("  Name:      %s\n", p.Name)
	fmt.Printf("  Location:  %s\n", p.Location)
	fmt.Printf("  City:      %s\n", p.City)
	if p.Address != "" {
		fmt.Printf("  Address:   %s\n", p.Address)
	}
	fmt.Printf("  Type:      %s\n", p.Type)
	fmt.Printf("  Bedrooms:  %d\n", p.Bedrooms)
	fmt.Printf("  Bathrooms: %g\n", p.Bathrooms)
	fmt.Printf("  Rent:      %s\n", formatAmount(p.Rent, p.Currency))
	if p.Description != "" {
		fmt.Printf("  Notes:     %s\n", p.Description)
	}
}

// printPropertyTable prints properties as a formatted table.
func printPropertyTable(props []*property.Property) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCITY\tTYPE\tBEDS\tBATHS\tRENT")
	for _, p := range props {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%g\t%s\n",
			p.ID, p.Name, p.City, p.Type, p.Bedrooms, p.Bathrooms,
			formatAmount(p.Rent, p.Currency))
	}
	return w.Flush()
}

// printTenantTable prints tenants as a formatted table, resolving
// property references through the snapshot.
func printTenantTable(tenants []*tenant.Tenant, snap report.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPROPERTY\tLEASE START\tLEASE END")
	for _, t := range tenants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.FullName, t.Email, snap.PropertyName(t.PropertyID),
			t.LeaseStart, t.LeaseEnd)
	}
	return w.Flush()
}

// printPaymentTable prints payments as a formatted table.
func printPaymentTable(payments []*payment.Payment, snap report.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROPERTY\tTENANT\tAMOUNT\tDUE\tSTATUS")
	for _, p := range payments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, snap.PropertyName(p.PropertyID), snap.TenantName(p.TenantID),
			formatAmount(p.Amount, p.Currency), p.DueDate, p.Status)
	}
	return w.Flush()
}

// printChecklistTable prints checklists with their task progress.
func printChecklistTable(checklists []*checklist.Checklist, snap report.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROPERTY\tPROGRESS\tTEMPLATE")
	for _, c := range checklists {
		prop := ""
		if c.PropertyID != "" {
			prop = snap.PropertyName(c.PropertyID)
		}
		done, total := c.Progress()
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%v\n",
			c.ID, c.Name, prop, done, total, c.IsTemplate)
	}
	return w.Flush()
}

// printChecklistDetail prints a checklist with its full task list.
func printChecklistDetail(c *checklist.Checklist, snap report.Snapshot) {
	fmt.Printf("Checklist %s: %s\n", c.ID, c.Name)
	if c.PropertyID != "" {
		fmt.Printf("  Property: %s\n", snap.PropertyName(c.PropertyID))
	}
	if c.IsTemplate {
		fmt.Println("  Template: yes")
	}
	for _, task := range c.Tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		fmt.Printf("  [%s] %s  (%s)\n", mark, task.Text, task.ID)
	}
}

// printCommentTable prints comments as a formatted table.
func printCommentTable(comments []*comment.Comment, snap report.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTENANT\tPROPERTY\tCOMMENT")
	for _, c := range comments {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.CreatedAt.Format("2006-01-02"),
			snap.TenantName(c.TenantID), snap.PropertyName(c.PropertyID), c.Text)
	}
	return w.Flush()
}
