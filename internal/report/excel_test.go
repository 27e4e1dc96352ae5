package report

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/rentkit/rentkit/internal/money"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testSnapshot(), march, money.USD, testNow); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			t.Errorf("close workbook: %v", cerr)
		}
	}()

	want := []string{"Summary", "Payments", "Properties", "Tenants", "Comments"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("sheet[%d] = %q, want %q", i, got[i], name)
		}
	}

	title, err := f.GetCellValue("Summary", "A1")
	if err != nil {
		t.Fatalf("read title: %v", err)
	}
	if title != "Property Rental Report" {
		t.Errorf("A1 = %q", title)
	}

	income, err := f.GetCellValue("Summary", "B10")
	if err != nil {
		t.Fatalf("read income: %v", err)
	}
	if income != "$500.00" {
		t.Errorf("monthly income cell = %q, want $500.00", income)
	}

	// Payment rows resolve entity references to display names.
	prop, err := f.GetCellValue("Payments", "A2")
	if err != nil {
		t.Fatalf("read payment row: %v", err)
	}
	if prop != "Nile View" {
		t.Errorf("Payments A2 = %q, want Nile View", prop)
	}
}

func TestWriteXLSXOmitsEmptySheets(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, Snapshot{}, march, money.USD, testNow); err != nil {
		t.Fatalf("write: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			t.Errorf("close workbook: %v", cerr)
		}
	}()

	got := f.GetSheetList()
	if len(got) != 1 || got[0] != "Summary" {
		t.Errorf("sheets = %v, want just Summary", got)
	}
}
