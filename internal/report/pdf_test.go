package report

import (
	"bytes"
	"testing"

	"github.com/rentkit/rentkit/internal/money"
)

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, testSnapshot(), march, money.USD, testNow); err != nil {
		t.Fatalf("write: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
	if buf.Len() < 1000 {
		t.Errorf("suspiciously small document: %d bytes", buf.Len())
	}
}

func TestWritePDFEmptySnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, Snapshot{}, march, money.EGP, testNow); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestFormatDueDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-03-05", "Mar 05"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatDueDate(tt.in); got != tt.want {
			t.Errorf("formatDueDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"paid", "Paid"},
		{"Overdue", "Overdue"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
