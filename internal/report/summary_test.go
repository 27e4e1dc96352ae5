package report

import (
	"testing"
	"time"

	"github.com/rentkit/rentkit/internal/comment"
	"github.com/rentkit/rentkit/internal/money"
	"github.com/rentkit/rentkit/internal/payment"
	"github.com/rentkit/rentkit/internal/property"
	"github.com/rentkit/rentkit/internal/tenant"
)

var (
	march = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	// now falls inside an active lease window for the fixtures below.
	testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
)

func testSnapshot() Snapshot {
	return Snapshot{
		Properties: []*property.Property{
			{ID: "p1", Name: "Nile View", Type: property.TypeApartment, Currency: money.USD},
			{ID: "p2", Name: "Garden Flat", Type: property.TypeStudio, Currency: money.USD},
		},
		Tenants: []*tenant.Tenant{
			{ID: "t1", FullName: "Amira Hassan", PropertyID: "p1",
				LeaseStart: "2024-01-01", LeaseEnd: "2024-12-31"},
			{ID: "t2", FullName: "Omar Farouk", PropertyID: "p2",
				LeaseStart: "2023-01-01", LeaseEnd: "2023-12-31"}, // expired
		},
		Payments: []*payment.Payment{
			{ID: "pay1", PropertyID: "p1", TenantID: "t1", Amount: 500,
				Currency: money.USD, DueDate: "2024-03-01", Status: payment.StatusPaid},
			{ID: "pay2", PropertyID: "p1", TenantID: "t1", Amount: 300,
				Currency: money.USD, DueDate: "2024-03-10", Status: payment.StatusPending},
			{ID: "pay3", PropertyID: "p2", TenantID: "t2", Amount: 200,
				Currency: money.USD, DueDate: "2024-03-20", Status: payment.StatusOverdue},
			{ID: "pay4", PropertyID: "p1", TenantID: "t1", Amount: 450,
				Currency: money.EUR, DueDate: "2024-03-05", Status: payment.StatusPaid}, // other currency
			{ID: "pay5", PropertyID: "p1", TenantID: "t1", Amount: 500,
				Currency: money.USD, DueDate: "2024-04-01", Status: payment.StatusPaid}, // next month
		},
		Comments: []*comment.Comment{
			{ID: "c1", TenantID: "t1", PropertyID: "p1", Text: "Fixed the boiler",
				CreatedAt: time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)},
			{ID: "c2", TenantID: "t2", PropertyID: "p2", Text: "Late again",
				CreatedAt: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestBuildSummary(t *testing.T) {
	sum := BuildSummary(testSnapshot(), march, money.USD, testNow)

	if sum.TotalProperties != 2 {
		t.Errorf("TotalProperties = %d, want 2", sum.TotalProperties)
	}
	if sum.ActiveTenants != 1 {
		t.Errorf("ActiveTenants = %d, want 1 (expired lease must not count)", sum.ActiveTenants)
	}
	if sum.OccupancyRate != 50 {
		t.Errorf("OccupancyRate = %v, want 50", sum.OccupancyRate)
	}
	// Only the paid USD payment due in March counts; pending and overdue
	// contribute nothing to income.
	if sum.MonthlyIncome != 500 {
		t.Errorf("MonthlyIncome = %v, want 500", sum.MonthlyIncome)
	}
	if sum.OverdueTotal != 200 {
		t.Errorf("OverdueTotal = %v, want 200", sum.OverdueTotal)
	}
}

func TestBuildSummaryEmpty(t *testing.T) {
	sum := BuildSummary(Snapshot{}, march, money.USD, testNow)

	if sum.TotalProperties != 0 || sum.ActiveTenants != 0 {
		t.Errorf("empty snapshot produced counts: %+v", sum)
	}
	if sum.OccupancyRate != 0 {
		t.Errorf("OccupancyRate = %v with no properties, want 0", sum.OccupancyRate)
	}
}

func TestPaymentsInMonth(t *testing.T) {
	got := PaymentsInMonth(testSnapshot().Payments, march, money.USD)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, p := range got {
		if p.Currency != money.USD {
			t.Errorf("payment %s has currency %s", p.ID, p.Currency)
		}
		if !p.DueIn(march) {
			t.Errorf("payment %s not due in March", p.ID)
		}
	}
}

func TestCommentsInMonth(t *testing.T) {
	got := CommentsInMonth(testSnapshot().Comments, march)

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "c1" {
		t.Errorf("got comment %s, want c1", got[0].ID)
	}
}

func TestOverdueCount(t *testing.T) {
	if got := OverdueCount(testSnapshot().Payments, money.USD); got != 1 {
		t.Errorf("OverdueCount = %d, want 1", got)
	}
	if got := OverdueCount(testSnapshot().Payments, money.EGP); got != 0 {
		t.Errorf("OverdueCount(EGP) = %d, want 0", got)
	}
}

func TestSnapshotNameResolution(t *testing.T) {
	snap := testSnapshot()

	if got := snap.PropertyName("p1"); got != "Nile View" {
		t.Errorf("PropertyName(p1) = %q", got)
	}
	if got := snap.PropertyName("dangling"); got != Unknown {
		t.Errorf("PropertyName(dangling) = %q, want %q", got, Unknown)
	}
	if got := snap.TenantName("t2"); got != "Omar Farouk" {
		t.Errorf("TenantName(t2) = %q", got)
	}
	if got := snap.TenantName(""); got != Unknown {
		t.Errorf("TenantName(\"\") = %q, want %q", got, Unknown)
	}
}
