package engine

import (
	"context"
	"errors"
	"testing"

	"bizdash/internal/core"
	"bizdash/internal/sheets"
	"bizdash/internal/sheets/memory"
)

func seedStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	store.Seed(sheets.RangeClients, [][]any{
		{"ID", "Nickname", "Address", "City", "CreatedAt"},
		{"c1", "Acme", "", "", ""},
	})
	store.Seed(sheets.RangeProjects, [][]any{
		{"ID", "Name", "ClientID", "StartDate", "EndDate", "Status"},
		{"p1", "Site", "c1", "2024-01-01", "", "In Progress"},
	})
	store.Seed(sheets.RangeIncome, [][]any{
		{"ID", "ClientID", "Amount", "Date", "Description", "ProjectID"},
		{"t1", "c1", "600", "2024-01-10", "", "p1"},
		{"t2", "c1", "400", "2024-01-20", "", "p1"},
	})
	store.Seed(sheets.RangeExpenses, [][]any{
		{"ID", "Category", "Amount", "ProjectID", "Date", "Description"},
		{"x1", "Tools", "400", "p1", "2024-01-15", ""},
	})
	return store
}

func TestStats(t *testing.T) {
	eng := New(seedStore(t))
	got := eng.Stats(context.Background())
	want := core.DashboardStats{
		TotalClients:   1,
		TotalProjects:  1,
		TotalIncome:    1000,
		TotalExpenses:  400,
		TotalProfit:    600,
		ActiveProjects: 1,
	}
	if got != want {
		t.Fatalf("stats=%+v want %+v", got, want)
	}
}

func TestStatsCountsPlanningAsActive(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeProjects, [][]any{
		{"ID", "Name", "ClientID", "StartDate", "EndDate", "Status"},
		{"p1", "Site", "c1", "", "", "Planning"},
		{"p2", "App", "c1", "", "", "In Progress"},
		{"p3", "Old", "c1", "", "", "Completed"},
		{"p4", "Paused", "c1", "", "", "On Hold"},
	})
	got := New(store).Stats(context.Background())
	if got.ActiveProjects != 2 {
		t.Fatalf("active=%d want 2 (Planning and In Progress)", got.ActiveProjects)
	}
	if got.TotalProjects != 4 {
		t.Fatalf("total=%d want 4", got.TotalProjects)
	}
}

func TestStatsUnparseableAmountsContributeZero(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeIncome, [][]any{
		{"ID", "ClientID", "Amount", "Date", "Description", "ProjectID"},
		{"t1", "c1", "1000", "", "", "p1"},
		{"t2", "c1", "not-a-number", "", "", "p1"},
	})
	got := New(store).Stats(context.Background())
	if got.TotalIncome != 1000 {
		t.Fatalf("income=%v want 1000", got.TotalIncome)
	}
}

func TestStatsDegradesToZeroOnReadFailure(t *testing.T) {
	store := seedStore(t)
	store.FailReads(errors.New("quota exceeded"))
	got := New(store).Stats(context.Background())
	if got != (core.DashboardStats{}) {
		t.Fatalf("expected zero stats on read failure, got %+v", got)
	}
}

func TestProjectProfits(t *testing.T) {
	profits := New(seedStore(t)).ProjectProfits(context.Background())
	if len(profits) != 1 {
		t.Fatalf("expected 1 row, got %d", len(profits))
	}
	p := profits[0]
	if p.ProjectID != "p1" || p.ProjectName != "Site" || p.ClientName != "Acme" {
		t.Fatalf("identity fields wrong: %+v", p)
	}
	if p.TotalIncome != 1000 || p.TotalExpenses != 400 || p.Profit != 600 {
		t.Fatalf("sums wrong: %+v", p)
	}
	if p.ProfitMargin != 60.0 {
		t.Fatalf("margin=%v want 60", p.ProfitMargin)
	}
}

func TestProjectProfitsSortAndTies(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeProjects, [][]any{
		{"ID", "Name", "ClientID", "StartDate", "EndDate", "Status"},
		{"p1", "First", "c1", "", "", "Planning"},
		{"p2", "Second", "c1", "", "", "Planning"},
		{"p3", "Third", "c1", "", "", "Planning"},
	})
	store.Seed(sheets.RangeIncome, [][]any{
		{"ID", "ClientID", "Amount", "Date", "Description", "ProjectID"},
		{"t1", "c1", "100", "", "", "p1"},
		{"t2", "c1", "100", "", "", "p3"},
		{"t3", "c1", "500", "", "", "p2"},
	})
	store.Seed(sheets.RangeExpenses, [][]any{
		{"ID", "Category", "Amount", "ProjectID", "Date", "Description"},
	})
	profits := New(store).ProjectProfits(context.Background())
	var order []string
	for _, p := range profits {
		order = append(order, p.ProjectID)
	}
	// p2 leads on profit; p1 and p3 tie and keep store order.
	if len(order) != 3 || order[0] != "p2" || order[1] != "p1" || order[2] != "p3" {
		t.Fatalf("order=%v want [p2 p1 p3]", order)
	}
}

func TestProjectProfitsZeroIncomeZeroMargin(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeIncome, [][]any{
		{"ID", "ClientID", "Amount", "Date", "Description", "ProjectID"},
	})
	profits := New(store).ProjectProfits(context.Background())
	p := profits[0]
	if p.Profit != -400 {
		t.Fatalf("profit=%v want -400", p.Profit)
	}
	if p.ProfitMargin != 0 {
		t.Fatalf("margin must be 0 when income is 0, got %v", p.ProfitMargin)
	}
}

func TestProjectProfitsUnknownClient(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeClients, [][]any{
		{"ID", "Nickname", "Address", "City", "CreatedAt"},
		{"c2", "", "", "", ""},
	})
	store.Seed(sheets.RangeProjects, [][]any{
		{"ID", "Name", "ClientID", "StartDate", "EndDate", "Status"},
		{"p1", "Orphan", "c9", "", "", "Planning"},
		{"p2", "Blank", "c2", "", "", "Planning"},
	})
	profits := New(store).ProjectProfits(context.Background())
	for _, p := range profits {
		if p.ClientName != core.UnknownClient {
			t.Fatalf("project %s client=%q want %q", p.ProjectID, p.ClientName, core.UnknownClient)
		}
	}
}

func TestProjectProfitsDuplicateClientLastWins(t *testing.T) {
	store := seedStore(t)
	store.Seed(sheets.RangeClients, [][]any{
		{"ID", "Nickname", "Address", "City", "CreatedAt"},
		{"c1", "Old Name", "", "", ""},
		{"c1", "New Name", "", "", ""},
	})
	profits := New(store).ProjectProfits(context.Background())
	if profits[0].ClientName != "New Name" {
		t.Fatalf("client=%q want last duplicate to win", profits[0].ClientName)
	}
}

func TestProjectProfitsDegradesToEmptyOnReadFailure(t *testing.T) {
	store := seedStore(t)
	store.FailReads(errors.New("range missing"))
	profits := New(store).ProjectProfits(context.Background())
	if profits == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(profits) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(profits))
	}
}
