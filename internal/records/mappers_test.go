package records

import (
	"testing"

	"bizdash/internal/core"
)

func TestDataRowsStripsHeader(t *testing.T) {
	if got := DataRows(nil); got != nil {
		t.Fatalf("DataRows(nil)=%v", got)
	}
	if got := DataRows([][]any{{"ID", "Nickname"}}); len(got) != 0 {
		t.Fatalf("header-only range yields %d rows", len(got))
	}
	rows := DataRows([][]any{{"ID"}, {"c1"}, {"c2"}})
	if len(rows) != 2 || rows[0][0] != "c1" {
		t.Fatalf("unexpected data rows: %v", rows)
	}
}

func TestMapClientsDefensive(t *testing.T) {
	clients := MapClients([][]any{
		{"c1", "Acme", "1 Main St", "Milan", "2024-01-01T00:00:00Z"},
		{"c2", " Beta "},
		nil,
	})
	if len(clients) != 3 {
		t.Fatalf("expected 3 clients, got %d", len(clients))
	}
	if clients[0].Nickname != "Acme" || clients[0].City != "Milan" {
		t.Fatalf("unexpected first client: %+v", clients[0])
	}
	if clients[1].Nickname != "Beta" {
		t.Fatalf("expected trimmed nickname, got %q", clients[1].Nickname)
	}
	if clients[1].Address != "" || clients[2].ID != "" {
		t.Fatalf("short rows must default to empty cells")
	}
	if clients[2].CreatedAt == "" {
		t.Fatalf("missing CreatedAt must default to now")
	}
}

func TestMapProjectsDefaults(t *testing.T) {
	projects := MapProjects([][]any{
		{"p1", "Site", "c1", "2024-02-01", "2024-03-01", "In Progress"},
		{"p2", "App", "c1"},
	})
	if projects[0].Status != core.StatusInProgress {
		t.Fatalf("status=%q", projects[0].Status)
	}
	if projects[1].Status != core.StatusPlanning {
		t.Fatalf("missing status must default to Planning, got %q", projects[1].Status)
	}
	if projects[1].StartDate == "" {
		t.Fatalf("missing start date must default to today")
	}
	if projects[1].EndDate != "" {
		t.Fatalf("missing end date stays empty, got %q", projects[1].EndDate)
	}
}

func TestMapIncomeTransactionsAmounts(t *testing.T) {
	txns := MapIncomeTransactions([][]any{
		{"t1", "c1", "1000.50", "2024-02-10", "deposit", "p1"},
		{"t2", "c1", "oops", "2024-02-11", "", "p1"},
		{"t3", "c1", 250, "2024-02-12", "", "p1"},
	})
	if txns[0].Amount != 1000.50 {
		t.Fatalf("amount=%v", txns[0].Amount)
	}
	if txns[1].Amount != 0 {
		t.Fatalf("unparseable amount must map to 0, got %v", txns[1].Amount)
	}
	if txns[2].Amount != 250 {
		t.Fatalf("numeric cell must parse, got %v", txns[2].Amount)
	}
}

func TestMapExpensesColumnOrder(t *testing.T) {
	expenses := MapExpenses([][]any{
		{"x1", "Tools", "49.99", "p1", "2024-02-15", "license"},
	})
	x := expenses[0]
	if x.Category != core.CategoryTools || x.ProjectID != "p1" || x.Date != "2024-02-15" || x.Description != "license" {
		t.Fatalf("column order broken: %+v", x)
	}
}

func TestRowSerializersRoundTrip(t *testing.T) {
	c := core.Client{ID: "c1", Nickname: "Acme", Address: "1 Main St", City: "Milan", CreatedAt: "2024-01-01T00:00:00Z"}
	back := MapClients([][]any{ClientRow(c)})
	if back[0] != c {
		t.Fatalf("client round trip: %+v != %+v", back[0], c)
	}

	p := core.Project{ID: "p1", Name: "Site", ClientID: "c1", StartDate: "2024-02-01", EndDate: "2024-03-01", Status: core.StatusInProgress}
	if got := MapProjects([][]any{ProjectRow(p)})[0]; got != p {
		t.Fatalf("project round trip: %+v != %+v", got, p)
	}

	x := core.Expense{ID: "x1", Category: core.CategoryVendor, Amount: 400, ProjectID: "p1", Date: "2024-02-15", Description: "sub"}
	if got := MapExpenses([][]any{ExpenseRow(x)})[0]; got != x {
		t.Fatalf("expense round trip: %+v != %+v", got, x)
	}
}

func TestHeadersCoverEveryRange(t *testing.T) {
	for rangeID, header := range Headers {
		if len(header) == 0 {
			t.Fatalf("empty header row for %s", rangeID)
		}
		if header[0] != "ID" {
			t.Fatalf("%s header must start with ID, got %v", rangeID, header[0])
		}
	}
	if len(Headers) != 5 {
		t.Fatalf("expected 5 ranges, got %d", len(Headers))
	}
}
