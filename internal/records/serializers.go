package records

import (
	"bizdash/internal/core"
	"bizdash/internal/sheets"
)

// Headers holds the header row of every range, in the column order the
// mappers and serializers rely on. cmd/sheets-init writes these when
// provisioning a spreadsheet.
var Headers = map[string][]any{
	sheets.RangeClients:  {"ID", "Nickname", "Address", "City", "CreatedAt"},
	sheets.RangeProjects: {"ID", "Name", "ClientID", "StartDate", "EndDate", "Status"},
	sheets.RangeIncome:   {"ID", "ClientID", "Amount", "Date", "Description", "ProjectID"},
	sheets.RangeExpenses: {"ID", "Category", "Amount", "ProjectID", "Date", "Description"},
	sheets.RangeUsers:    {"ID", "Username", "Password", "Role", "CreatedAt"},
}

// Serializers mirror the mappers' column layout exactly; callers validate
// required fields before these run.

func ClientRow(c core.Client) []any {
	return []any{c.ID, c.Nickname, c.Address, c.City, c.CreatedAt}
}

func ProjectRow(p core.Project) []any {
	return []any{p.ID, p.Name, p.ClientID, p.StartDate, p.EndDate, string(p.Status)}
}

func IncomeTransactionRow(t core.IncomeTransaction) []any {
	return []any{t.ID, t.ClientID, t.Amount, t.Date, t.Description, t.ProjectID}
}

func ExpenseRow(e core.Expense) []any {
	return []any{e.ID, string(e.Category), e.Amount, e.ProjectID, e.Date, e.Description}
}
