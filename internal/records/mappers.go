// Package records is the mapping boundary between raw spreadsheet rows and
// typed entities. The store enforces no schema, so mapping is total over
// arbitrary input: a malformed row yields a partially-defaulted entity,
// never an error.
package records

import (
	"fmt"
	"strings"
	"time"

	"bizdash/internal/core"
)

// UserRow carries the stored credential hash alongside the public user
// fields; it never leaves the auth path.
type UserRow struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
}

// DataRows strips the header row. Row 0 of every range is a header and is
// always excluded from entity construction.
func DataRows(rows [][]any) [][]any {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// cell returns the trimmed string value of column i, or "" when the row is
// too short or the cell is nil.
func cell(row []any, i int) string {
	if i < 0 || i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func nowTimestamp() string {
	return time.Now().Format(time.RFC3339)
}

// MapClients maps header-stripped rows to clients, preserving row order.
// Columns: ID, Nickname, Address, City, CreatedAt.
func MapClients(rows [][]any) []core.Client {
	out := make([]core.Client, 0, len(rows))
	for _, row := range rows {
		c := core.Client{
			ID:        cell(row, 0),
			Nickname:  cell(row, 1),
			Address:   cell(row, 2),
			City:      cell(row, 3),
			CreatedAt: cell(row, 4),
		}
		if c.CreatedAt == "" {
			c.CreatedAt = nowTimestamp()
		}
		out = append(out, c)
	}
	return out
}

// MapProjects maps header-stripped rows to projects.
// Columns: ID, Name, ClientID, StartDate, EndDate, Status.
func MapProjects(rows [][]any) []core.Project {
	out := make([]core.Project, 0, len(rows))
	for _, row := range rows {
		p := core.Project{
			ID:        cell(row, 0),
			Name:      cell(row, 1),
			ClientID:  cell(row, 2),
			StartDate: cell(row, 3),
			EndDate:   cell(row, 4),
			Status:    core.ProjectStatus(cell(row, 5)),
		}
		if p.StartDate == "" {
			p.StartDate = today()
		}
		if p.Status == "" {
			p.Status = core.StatusPlanning
		}
		out = append(out, p)
	}
	return out
}

// MapIncomeTransactions maps header-stripped rows to income transactions.
// Columns: ID, ClientID, Amount, Date, Description, ProjectID.
func MapIncomeTransactions(rows [][]any) []core.IncomeTransaction {
	out := make([]core.IncomeTransaction, 0, len(rows))
	for _, row := range rows {
		t := core.IncomeTransaction{
			ID:          cell(row, 0),
			ClientID:    cell(row, 1),
			Amount:      core.ParseAmount(cell(row, 2)),
			Date:        cell(row, 3),
			Description: cell(row, 4),
			ProjectID:   cell(row, 5),
		}
		if t.Date == "" {
			t.Date = today()
		}
		out = append(out, t)
	}
	return out
}

// MapExpenses maps header-stripped rows to expenses.
// Columns: ID, Category, Amount, ProjectID, Date, Description.
func MapExpenses(rows [][]any) []core.Expense {
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e := core.Expense{
			ID:          cell(row, 0),
			Category:    core.ExpenseCategory(cell(row, 1)),
			Amount:      core.ParseAmount(cell(row, 2)),
			ProjectID:   cell(row, 3),
			Date:        cell(row, 4),
			Description: cell(row, 5),
		}
		if e.Date == "" {
			e.Date = today()
		}
		out = append(out, e)
	}
	return out
}

// MapUsers maps header-stripped rows to credential rows.
// Columns: ID, Username, Password, Role, CreatedAt.
func MapUsers(rows [][]any) []UserRow {
	out := make([]UserRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, UserRow{
			ID:           cell(row, 0),
			Username:     cell(row, 1),
			PasswordHash: cell(row, 2),
			Role:         cell(row, 3),
			CreatedAt:    cell(row, 4),
		})
	}
	return out
}
