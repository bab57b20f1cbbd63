// Package sheets declares the ports for the tabular store backing the
// application. A range is a named rectangular region of the spreadsheet;
// rows are ordered sequences of untyped cells and row 0 is always a header.
package sheets

import "context"

// Named ranges, one per collection. Column layouts live in internal/records.
const (
	RangeClients  = "Clients!A:E"
	RangeProjects = "Projects!A:G"
	RangeIncome   = "Income_Transactions!A:F"
	RangeExpenses = "Expenses!A:G"
	RangeUsers    = "Users!A:E"
)

// Ports for outbound adapters.
type (
	// RangeReader returns every row of a range in store order, header
	// included. Errors are transport or auth failures; callers decide
	// whether to degrade or propagate.
	RangeReader interface {
		ReadRange(ctx context.Context, rangeID string) ([][]any, error)
	}

	// RangeAppender appends rows after the last populated row of a range.
	RangeAppender interface {
		AppendRange(ctx context.Context, rangeID string, rows [][]any) error
	}

	// Store is the full read/append contract a backend must satisfy.
	Store interface {
		RangeReader
		RangeAppender
	}
)
