// Package services implements the write path: required-field validation, id
// generation, serialization to the range's column order, and the append
// itself. Validation failures reject before any store interaction.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bizdash/internal/core"
	"bizdash/internal/records"
	"bizdash/internal/sheets"
)

// EventPublisher notifies downstream consumers that a record was appended.
// Optional; used by the sqlite backend to nudge the sheet mirror worker.
type EventPublisher interface {
	PublishRecordCreated(ctx context.Context, rangeID, recordID string) error
}

type Records struct {
	store  sheets.Store
	events EventPublisher
}

func NewRecords(store sheets.Store, events EventPublisher) *Records {
	return &Records{store: store, events: events}
}

type (
	NewClient struct {
		Nickname string `json:"nickname"`
		Address  string `json:"address"`
		City     string `json:"city"`
	}

	NewProject struct {
		Name      string `json:"name"`
		ClientID  string `json:"clientId"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Status    string `json:"status"`
	}

	NewIncomeTransaction struct {
		ClientID    string `json:"clientId"`
		Amount      string `json:"amount"`
		Date        string `json:"date"`
		Description string `json:"description"`
		ProjectID   string `json:"projectId"`
	}

	NewExpense struct {
		Category    string `json:"category"`
		Amount      string `json:"amount"`
		ProjectID   string `json:"projectId"`
		Date        string `json:"date"`
		Description string `json:"description"`
	}
)

func (r *Records) CreateClient(ctx context.Context, in NewClient) (core.Client, error) {
	var missing []string
	if in.Nickname == "" {
		missing = append(missing, "nickname")
	}
	if in.Address == "" {
		missing = append(missing, "address")
	}
	if in.City == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return core.Client{}, core.MissingFields(missing...)
	}

	c := core.Client{
		ID:        uuid.NewString(),
		Nickname:  in.Nickname,
		Address:   in.Address,
		City:      in.City,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if err := r.append(ctx, sheets.RangeClients, records.ClientRow(c), c.ID); err != nil {
		return core.Client{}, err
	}
	return c, nil
}

func (r *Records) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.store.ReadRange(ctx, sheets.RangeClients)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return records.MapClients(records.DataRows(rows)), nil
}

func (r *Records) CreateProject(ctx context.Context, in NewProject) (core.Project, error) {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if len(missing) > 0 {
		return core.Project{}, core.MissingFields(missing...)
	}

	p := core.Project{
		ID:        uuid.NewString(),
		Name:      in.Name,
		ClientID:  in.ClientID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    core.ProjectStatus(in.Status),
	}
	if p.StartDate == "" {
		p.StartDate = time.Now().Format("2006-01-02")
	}
	if p.Status == "" {
		p.Status = core.StatusPlanning
	}
	if err := r.append(ctx, sheets.RangeProjects, records.ProjectRow(p), p.ID); err != nil {
		return core.Project{}, err
	}
	return p, nil
}

func (r *Records) ListProjects(ctx context.Context) ([]core.Project, error) {
	rows, err := r.store.ReadRange(ctx, sheets.RangeProjects)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return records.MapProjects(records.DataRows(rows)), nil
}

func (r *Records) CreateIncomeTransaction(ctx context.Context, in NewIncomeTransaction) (core.IncomeTransaction, error) {
	var missing []string
	if in.ClientID == "" {
		missing = append(missing, "clientId")
	}
	if in.Amount == "" {
		missing = append(missing, "amount")
	}
	if in.Date == "" {
		missing = append(missing, "date")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return core.IncomeTransaction{}, core.MissingFields(missing...)
	}

	amount, err := core.ParseRequiredAmount(in.Amount)
	if err != nil {
		return core.IncomeTransaction{}, err
	}

	t := core.IncomeTransaction{
		ID:          uuid.NewString(),
		ClientID:    in.ClientID,
		Amount:      amount,
		Date:        in.Date,
		Description: in.Description,
		ProjectID:   in.ProjectID,
	}
	if err := r.append(ctx, sheets.RangeIncome, records.IncomeTransactionRow(t), t.ID); err != nil {
		return core.IncomeTransaction{}, err
	}
	return t, nil
}

func (r *Records) ListIncomeTransactions(ctx context.Context) ([]core.IncomeTransaction, error) {
	rows, err := r.store.ReadRange(ctx, sheets.RangeIncome)
	if err != nil {
		return nil, fmt.Errorf("list income transactions: %w", err)
	}
	return records.MapIncomeTransactions(records.DataRows(rows)), nil
}

func (r *Records) CreateExpense(ctx context.Context, in NewExpense) (core.Expense, error) {
	var missing []string
	if in.Category == "" {
		missing = append(missing, "category")
	}
	if in.Amount == "" {
		missing = append(missing, "amount")
	}
	if in.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return core.Expense{}, core.MissingFields(missing...)
	}

	amount, err := core.ParseRequiredAmount(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:          uuid.NewString(),
		Category:    core.ExpenseCategory(in.Category),
		Amount:      amount,
		ProjectID:   in.ProjectID,
		Date:        in.Date,
		Description: in.Description,
	}
	if e.Date == "" {
		e.Date = time.Now().Format("2006-01-02")
	}
	if err := r.append(ctx, sheets.RangeExpenses, records.ExpenseRow(e), e.ID); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func (r *Records) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.store.ReadRange(ctx, sheets.RangeExpenses)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return records.MapExpenses(records.DataRows(rows)), nil
}

// append writes the serialized row and publishes the created event. Event
// failures are logged, not returned: the record is already stored.
func (r *Records) append(ctx context.Context, rangeID string, row []any, recordID string) error {
	if err := r.store.AppendRange(ctx, rangeID, [][]any{row}); err != nil {
		return fmt.Errorf("append %s: %w", rangeID, err)
	}
	if r.events != nil {
		if err := r.events.PublishRecordCreated(ctx, rangeID, recordID); err != nil {
			slog.ErrorContext(ctx, "Failed to publish record created event",
				"range", rangeID, "id", recordID, "error", err)
		}
	}
	return nil
}
