// Package engine computes the dashboard statistics and per-project
// profitability from a freshly-read snapshot of the backing store.
//
// The engine is stateless: every call performs its own reads, joins the four
// collections in memory and returns value DTOs. Store failures degrade to
// zero/empty results so a dashboard never hard-fails on an unreachable or
// half-provisioned spreadsheet.
package engine

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"bizdash/internal/core"
	"bizdash/internal/records"
	"bizdash/internal/sheets"
)

type Engine struct {
	store sheets.RangeReader
}

func New(store sheets.RangeReader) *Engine {
	return &Engine{store: store}
}

// snapshot is one request's view of the store. All four reads must complete
// before any aggregation starts; a partial snapshot is never aggregated.
type snapshot struct {
	clients  []core.Client
	projects []core.Project
	income   []core.IncomeTransaction
	expenses []core.Expense
}

// fetch reads the four source ranges concurrently. The ranges have no
// ordering dependency on each other; the errgroup wait is the join barrier.
func (e *Engine) fetch(ctx context.Context) (snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := e.store.ReadRange(gctx, sheets.RangeClients)
		if err != nil {
			return err
		}
		snap.clients = records.MapClients(records.DataRows(rows))
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.ReadRange(gctx, sheets.RangeProjects)
		if err != nil {
			return err
		}
		snap.projects = records.MapProjects(records.DataRows(rows))
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.ReadRange(gctx, sheets.RangeIncome)
		if err != nil {
			return err
		}
		snap.income = records.MapIncomeTransactions(records.DataRows(rows))
		return nil
	})
	g.Go(func() error {
		rows, err := e.store.ReadRange(gctx, sheets.RangeExpenses)
		if err != nil {
			return err
		}
		snap.expenses = records.MapExpenses(records.DataRows(rows))
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// Stats computes the portfolio-wide dashboard aggregates. If any of the four
// reads fails the zero-valued stats are returned instead of an error.
func (e *Engine) Stats(ctx context.Context) core.DashboardStats {
	snap, err := e.fetch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Dashboard stats degraded to empty", "error", err)
		return core.DashboardStats{}
	}

	stats := core.DashboardStats{
		TotalClients:  len(snap.clients),
		TotalProjects: len(snap.projects),
	}
	for _, t := range snap.income {
		stats.TotalIncome += t.Amount
	}
	for _, x := range snap.expenses {
		stats.TotalExpenses += x.Amount
	}
	stats.TotalProfit = stats.TotalIncome - stats.TotalExpenses
	for _, p := range snap.projects {
		if p.IsActive() {
			stats.ActiveProjects++
		}
	}
	return stats
}

// ProjectProfits computes one profitability row per project, sorted by profit
// descending. Ties keep store row order. A read failure yields an empty list.
func (e *Engine) ProjectProfits(ctx context.Context) []core.ProjectProfit {
	snap, err := e.fetch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Project profits degraded to empty", "error", err)
		return []core.ProjectProfit{}
	}

	// id -> nickname; last row wins on duplicate ids.
	clientNames := make(map[string]string, len(snap.clients))
	for _, c := range snap.clients {
		clientNames[c.ID] = c.Nickname
	}

	// Pre-bucket sums by project id so the join is O(n+m).
	incomeByProject := make(map[string]float64, len(snap.projects))
	for _, t := range snap.income {
		incomeByProject[t.ProjectID] += t.Amount
	}
	expensesByProject := make(map[string]float64, len(snap.projects))
	for _, x := range snap.expenses {
		expensesByProject[x.ProjectID] += x.Amount
	}

	profits := make([]core.ProjectProfit, 0, len(snap.projects))
	for _, p := range snap.projects {
		// An empty nickname counts as a miss, same as an unknown id.
		clientName := clientNames[p.ClientID]
		if clientName == "" {
			clientName = core.UnknownClient
		}

		income := incomeByProject[p.ID]
		expenses := expensesByProject[p.ID]
		profit := income - expenses

		// Zero revenue means zero margin, never NaN.
		var margin float64
		if income != 0 {
			margin = profit / income * 100
		}

		profits = append(profits, core.ProjectProfit{
			ProjectID:     p.ID,
			ProjectName:   p.Name,
			ClientName:    clientName,
			TotalIncome:   income,
			TotalExpenses: expenses,
			Profit:        profit,
			ProfitMargin:  margin,
		})
	}

	// Stable: equal-profit projects keep their store order.
	sort.SliceStable(profits, func(i, j int) bool {
		return profits[i].Profit > profits[j].Profit
	})

	return profits
}
