// Package app wires user actions to the watchlist, search and chart components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"StockWatch/internal/chart"
	"StockWatch/internal/model"
	"StockWatch/internal/search"
	"StockWatch/internal/state"
	"StockWatch/internal/watchlist"
)

// Controller handles user actions.
type Controller struct {
	store  *state.Store
	sync   *watchlist.Sync
	search *search.Coordinator
	charts *chart.Pipeline
}

// NewController creates a Controller over already-built components.
func NewController(store *state.Store, sync *watchlist.Sync, sc *search.Coordinator, charts *chart.Pipeline) *Controller {
	return &Controller{store: store, sync: sync, search: sc, charts: charts}
}

// Store returns the state store.
func (c *Controller) Store() *state.Store { return c.store }

// Start loads the watchlist, renders once and refreshes prices. Only the
// load can fail.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.sync.Load(ctx); err != nil {
		return err
	}
	c.store.Render()
	c.RefreshPrices(ctx)
	return nil
}

// RefreshPrices updates watchlist prices, logging any failure.
func (c *Controller) RefreshPrices(ctx context.Context) {
	rep, err := c.sync.RefreshPrices(ctx)
	if err != nil {
		slog.Warn("watchlist price refresh failed", "error", err)
		return
	}
	if rep.Failed > 0 {
		slog.Warn("some watchlist prices were not saved", "failed", rep.Failed, "updated", rep.Updated)
	}
}

// Search views the stock for query and then shows its chart.
func (c *Controller) Search(ctx context.Context, query string) error {
	if err := c.search.Search(ctx, query); err != nil {
		return err
	}
	c.displayChart(ctx)
	return nil
}

// Select views the watchlist entry with id.
func (c *Controller) Select(ctx context.Context, id int64) error {
	snap := c.store.Snapshot()
	e, ok := snap.EntryByID(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntry, id)
	}
	return c.Search(ctx, e.Symbol)
}

// ToggleWatchlist adds the viewed stock to the watchlist, or removes it when
// it is already there.
func (c *Controller) ToggleWatchlist(ctx context.Context) error {
	snap := c.store.Snapshot()
	if snap.StockData == nil {
		return ErrNoStock
	}
	if !snap.Watched() {
		if _, err := c.sync.Add(ctx, model.DraftFromSnapshot(*snap.StockData)); err != nil {
			return &UserError{Message: MsgActionFailed, Err: err}
		}
		return nil
	}
	if err := c.sync.Remove(ctx); err != nil {
		return &UserError{Message: MsgRemoveFailed, Err: err}
	}
	return nil
}

// ChangeRange redraws the chart of the viewed stock for a range label.
func (c *Controller) ChangeRange(ctx context.Context, label string) error {
	err := c.charts.ChangeRange(ctx, label)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chart.ErrUnknownRange), errors.Is(err, chart.ErrNoStock):
		return err
	default:
		slog.Warn("chart update failed", "range", label, "error", err)
		return nil
	}
}

func (c *Controller) displayChart(ctx context.Context) {
	if err := c.charts.Display(ctx); err != nil {
		slog.Warn("chart build failed", "error", err)
	}
}
