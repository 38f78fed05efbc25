// Package search resolves a ticker query into the viewed stock and its news.
package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"StockWatch/internal/model"
	"StockWatch/internal/state"
)

// ErrEmptyQuery is returned for a blank query.
var ErrEmptyQuery = errors.New("empty search query")

// Source supplies summaries and news.
type Source interface {
	Summary(ctx context.Context, symbol string) (*model.StockSnapshot, error)
	News(ctx context.Context, symbol string) ([]model.NewsItem, error)
}

// Coordinator runs the summary and news lookups for one query.
type Coordinator struct {
	source Source
	store  *state.Store
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(source Source, store *state.Store) *Coordinator {
	return &Coordinator{source: source, store: store}
}

// Normalize trims and upper-cases a ticker query.
func Normalize(query string) string {
	return strings.ToUpper(strings.TrimSpace(query))
}

// Search fetches the summary and news for query concurrently and applies each
// result as it arrives. A failed lookup is logged and leaves its field stale.
// Results of a search superseded by a later one are dropped.
func (c *Coordinator) Search(ctx context.Context, query string) error {
	symbol := Normalize(query)
	if symbol == "" {
		return ErrEmptyQuery
	}
	tok := c.store.Begin(state.TargetView)

	var g errgroup.Group
	g.Go(func() error {
		snap, err := c.source.Summary(ctx, symbol)
		if err != nil {
			slog.Warn("stock summary failed", "symbol", symbol, "error", err)
			return nil
		}
		c.store.ApplyAt(tok, state.StockData(snap))
		return nil
	})
	g.Go(func() error {
		items, err := c.source.News(ctx, symbol)
		if err != nil {
			slog.Warn("stock news failed", "symbol", symbol, "error", err)
			return nil
		}
		c.store.ApplyAt(tok, state.NewsData(Cap(items)))
		return nil
	})
	return g.Wait()
}

// Cap keeps at most model.MaxNewsItems items.
func Cap(items []model.NewsItem) []model.NewsItem {
	if len(items) > model.MaxNewsItems {
		return items[:model.MaxNewsItems]
	}
	return items
}
