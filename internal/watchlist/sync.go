// Package watchlist keeps the local watchlist in step with the persistence
// backend and refreshes its prices from the market-data API.
package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"StockWatch/internal/model"
	"StockWatch/internal/state"
)

// ErrNoSelection is returned by Remove when no watchlist entry is selected.
var ErrNoSelection = errors.New("no watchlist entry selected")

// Backend persists watchlist entries.
type Backend interface {
	List(ctx context.Context) ([]model.WatchlistEntry, error)
	Create(ctx context.Context, draft model.WatchlistDraft) (model.WatchlistEntry, error)
	Delete(ctx context.Context, id int64) error
	Patch(ctx context.Context, entry model.WatchlistEntry) error
}

// Quoter fetches live quotes in one batch.
type Quoter interface {
	Quotes(ctx context.Context, symbols []string) ([]model.Quote, error)
}

// DefaultPatchConcurrency bounds the PATCH requests issued by one refresh.
const DefaultPatchConcurrency = 4

// Sync runs watchlist operations against the backend and the state store.
type Sync struct {
	backend Backend
	quotes  Quoter
	store   *state.Store

	PatchConcurrency int
}

// NewSync creates a Sync.
func NewSync(backend Backend, quotes Quoter, store *state.Store) *Sync {
	return &Sync{
		backend:          backend,
		quotes:           quotes,
		store:            store,
		PatchConcurrency: DefaultPatchConcurrency,
	}
}

// Load replaces the local watchlist with the backend's. A failure leaves the
// state untouched and must be treated as fatal by the caller.
func (s *Sync) Load(ctx context.Context) error {
	entries, err := s.backend.List(ctx)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}
	s.store.Apply(state.WatchList(entries))
	slog.Info("watchlist loaded", "entries", len(entries))
	return nil
}

// Add persists draft and appends the stored entry locally. On failure nothing
// changes locally.
func (s *Sync) Add(ctx context.Context, draft model.WatchlistDraft) (model.WatchlistEntry, error) {
	entry, err := s.backend.Create(ctx, draft)
	if err != nil {
		return model.WatchlistEntry{}, fmt.Errorf("add %s to watchlist: %w", draft.Symbol, err)
	}
	s.store.Update(func(cur model.ApplicationState) state.Patch {
		return state.WatchList(append(cur.WatchList, entry))
	})
	slog.Info("watchlist entry added", "id", entry.ID, "symbol", entry.Symbol)
	return entry, nil
}

// Remove deletes the selected entry. Without a selection it returns
// ErrNoSelection and makes no request.
func (s *Sync) Remove(ctx context.Context) error {
	sel := s.store.Snapshot().SelectedStock
	if sel == nil {
		return ErrNoSelection
	}
	id := *sel

	if err := s.backend.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove watchlist entry %d: %w", id, err)
	}
	s.store.Update(func(cur model.ApplicationState) state.Patch {
		kept := make([]model.WatchlistEntry, 0, len(cur.WatchList))
		for _, e := range cur.WatchList {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return state.WatchList(kept)
	})
	slog.Info("watchlist entry removed", "id", id)
	return nil
}

// Report summarises one price refresh.
type Report struct {
	Requested int // symbols sent in the batch request
	Updated   int // entries that received a quote
	Failed    int // PATCH-backs that failed
}

// RefreshPrices fetches quotes for every watched symbol in one request,
// updates matching entries by symbol and writes each one back. Write-back
// failures are logged and counted, never returned.
func (s *Sync) RefreshPrices(ctx context.Context) (Report, error) {
	var rep Report
	entries := s.store.Snapshot().WatchList
	if len(entries) == 0 {
		return rep, nil
	}

	symbols := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !seen[e.Symbol] {
			seen[e.Symbol] = true
			symbols = append(symbols, e.Symbol)
		}
	}
	rep.Requested = len(symbols)

	quotes, err := s.quotes.Quotes(ctx, symbols)
	if err != nil {
		return rep, fmt.Errorf("refresh prices: %w", err)
	}
	bySymbol := make(map[string]model.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}

	// Apply onto the watchlist as it is now; entries added or removed while
	// the request was in flight are left alone.
	var updated []model.WatchlistEntry
	s.store.Update(func(cur model.ApplicationState) state.Patch {
		changed := false
		for i, e := range cur.WatchList {
			q, ok := bySymbol[e.Symbol]
			if !ok {
				continue
			}
			e.Price = q.Price
			e.CurrentChange = q.Change
			cur.WatchList[i] = e
			updated = append(updated, e)
			changed = true
		}
		if !changed {
			return state.Patch{}
		}
		return state.WatchList(cur.WatchList)
	})
	rep.Updated = len(updated)

	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	if s.PatchConcurrency > 0 {
		g.SetLimit(s.PatchConcurrency)
	}
	for _, e := range updated {
		e := e
		g.Go(func() error {
			if err := s.backend.Patch(gctx, e); err != nil {
				failed.Add(1)
				slog.Warn("watchlist price write-back failed", "id", e.ID, "symbol", e.Symbol, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	rep.Failed = int(failed.Load())

	slog.Debug("watchlist prices refreshed", "requested", rep.Requested, "updated", rep.Updated, "failed", rep.Failed)
	return rep, nil
}
