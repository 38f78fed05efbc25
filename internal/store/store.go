// Package store persists watchlist entries behind the REST backend.
package store

import (
	"context"
	"errors"

	"StockWatch/internal/model"
)

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = errors.New("watchlist entry not found")

// WatchlistStore persists watchlist entries.
type WatchlistStore interface {
	List(ctx context.Context) ([]model.WatchlistEntry, error)
	Get(ctx context.Context, id int64) (model.WatchlistEntry, error)
	Create(ctx context.Context, draft model.WatchlistDraft) (model.WatchlistEntry, error)
	Update(ctx context.Context, entry model.WatchlistEntry) (model.WatchlistEntry, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
