package market

import (
	"context"

	"StockWatch/internal/model"
)

// Client fetches market data for the watch client.
type Client interface {
	// Quotes returns live quotes for symbols in a single batch request.
	Quotes(ctx context.Context, symbols []string) ([]model.Quote, error)
	// Summary returns the headline snapshot for one symbol.
	Summary(ctx context.Context, symbol string) (*model.StockSnapshot, error)
	// News returns the articles related to symbol, uncapped.
	News(ctx context.Context, symbol string) ([]model.NewsItem, error)
	// Chart returns the historical series for symbol.
	Chart(ctx context.Context, symbol, interval, rng string) (*model.RawSeries, error)
	Name() string
}
