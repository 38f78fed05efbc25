package market

import (
	"context"
	"sync"

	"StockWatch/internal/model"
)

// Mock is a programmable Client for development and testing. Each hook is
// optional; unset hooks return empty results. Calls are counted per method.
type Mock struct {
	QuotesFn  func(ctx context.Context, symbols []string) ([]model.Quote, error)
	SummaryFn func(ctx context.Context, symbol string) (*model.StockSnapshot, error)
	NewsFn    func(ctx context.Context, symbol string) ([]model.NewsItem, error)
	ChartFn   func(ctx context.Context, symbol, interval, rng string) (*model.RawSeries, error)

	mu    sync.Mutex
	calls map[string]int
}

func (m *Mock) Name() string { return "mock" }

func (m *Mock) count(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *Mock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *Mock) Quotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	m.count("Quotes")
	if m.QuotesFn != nil {
		return m.QuotesFn(ctx, symbols)
	}
	return nil, nil
}

func (m *Mock) Summary(ctx context.Context, symbol string) (*model.StockSnapshot, error) {
	m.count("Summary")
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, symbol)
	}
	return &model.StockSnapshot{Symbol: symbol, ShortName: symbol}, nil
}

func (m *Mock) News(ctx context.Context, symbol string) ([]model.NewsItem, error) {
	m.count("News")
	if m.NewsFn != nil {
		return m.NewsFn(ctx, symbol)
	}
	return nil, nil
}

func (m *Mock) Chart(ctx context.Context, symbol, interval, rng string) (*model.RawSeries, error) {
	m.count("Chart")
	if m.ChartFn != nil {
		return m.ChartFn(ctx, symbol, interval, rng)
	}
	return &model.RawSeries{}, nil
}
