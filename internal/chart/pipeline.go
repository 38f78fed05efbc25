package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"StockWatch/internal/model"
	"StockWatch/internal/state"
)

var (
	// ErrUnknownRange is returned for a range label outside Ranges.
	ErrUnknownRange = errors.New("unknown chart range")
	// ErrNoStock is returned when a chart is requested with no stock in view.
	ErrNoStock = errors.New("no stock in view")
)

// DefaultInterval is the bar size of every chart.
const DefaultInterval = "1d"

// DefaultRange is the range label used when a new stock comes into view.
const DefaultRange = "1M"

// Range maps a button label to the provider's range parameter.
type Range struct {
	Label string
	Value string
}

// Ranges lists the selectable chart ranges in display order.
var Ranges = []Range{
	{"5D", "5d"},
	{"1M", "1mo"},
	{"3M", "3mo"},
	{"6M", "6mo"},
	{"1Y", "1y"},
}

// RangeValue returns the provider parameter for label.
func RangeValue(label string) (string, bool) {
	for _, r := range Ranges {
		if r.Label == label {
			return r.Value, true
		}
	}
	return "", false
}

// Fetcher supplies raw series.
type Fetcher interface {
	Chart(ctx context.Context, symbol, interval, rng string) (*model.RawSeries, error)
}

// Pipeline fetches series for the viewed stock and stores the built charts.
type Pipeline struct {
	fetcher  Fetcher
	store    *state.Store
	loc      *time.Location
	interval string
	rng      string
}

// NewPipeline creates a pipeline. Labels are formatted in loc.
func NewPipeline(f Fetcher, store *state.Store, loc *time.Location) *Pipeline {
	return &Pipeline{fetcher: f, store: store, loc: loc, interval: DefaultInterval, rng: DefaultRange}
}

// SetDefaults overrides the interval and range label used by Display.
func (p *Pipeline) SetDefaults(interval, rangeLabel string) error {
	if _, ok := RangeValue(rangeLabel); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRange, rangeLabel)
	}
	if interval != "" {
		p.interval = interval
	}
	p.rng = rangeLabel
	return nil
}

// Build fetches one series and turns it into chart data. A malformed series
// is reported as an error wrapping model.ErrSeriesLength.
func (p *Pipeline) Build(ctx context.Context, symbol, interval, rangeLabel string) (*model.ChartsData, error) {
	value, ok := RangeValue(rangeLabel)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRange, rangeLabel)
	}
	series, err := p.fetcher.Chart(ctx, symbol, interval, value)
	if err != nil {
		return nil, fmt.Errorf("fetch chart %s %s: %w", symbol, rangeLabel, err)
	}
	data, err := FromSeries(symbol, interval, rangeLabel, series, p.loc)
	if err != nil {
		return nil, fmt.Errorf("build chart %s: %w", symbol, err)
	}
	return data, nil
}

// Display builds the default chart for the viewed stock unless it was
// already built for the same symbol. With no stock in view it does nothing.
func (p *Pipeline) Display(ctx context.Context) error {
	var target *model.StockSnapshot
	p.store.Update(func(cur model.ApplicationState) state.Patch {
		if cur.StockData == nil {
			return state.Patch{}
		}
		if cur.PreviousStockData != nil && cur.PreviousStockData.Symbol == cur.StockData.Symbol {
			return state.Patch{}
		}
		target = cur.StockData
		return state.PreviousStockData(cur.StockData)
	})
	if target == nil {
		return nil
	}
	return p.load(ctx, target.Symbol, p.interval, p.rng)
}

// ChangeRange rebuilds the chart of the viewed stock for rangeLabel.
func (p *Pipeline) ChangeRange(ctx context.Context, rangeLabel string) error {
	if _, ok := RangeValue(rangeLabel); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRange, rangeLabel)
	}
	sd := p.store.Snapshot().StockData
	if sd == nil {
		return ErrNoStock
	}
	return p.load(ctx, sd.Symbol, p.interval, rangeLabel)
}

func (p *Pipeline) load(ctx context.Context, symbol, interval, rangeLabel string) error {
	tok := p.store.Begin(state.TargetChart)
	data, err := p.Build(ctx, symbol, interval, rangeLabel)
	if err != nil {
		return err
	}
	p.store.ApplyAt(tok, state.ChartsData(data))
	return nil
}
