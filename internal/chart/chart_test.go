package chart

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"StockWatch/internal/market"
	"StockWatch/internal/model"
	"StockWatch/internal/state"
)

// 2024-01-15 12:00 UTC and the following two days.
var days = []int64{1705320000, 1705406400, 1705492800}

func series(volume ...float64) *model.RawSeries {
	n := len(volume)
	s := &model.RawSeries{
		Timestamps: days[:n],
		Low:        make([]float64, n),
		Close:      make([]float64, n),
		High:       make([]float64, n),
		Volume:     volume,
	}
	for i := 0; i < n; i++ {
		s.Low[i], s.Close[i], s.High[i] = float64(10+i), float64(11+i), float64(12+i)
	}
	return s
}

func TestScaleVolume_Tiers(t *testing.T) {
	tests := []struct {
		name      string
		volume    []float64
		wantLabel string
		want      []float64
	}{
		{"billions", []float64{2.4e9, 3.456789e9}, VolumeBillions, []float64{2.4, 3.46}},
		{"millions", []float64{1.5e6, 2.5e9}, VolumeMillions, []float64{1.5, 2500}},
		{"thousands", []float64{1234, 5678}, VolumeThousands, []float64{1.23, 5.68}},
		{"unscaled", []float64{999.456, 1e6}, "", []float64{999.46, 1e6}},
		{"empty", nil, "", []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, got := ScaleVolume(tt.volume)
			if label != tt.wantLabel {
				t.Errorf("expected label %q, got %q", tt.wantLabel, label)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("value %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestScaleVolume_SingleScaleFromMinimum(t *testing.T) {
	raw := []float64{2.4e9, 5e9, 2.41e9}
	label, got := ScaleVolume(raw)
	if label != VolumeBillions {
		t.Fatalf("expected billions, got %q", label)
	}
	for i, v := range raw {
		want := math.Round(v/1e9*100) / 100
		if got[i] != want {
			t.Errorf("value %d: expected %v, got %v", i, want, got[i])
		}
	}
}

func TestFormatLabels(t *testing.T) {
	got := FormatLabels(days, time.UTC)
	want := []string{"1/15", "1/16", "1/17"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFromSeries_Configs(t *testing.T) {
	data, err := FromSeries("AAPL", "1d", "1M", series(2e6, 3e6), time.UTC)
	if err != nil {
		t.Fatalf("FromSeries() error: %v", err)
	}
	line := data.Line
	if line.Type != "line" || len(line.Data.Datasets) != 3 {
		t.Fatalf("unexpected line config: %+v", line)
	}
	if line.Data.Datasets[1].Label != CloseLabel || line.Data.Datasets[1].BackgroundColor != "rgba(21, 220, 220, 0.3)" {
		t.Errorf("unexpected close dataset: %+v", line.Data.Datasets[1])
	}
	if line.Options.Responsive || line.Options.Title == nil || line.Options.Title.Text != "1M" {
		t.Errorf("unexpected line options: %+v", line.Options)
	}
	if len(line.Plugins) != 1 || line.Plugins[0].ID != model.BackgroundPluginID {
		t.Errorf("expected background plugin, got %+v", line.Plugins)
	}
	bar := data.Bar
	if bar.Type != "bar" || bar.Data.Datasets[0].Label != VolumeMillions || bar.Data.Datasets[0].BackgroundColor != "grey" {
		t.Errorf("unexpected bar config: %+v", bar)
	}
	if len(bar.Data.Labels) != 2 || bar.Data.Labels[0] != "1/15" {
		t.Errorf("unexpected bar labels: %v", bar.Data.Labels)
	}
}

func TestFromSeries_LengthMismatchFailsGracefully(t *testing.T) {
	s := series(1, 2, 3)
	s.Close = s.Close[:2]
	_, err := FromSeries("AAPL", "1d", "1M", s, time.UTC)
	if !errors.Is(err, model.ErrSeriesLength) {
		t.Errorf("expected ErrSeriesLength, got %v", err)
	}
}

func TestDisplay_SameSymbolFetchesOnce(t *testing.T) {
	st := state.New()
	m := &market.Mock{ChartFn: func(_ context.Context, symbol, interval, rng string) (*model.RawSeries, error) {
		if symbol != "TSLA" || interval != "1d" || rng != "1mo" {
			t.Errorf("unexpected request %s %s %s", symbol, interval, rng)
		}
		return series(1e3, 2e3), nil
	}}
	p := NewPipeline(m, st, time.UTC)

	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "TSLA"}))
	if err := p.Display(context.Background()); err != nil {
		t.Fatalf("Display() error: %v", err)
	}
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "TSLA", CurrentPrice: 2}))
	if err := p.Display(context.Background()); err != nil {
		t.Fatalf("Display() error: %v", err)
	}

	if m.Calls("Chart") != 1 {
		t.Errorf("expected one fetch for the same symbol, got %d", m.Calls("Chart"))
	}
	snap := st.Snapshot()
	if snap.ChartsData == nil || snap.ChartsData.Symbol != "TSLA" {
		t.Errorf("expected TSLA chart, got %+v", snap.ChartsData)
	}
	if snap.PreviousStockData == nil || snap.PreviousStockData.Symbol != "TSLA" {
		t.Errorf("expected previous stock recorded, got %+v", snap.PreviousStockData)
	}
}

func TestDisplay_NewSymbolRebuildsLabels(t *testing.T) {
	st := state.New()
	calls := 0
	m := &market.Mock{ChartFn: func(context.Context, string, string, string) (*model.RawSeries, error) {
		calls++
		if calls == 1 {
			return series(1, 2, 3), nil
		}
		return series(1, 2), nil
	}}
	p := NewPipeline(m, st, time.UTC)

	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "AAPL"}))
	p.Display(context.Background())
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "MSFT"}))
	p.Display(context.Background())

	cd := st.Snapshot().ChartsData
	if cd.Symbol != "MSFT" {
		t.Errorf("expected MSFT chart, got %s", cd.Symbol)
	}
	if len(cd.DateLabels) != 2 || len(cd.Line.Data.Labels) != 2 {
		t.Errorf("expected labels rebuilt to 2 entries, got %v", cd.DateLabels)
	}
}

func TestDisplay_NoStockIsNoop(t *testing.T) {
	m := &market.Mock{}
	if err := NewPipeline(m, state.New(), time.UTC).Display(context.Background()); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if m.Calls("Chart") != 0 {
		t.Errorf("expected no fetch")
	}
}

func TestDisplay_FailureLeavesChartStale(t *testing.T) {
	st := state.New()
	fail := false
	m := &market.Mock{ChartFn: func(context.Context, string, string, string) (*model.RawSeries, error) {
		if fail {
			return nil, errors.New("upstream 500")
		}
		return series(1, 2), nil
	}}
	p := NewPipeline(m, st, time.UTC)
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "AAPL"}))
	p.Display(context.Background())

	fail = true
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "MSFT"}))
	if err := p.Display(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if got := st.Snapshot().ChartsData.Symbol; got != "AAPL" {
		t.Errorf("expected stale AAPL chart, got %s", got)
	}
}

func TestChangeRange(t *testing.T) {
	st := state.New()
	var gotRange string
	m := &market.Mock{ChartFn: func(_ context.Context, _, _, rng string) (*model.RawSeries, error) {
		gotRange = rng
		return series(1, 2), nil
	}}
	p := NewPipeline(m, st, time.UTC)

	if err := p.ChangeRange(context.Background(), "3M"); !errors.Is(err, ErrNoStock) {
		t.Errorf("expected ErrNoStock, got %v", err)
	}
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "AAPL"}))
	if err := p.ChangeRange(context.Background(), "10Y"); !errors.Is(err, ErrUnknownRange) {
		t.Errorf("expected ErrUnknownRange, got %v", err)
	}
	if err := p.ChangeRange(context.Background(), "3M"); err != nil {
		t.Fatalf("ChangeRange() error: %v", err)
	}
	if gotRange != "3mo" {
		t.Errorf("expected 3mo, got %q", gotRange)
	}
	cd := st.Snapshot().ChartsData
	if cd.Range != "3M" || cd.Line.Options.Title.Text != "3M" {
		t.Errorf("unexpected chart range: %+v", cd)
	}
}

func TestChangeRange_StaleBuildDiscarded(t *testing.T) {
	st := state.New()
	st.Apply(state.StockData(&model.StockSnapshot{Symbol: "AAPL"}))

	release := make(chan struct{})
	started := make(chan struct{})
	m := &market.Mock{ChartFn: func(_ context.Context, _, _, rng string) (*model.RawSeries, error) {
		if rng == "1y" {
			close(started)
			<-release
		}
		return series(1, 2), nil
	}}
	p := NewPipeline(m, st, time.UTC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.ChangeRange(context.Background(), "1Y")
	}()
	<-started
	if err := p.ChangeRange(context.Background(), "5D"); err != nil {
		t.Fatalf("ChangeRange() error: %v", err)
	}
	close(release)
	wg.Wait()

	if got := st.Snapshot().ChartsData.Range; got != "5D" {
		t.Errorf("expected the later request to win, got %s", got)
	}
}
