package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"StockWatch/internal/backend"
	"StockWatch/internal/chart"
	"StockWatch/internal/market"
	"StockWatch/internal/model"
	"StockWatch/internal/search"
	"StockWatch/internal/server"
	"StockWatch/internal/state"
	"StockWatch/internal/store"
	"StockWatch/internal/watchlist"
)

type harness struct {
	ctl     *Controller
	market  *market.Mock
	backend *store.MemoryStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mem := store.NewMemoryStore()
	srv := httptest.NewServer(server.New(mem, nil, nil).Handler())
	t.Cleanup(srv.Close)

	m := &market.Mock{
		SummaryFn: func(_ context.Context, symbol string) (*model.StockSnapshot, error) {
			return &model.StockSnapshot{Symbol: symbol, ShortName: symbol + " Corp", CurrentPrice: 100, CurrentChange: -1}, nil
		},
		ChartFn: func(context.Context, string, string, string) (*model.RawSeries, error) {
			return &model.RawSeries{
				Timestamps: []int64{1705320000},
				Low:        []float64{1},
				Close:      []float64{2},
				High:       []float64{3},
				Volume:     []float64{4e6},
			}, nil
		},
		QuotesFn: func(_ context.Context, symbols []string) ([]model.Quote, error) {
			out := make([]model.Quote, len(symbols))
			for i, s := range symbols {
				out[i] = model.Quote{Symbol: s, Price: 123, Change: 4}
			}
			return out, nil
		},
	}

	st := state.New()
	ctl := NewController(st,
		watchlist.NewSync(backend.NewClient(srv.URL), m, st),
		search.NewCoordinator(m, st),
		chart.NewPipeline(m, st, time.UTC),
	)
	return &harness{ctl: ctl, market: m, backend: mem}
}

func TestStart_LoadsAndRefreshes(t *testing.T) {
	h := newHarness(t)
	h.backend.Create(context.Background(), model.WatchlistDraft{Symbol: "AAPL", Price: 1})

	if err := h.ctl.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	wl := h.ctl.Store().Snapshot().WatchList
	if len(wl) != 1 || wl[0].Price != 123 {
		t.Errorf("expected refreshed price, got %+v", wl)
	}
	stored, _ := h.backend.Get(context.Background(), wl[0].ID)
	if stored.Price != 123 {
		t.Errorf("expected price written back, got %+v", stored)
	}
}

func TestStart_LoadFailureIsFatal(t *testing.T) {
	st := state.New()
	m := &market.Mock{}
	ctl := NewController(st,
		watchlist.NewSync(backend.NewClient("http://127.0.0.1:1"), m, st),
		search.NewCoordinator(m, st),
		chart.NewPipeline(m, st, time.UTC),
	)
	if err := ctl.Start(context.Background()); err == nil {
		t.Errorf("expected load error")
	}
}

func TestSearch_ShowsChart(t *testing.T) {
	h := newHarness(t)
	if err := h.ctl.Search(context.Background(), "msft"); err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	snap := h.ctl.Store().Snapshot()
	if snap.StockData == nil || snap.StockData.Symbol != "MSFT" {
		t.Fatalf("unexpected stock: %+v", snap.StockData)
	}
	if snap.ChartsData == nil || snap.ChartsData.Symbol != "MSFT" {
		t.Errorf("expected MSFT chart, got %+v", snap.ChartsData)
	}
	if label := snap.ChartsData.Bar.Data.Datasets[0].Label; label != chart.VolumeMillions {
		t.Errorf("expected millions label, got %q", label)
	}

	h.ctl.Search(context.Background(), "MSFT")
	if h.market.Calls("Chart") != 1 {
		t.Errorf("expected chart fetched once for repeated symbol, got %d", h.market.Calls("Chart"))
	}
}

func TestToggleWatchlist_AddThenRemove(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.ctl.Start(ctx)
	h.ctl.Search(ctx, "TSLA")

	if err := h.ctl.ToggleWatchlist(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap := h.ctl.Store().Snapshot()
	if len(snap.WatchList) != 1 || snap.WatchList[0].Symbol != "TSLA" {
		t.Fatalf("expected TSLA added, got %+v", snap.WatchList)
	}
	if snap.SelectedStock == nil || *snap.SelectedStock != snap.WatchList[0].ID {
		t.Errorf("expected new entry selected, got %v", snap.SelectedStock)
	}

	if err := h.ctl.ToggleWatchlist(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	snap = h.ctl.Store().Snapshot()
	if len(snap.WatchList) != 0 || snap.SelectedStock != nil {
		t.Errorf("expected empty watchlist and no selection, got %+v", snap)
	}
	if list, _ := h.backend.List(ctx); len(list) != 0 {
		t.Errorf("expected backend empty, got %+v", list)
	}
}

func TestToggleWatchlist_NoStock(t *testing.T) {
	h := newHarness(t)
	err := h.ctl.ToggleWatchlist(context.Background())
	msg, ok := UserMessage(err)
	if !ok || msg != MsgActionFailed {
		t.Errorf("expected user-facing action error, got %v", err)
	}
}

func TestSelect(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	e, _ := h.backend.Create(ctx, model.WatchlistDraft{Symbol: "NVDA"})
	h.ctl.Start(ctx)

	if err := h.ctl.Select(ctx, e.ID); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	snap := h.ctl.Store().Snapshot()
	if snap.StockData.Symbol != "NVDA" || snap.SelectedStock == nil || *snap.SelectedStock != e.ID {
		t.Errorf("expected NVDA viewed and selected, got %+v", snap)
	}
	if err := h.ctl.Select(ctx, 999); !errors.Is(err, ErrUnknownEntry) {
		t.Errorf("expected ErrUnknownEntry, got %v", err)
	}
}

func TestChangeRange(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	if err := h.ctl.ChangeRange(ctx, "1Y"); !errors.Is(err, chart.ErrNoStock) {
		t.Errorf("expected ErrNoStock, got %v", err)
	}
	h.ctl.Search(ctx, "AAPL")
	if err := h.ctl.ChangeRange(ctx, "1Y"); err != nil {
		t.Fatalf("ChangeRange() error: %v", err)
	}
	if got := h.ctl.Store().Snapshot().ChartsData.Range; got != "1Y" {
		t.Errorf("expected 1Y, got %s", got)
	}
}

func TestUserError_Unwrap(t *testing.T) {
	err := &UserError{Message: MsgRemoveFailed, Err: watchlist.ErrNoSelection}
	if !errors.Is(err, watchlist.ErrNoSelection) {
		t.Errorf("expected UserError to unwrap")
	}
}
