package state

import "StockWatch/internal/model"

type field uint8

const (
	fieldWatchList field = 1 << iota
	fieldStockData
	fieldPreviousStockData
	fieldNewsData
	fieldChartsData
)

// Patch is a partial update naming the top-level fields it replaces.
// The zero Patch changes nothing.
type Patch struct {
	set field
	v   model.ApplicationState
}

// Empty reports whether the patch names no field.
func (p Patch) Empty() bool { return p.set == 0 }

// WatchList replaces the watchlist.
func WatchList(entries []model.WatchlistEntry) Patch {
	return Patch{set: fieldWatchList, v: model.ApplicationState{
		WatchList: append([]model.WatchlistEntry{}, entries...),
	}}
}

// StockData replaces the viewed stock. nil clears it.
func StockData(s *model.StockSnapshot) Patch {
	return Patch{set: fieldStockData, v: model.ApplicationState{StockData: copySnapshot(s)}}
}

// PreviousStockData replaces the snapshot the chart was last built for.
func PreviousStockData(s *model.StockSnapshot) Patch {
	return Patch{set: fieldPreviousStockData, v: model.ApplicationState{PreviousStockData: copySnapshot(s)}}
}

// NewsData replaces the news collection.
func NewsData(items []model.NewsItem) Patch {
	c := model.ApplicationState{NewsData: items}.Clone()
	if c.NewsData == nil {
		c.NewsData = []model.NewsItem{}
	}
	return Patch{set: fieldNewsData, v: model.ApplicationState{NewsData: c.NewsData}}
}

// ChartsData replaces the chart state.
func ChartsData(c *model.ChartsData) Patch {
	return Patch{set: fieldChartsData, v: model.ApplicationState{ChartsData: c.Clone()}}
}

// Merge combines patches into one transition. Later patches win per field.
func Merge(ps ...Patch) Patch {
	var out Patch
	for _, p := range ps {
		out = out.with(p)
	}
	return out
}

func (p Patch) with(o Patch) Patch {
	if o.set&fieldWatchList != 0 {
		p.v.WatchList = o.v.WatchList
	}
	if o.set&fieldStockData != 0 {
		p.v.StockData = o.v.StockData
	}
	if o.set&fieldPreviousStockData != 0 {
		p.v.PreviousStockData = o.v.PreviousStockData
	}
	if o.set&fieldNewsData != 0 {
		p.v.NewsData = o.v.NewsData
	}
	if o.set&fieldChartsData != 0 {
		p.v.ChartsData = o.v.ChartsData
	}
	p.set |= o.set
	return p
}

// apply returns base with the patched fields replaced and the selection re-derived.
func (p Patch) apply(base model.ApplicationState) model.ApplicationState {
	next := base
	next.SelectedStock = nil
	if p.set&fieldWatchList != 0 {
		next.WatchList = p.v.WatchList
	}
	if p.set&fieldStockData != 0 {
		next.StockData = p.v.StockData
	}
	if p.set&fieldPreviousStockData != 0 {
		next.PreviousStockData = p.v.PreviousStockData
	}
	if p.set&fieldNewsData != 0 {
		next.NewsData = p.v.NewsData
	}
	if p.set&fieldChartsData != 0 {
		next.ChartsData = p.v.ChartsData
	}
	if next.StockData != nil {
		if e, ok := next.EntryBySymbol(next.StockData.Symbol); ok {
			id := e.ID
			next.SelectedStock = &id
		}
	}
	return next
}

func copySnapshot(s *model.StockSnapshot) *model.StockSnapshot {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
