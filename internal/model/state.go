package model

// ApplicationState is the single view snapshot rendered on every change.
type ApplicationState struct {
	WatchList         []WatchlistEntry `json:"watchList"`
	SelectedStock     *int64           `json:"selectedStock"`
	StockData         *StockSnapshot   `json:"stockData"`
	PreviousStockData *StockSnapshot   `json:"previousStockData"`
	NewsData          []NewsItem       `json:"newsData"`
	ChartsData        *ChartsData      `json:"chartsData"`
}

// EntryBySymbol returns the watchlist entry tracking symbol.
func (s *ApplicationState) EntryBySymbol(symbol string) (WatchlistEntry, bool) {
	for _, e := range s.WatchList {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return WatchlistEntry{}, false
}

// EntryByID returns the watchlist entry with the given id.
func (s *ApplicationState) EntryByID(id int64) (WatchlistEntry, bool) {
	for _, e := range s.WatchList {
		if e.ID == id {
			return e, true
		}
	}
	return WatchlistEntry{}, false
}

// Watched reports whether the viewed stock is in the watchlist.
func (s *ApplicationState) Watched() bool {
	if s.StockData == nil {
		return false
	}
	_, ok := s.EntryBySymbol(s.StockData.Symbol)
	return ok
}

// Clone returns a deep copy that shares no memory with s.
func (s ApplicationState) Clone() ApplicationState {
	out := ApplicationState{ChartsData: s.ChartsData.Clone()}
	if s.WatchList != nil {
		out.WatchList = make([]WatchlistEntry, len(s.WatchList))
		copy(out.WatchList, s.WatchList)
	}
	if s.SelectedStock != nil {
		id := *s.SelectedStock
		out.SelectedStock = &id
	}
	if s.StockData != nil {
		sd := *s.StockData
		out.StockData = &sd
	}
	if s.PreviousStockData != nil {
		pd := *s.PreviousStockData
		out.PreviousStockData = &pd
	}
	if s.NewsData != nil {
		out.NewsData = make([]NewsItem, len(s.NewsData))
		for i, n := range s.NewsData {
			if n.Img != nil {
				img := *n.Img
				n.Img = &img
			}
			out.NewsData[i] = n
		}
	}
	return out
}
