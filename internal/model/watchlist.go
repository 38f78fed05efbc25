package model

// WatchlistEntry is one tracked ticker as stored by the persistence backend.
type WatchlistEntry struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	CurrentChange float64 `json:"currentChange"`
}

// WatchlistDraft is the body of a create request. The backend assigns the id.
type WatchlistDraft struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	CurrentChange float64 `json:"currentChange"`
}

// Entry returns the draft as an entry carrying id.
func (d WatchlistDraft) Entry(id int64) WatchlistEntry {
	return WatchlistEntry{
		ID:            id,
		Name:          d.Name,
		Symbol:        d.Symbol,
		Price:         d.Price,
		CurrentChange: d.CurrentChange,
	}
}

// DraftFromSnapshot builds the create body for the stock being viewed.
func DraftFromSnapshot(s StockSnapshot) WatchlistDraft {
	return WatchlistDraft{
		Name:          s.ShortName,
		Symbol:        s.Symbol,
		Price:         s.CurrentPrice,
		CurrentChange: s.CurrentChange,
	}
}
