package model

// StockSnapshot is the summary of the stock currently being viewed.
type StockSnapshot struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"shortName"`
	CurrentPrice  float64 `json:"currentPrice"`
	CurrentChange float64 `json:"currentChange"`
}

// MaxNewsItems caps the news collection kept per query.
const MaxNewsItems = 10

// NewsItem is a single article related to the viewed stock.
type NewsItem struct {
	Title       string  `json:"title"`
	URL         string  `json:"url"`
	Publisher   string  `json:"publisher"`
	PublishedAt int64   `json:"publishedAt"`
	Summary     string  `json:"summary"`
	Img         *string `json:"img,omitempty"`
}
