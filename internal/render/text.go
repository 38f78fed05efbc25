package render

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"StockWatch/internal/model"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
)

// Text renders the full view as plain text on every pass.
type Text struct {
	mu      sync.Mutex
	w       io.Writer
	newsLoc *time.Location
	color   bool
}

// NewText creates a text sink. color enables ANSI colouring of changes.
func NewText(w io.Writer, newsLoc *time.Location, color bool) *Text {
	return &Text{w: w, newsLoc: newsLoc, color: color}
}

func (t *Text) paint(change float64, s string) string {
	if !t.color {
		return s
	}
	if change >= 0 {
		return ansiGreen + s + ansiReset
	}
	return ansiRed + s + ansiReset
}

// Render writes the header, news, watchlist and chart sections.
func (t *Text) Render(s model.ApplicationState) {
	var b strings.Builder
	b.WriteString("==== StockWatch ====\n")
	t.header(&b, s)
	t.news(&b, s.NewsData)
	t.watchlist(&b, s)
	chartSummary(&b, s.ChartsData)

	t.mu.Lock()
	defer t.mu.Unlock()
	io.WriteString(t.w, b.String())
}

func (t *Text) header(b *strings.Builder, s model.ApplicationState) {
	sd := s.StockData
	if sd == nil {
		b.WriteString("No stock selected. Try: search AAPL\n")
		return
	}
	action := "Add to watchlist"
	if s.Watched() {
		action = "Remove from watchlist"
	}
	fmt.Fprintf(b, "%s  %s\n", sd.Symbol, sd.ShortName)
	fmt.Fprintf(b, "%s  %s   [toggle: %s]\n",
		FormatPrice(sd.CurrentPrice),
		t.paint(sd.CurrentChange, FormatChange(sd.CurrentChange)),
		action)
}

func (t *Text) news(b *strings.Builder, items []model.NewsItem) {
	if len(items) == 0 {
		return
	}
	b.WriteString("\n-- News --\n")
	for i, n := range items {
		if i == model.MaxNewsItems {
			break
		}
		fmt.Fprintf(b, "%s | %s\n", n.Publisher, FormatNewsTime(n.PublishedAt, t.newsLoc))
		fmt.Fprintf(b, "  %s\n", n.Title)
		if n.Summary != "" {
			fmt.Fprintf(b, "  %s\n", Truncate(n.Summary))
		}
		fmt.Fprintf(b, "  %s\n", n.URL)
	}
}

func (t *Text) watchlist(b *strings.Builder, s model.ApplicationState) {
	b.WriteString("\n-- Watchlist --\n")
	if len(s.WatchList) == 0 {
		b.WriteString("(empty)\n")
		return
	}
	for _, e := range s.WatchList {
		marker := " "
		if s.SelectedStock != nil && *s.SelectedStock == e.ID {
			marker = ">"
		}
		arrow := "▲"
		if e.CurrentChange < 0 {
			arrow = "▼"
		}
		fmt.Fprintf(b, "%s [%d] %-6s %10s %s %s  %s\n",
			marker, e.ID, e.Symbol, FormatPrice(e.Price),
			t.paint(e.CurrentChange, arrow),
			t.paint(e.CurrentChange, FormatPrice(e.CurrentChange)),
			e.Name)
	}
}

func chartSummary(b *strings.Builder, c *model.ChartsData) {
	if c == nil {
		return
	}
	n := len(c.DateLabels)
	b.WriteString("\n-- Chart --\n")
	if n == 0 {
		fmt.Fprintf(b, "%s %s: no data\n", c.Symbol, c.Range)
		return
	}
	closes := c.Line.Data.Datasets[1].Data
	fmt.Fprintf(b, "%s %s (%s): %s .. %s, close %s -> %s\n",
		c.Symbol, c.Range, c.Interval,
		c.DateLabels[0], c.DateLabels[n-1],
		FormatPrice(closes[0]), FormatPrice(closes[len(closes)-1]))
	if vol := c.Bar.Data.Datasets[0]; vol.Label != "" {
		fmt.Fprintf(b, "%s: last %v\n", vol.Label, vol.Data[len(vol.Data)-1])
	}
}
