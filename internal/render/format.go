// Package render turns application snapshots into views.
package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// Change colours. Both the header and watchlist rows use them.
const (
	UpColor   = "rgb(4, 176, 81)"
	DownColor = "rgb(235, 15, 42)"
)

// SummaryLimit is the number of summary characters shown on a news card.
const SummaryLimit = 230

// FormatChange renders a change to 2 decimals with an explicit "+ " for
// non-negative values.
func FormatChange(change float64) string {
	s := decimal.NewFromFloat(change).StringFixed(2)
	if change >= 0 {
		return "+ " + s
	}
	return s
}

// FormatPrice renders a price to 2 decimals.
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// ChangeColor picks the colour for a change value.
func ChangeColor(change float64) string {
	if change >= 0 {
		return UpColor
	}
	return DownColor
}

// Truncate shortens s to SummaryLimit characters followed by " ...".
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= SummaryLimit {
		return s
	}
	return string(r[:SummaryLimit]) + " ..."
}

// FormatNewsTime renders an epoch as day/month hour:minute in loc.
func FormatNewsTime(epoch int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.Unix(epoch, 0).In(loc).Format("02/01, 15:04")
}
