package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrSeriesLength is returned when the columns of a RawSeries differ in length.
var ErrSeriesLength = errors.New("series columns have unequal length")

// Quote is one element of a batch quote response.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"regularMarketPrice"`
	Change float64 `json:"regularMarketChange"`
}

// RawSeries holds the parallel columns of a historical chart response.
// Index i of every column describes the bar at Timestamps[i].
type RawSeries struct {
	Timestamps []int64   `json:"timestamps"`
	Low        []float64 `json:"low"`
	Close      []float64 `json:"close"`
	High       []float64 `json:"high"`
	Volume     []float64 `json:"volume"`
}

// Len returns the number of bars.
func (s *RawSeries) Len() int { return len(s.Timestamps) }

// Validate checks that all five columns have the same length.
func (s *RawSeries) Validate() error {
	n := len(s.Timestamps)
	for name, col := range map[string]int{
		"low":    len(s.Low),
		"close":  len(s.Close),
		"high":   len(s.High),
		"volume": len(s.Volume),
	} {
		if col != n {
			return fmt.Errorf("%w: %s has %d points, timestamps has %d", ErrSeriesLength, name, col, n)
		}
	}
	return nil
}

// Time returns the bar time at index i.
func (s *RawSeries) Time(i int) time.Time {
	return time.Unix(s.Timestamps[i], 0)
}
