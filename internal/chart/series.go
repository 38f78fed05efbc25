// Package chart turns raw historical series into chart-ready configs.
package chart

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"StockWatch/internal/model"
)

// Dataset styling for the price chart.
const (
	LowLabel   = "Daily Low"
	CloseLabel = "Close Price"
	HighLabel  = "Daily High"

	lowColor       = "darkred"
	closeColor     = "rgb(21, 220, 220)"
	closeFillColor = "rgba(21, 220, 220, 0.3)"
	highColor      = "green"
	volumeColor    = "grey"
	titleColor     = "white"
	canvasColor    = "whitesmoke"
)

// Volume scale labels.
const (
	VolumeBillions  = "Volume(billions)"
	VolumeMillions  = "Volume(millions)"
	VolumeThousands = "Volume(thousands)"
)

// FormatLabels renders timestamps as numeric month/day ("1/15") in loc.
// It always returns a fresh slice.
func FormatLabels(timestamps []int64, loc *time.Location) []string {
	if loc == nil {
		loc = time.UTC
	}
	labels := make([]string, len(timestamps))
	for i, ts := range timestamps {
		labels[i] = time.Unix(ts, 0).In(loc).Format("1/2")
	}
	return labels
}

// ScaleVolume picks one unit for the whole series from its minimum value and
// returns the unit label with every value converted and rounded to 2 decimals.
// A series whose minimum is under a thousand is left unscaled with an empty label.
func ScaleVolume(volume []float64) (string, []float64) {
	scaled := make([]float64, len(volume))
	if len(volume) == 0 {
		return "", scaled
	}

	lowest := volume[0]
	for _, v := range volume[1:] {
		lowest = math.Min(lowest, v)
	}

	var label string
	var unit float64
	switch {
	case lowest >= 1e9:
		label, unit = VolumeBillions, 1e9
	case lowest >= 1e6:
		label, unit = VolumeMillions, 1e6
	case lowest >= 1e3:
		label, unit = VolumeThousands, 1e3
	}

	for i, v := range volume {
		if unit == 0 {
			scaled[i] = round2(v)
			continue
		}
		scaled[i] = round2(math.Abs(v) / unit)
	}
	return label, scaled
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func backgroundPlugin() []model.ChartPlugin {
	return []model.ChartPlugin{{ID: model.BackgroundPluginID, Color: canvasColor}}
}

// LineConfig builds the low/close/high price chart.
func LineConfig(labels []string, s *model.RawSeries, title string) model.ChartConfig {
	return model.ChartConfig{
		Type: "line",
		Data: model.ChartDisplayData{
			Labels: labels,
			Datasets: []model.Dataset{
				{Label: LowLabel, Data: s.Low, BorderColor: lowColor},
				{Label: CloseLabel, Data: s.Close, BorderColor: closeColor, BackgroundColor: closeFillColor},
				{Label: HighLabel, Data: s.High, BorderColor: highColor},
			},
		},
		Options: model.ChartOptions{
			Responsive: false,
			Title:      &model.ChartTitle{Display: true, Text: title, Color: titleColor},
		},
		Plugins: backgroundPlugin(),
	}
}

// BarConfig builds the volume chart with a single scale for every bar.
func BarConfig(labels []string, volume []float64) model.ChartConfig {
	label, scaled := ScaleVolume(volume)
	return model.ChartConfig{
		Type: "bar",
		Data: model.ChartDisplayData{
			Labels:   labels,
			Datasets: []model.Dataset{{Label: label, Data: scaled, BackgroundColor: volumeColor}},
		},
		Options: model.ChartOptions{Responsive: false},
		Plugins: backgroundPlugin(),
	}
}

// FromSeries validates s and builds both chart configs from it.
func FromSeries(symbol, interval, rangeLabel string, s *model.RawSeries, loc *time.Location) (*model.ChartsData, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	labels := FormatLabels(s.Timestamps, loc)
	return &model.ChartsData{
		Symbol:     symbol,
		Interval:   interval,
		Range:      rangeLabel,
		DateLabels: labels,
		Line:       LineConfig(labels, s, rangeLabel),
		Bar:        BarConfig(labels, s.Volume),
	}, nil
}
