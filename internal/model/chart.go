package model

// BackgroundPluginID names the chart plugin that paints the canvas before drawing.
const BackgroundPluginID = "custom_canvas_background_color"

// Dataset is one plotted series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor,omitempty"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

// ChartDisplayData is the labels plus datasets of one chart.
type ChartDisplayData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ChartTitle is the optional chart heading.
type ChartTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Color   string `json:"color"`
}

type ChartOptions struct {
	Responsive bool        `json:"responsive"`
	Title      *ChartTitle `json:"title,omitempty"`
}

// ChartPlugin is a plugin descriptor understood by the render sink.
type ChartPlugin struct {
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
}

// ChartConfig is handed to a render sink as-is.
type ChartConfig struct {
	Type    string           `json:"type"`
	Data    ChartDisplayData `json:"data"`
	Options ChartOptions     `json:"options"`
	Plugins []ChartPlugin    `json:"plugins"`
}

// ChartsData holds the chart state for the viewed stock.
type ChartsData struct {
	Symbol     string      `json:"symbol"`
	Interval   string      `json:"interval"`
	Range      string      `json:"range"`
	DateLabels []string    `json:"dateLabels"`
	Line       ChartConfig `json:"line"`
	Bar        ChartConfig `json:"bar"`
}

// Clone returns a deep copy.
func (c *ChartsData) Clone() *ChartsData {
	if c == nil {
		return nil
	}
	out := *c
	out.DateLabels = append([]string(nil), c.DateLabels...)
	out.Line = c.Line.clone()
	out.Bar = c.Bar.clone()
	return &out
}

func (c ChartConfig) clone() ChartConfig {
	out := c
	out.Data.Labels = append([]string(nil), c.Data.Labels...)
	out.Data.Datasets = make([]Dataset, len(c.Data.Datasets))
	for i, ds := range c.Data.Datasets {
		ds.Data = append([]float64(nil), ds.Data...)
		out.Data.Datasets[i] = ds
	}
	if c.Options.Title != nil {
		t := *c.Options.Title
		out.Options.Title = &t
	}
	out.Plugins = append([]ChartPlugin(nil), c.Plugins...)
	return out
}
