package render

import (
	"StockWatch/internal/model"
	"StockWatch/internal/state"
)

// Multi fans one render pass out to several sinks in order.
type Multi []state.Renderer

func (m Multi) Render(s model.ApplicationState) {
	for _, r := range m {
		r.Render(s)
	}
}
