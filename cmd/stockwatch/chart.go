package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"StockWatch/internal/chart"
	"StockWatch/internal/search"
	"StockWatch/internal/state"
)

type chartCmd struct {
	symbol     string
	rangeLabel string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "prints the line and bar chart configs for a symbol" }
func (*chartCmd) Usage() string {
	return `stockwatch chart -symbol AAPL [-range 1M]

Fetches the historical series through the market proxy and prints the
chart data as JSON, ready to hand to a charting library.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol")
	f.StringVar(&c.rangeLabel, "range", chart.DefaultRange, "Range: 5D, 1M, 3M, 6M or 1Y")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol := search.Normalize(c.symbol)
	if symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol is required")
		f.Usage()
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return subcommands.ExitFailure
	}

	p := chart.NewPipeline(marketClient(cfg), state.New(), mustLocation(cfg.Chart.Timezone))
	data, err := p.Build(ctx, symbol, cfg.Chart.Interval, c.rangeLabel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
