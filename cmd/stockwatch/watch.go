package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"

	"StockWatch/internal/app"
	"StockWatch/internal/backend"
	"StockWatch/internal/chart"
	"StockWatch/internal/render"
	"StockWatch/internal/scheduler"
	"StockWatch/internal/search"
	"StockWatch/internal/state"
	"StockWatch/internal/watchlist"
)

type watchCmd struct {
	wsAddr  string
	noColor bool
	symbol  string
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "interactive watchlist client" }
func (*watchCmd) Usage() string {
	return `stockwatch watch [-ws :8080] [-symbol AAPL]

Loads the watchlist from the backend, refreshes prices on a schedule and
reads commands from standard input. The whole view is printed after every
change. With -ws, browsers connecting to ws://ADDR/ws receive every
snapshot as JSON, chart configs included.

` + app.CommandHelp + "\n"
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.wsAddr, "ws", "", "Serve snapshots over websocket on this address")
	f.BoolVar(&c.noColor, "no-color", false, "Disable coloured output")
	f.StringVar(&c.symbol, "symbol", "", "Search this symbol on start")
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := cfg.ValidateClient(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: config validation: %v\n", err)
		return subcommands.ExitFailure
	}

	sinks := render.Multi{render.NewText(os.Stdout, mustLocation(cfg.News.Timezone), !c.noColor)}
	if c.wsAddr != "" {
		hub := render.NewHub()
		sinks = append(sinks, hub)
		mux := http.NewServeMux()
		mux.Handle("GET /ws", hub)
		wsSrv := &http.Server{Addr: c.wsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := wsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("websocket server failed", "error", err)
			}
		}()
		defer wsSrv.Close()
	}

	mc := marketClient(cfg)
	st := state.New(sinks)
	charts := chart.NewPipeline(mc, st, mustLocation(cfg.Chart.Timezone))
	if err := charts.SetDefaults(cfg.Chart.Interval, cfg.Chart.Range); err != nil {
		fmt.Fprintf(os.Stderr, "Error: chart defaults: %v\n", err)
		return subcommands.ExitFailure
	}
	ctl := app.NewController(st,
		watchlist.NewSync(backend.NewClient(cfg.Backend.BaseURL), mc, st),
		search.NewCoordinator(mc, st),
		charts,
	)

	if err := ctl.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	sched := scheduler.NewScheduler(ctx, ctl)
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	sched.Start()
	defer sched.Stop()

	if c.symbol != "" {
		if reply, _ := ctl.HandleCommand(ctx, "search "+c.symbol); reply != "" {
			fmt.Println(reply)
		}
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case line, ok := <-lines:
			if !ok {
				return subcommands.ExitSuccess
			}
			reply, quit := ctl.HandleCommand(ctx, line)
			if reply != "" {
				fmt.Println(reply)
			}
			if quit {
				return subcommands.ExitSuccess
			}
		}
	}
}
