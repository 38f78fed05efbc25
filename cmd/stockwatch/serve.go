package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/subcommands"

	"StockWatch/internal/server"
	"StockWatch/internal/store"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "runs the watchlist backend and market-data proxy" }
func (*serveCmd) Usage() string {
	return `stockwatch serve [-addr :4000]

Serves the /watchList REST resource backed by SQLite, and forwards
/market/... requests to the market-data provider with the API key
taken from RAPIDAPI_KEY. Clients never see the key.

If the SQLite database cannot be opened, entries are kept in memory.
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (overrides server.addr)")
}

func (c *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Server.Addr = c.addr
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: config validation: %v\n", err)
		return subcommands.ExitFailure
	}

	var st store.WatchlistStore
	if cfg.Database.SQLitePath != "" {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			slog.Warn("init sqlite store failed, using memory", "error", err)
			st = store.NewMemoryStore()
		} else {
			st = sq
		}
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close()

	proxy := server.NewMarketProxy(cfg.Market.UpstreamURL, cfg.Market.APIKey, cfg.Market.APIHost, cfg.Proxy)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(st, proxy, slog.Default()).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("stockwatch server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			return subcommands.ExitFailure
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown", "error", err)
			return subcommands.ExitFailure
		}
	}
	slog.Info("stockwatch server stopped")
	return subcommands.ExitSuccess
}
