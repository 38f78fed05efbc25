package main

import (
	"fmt"
	"os"
	"time"

	"StockWatch/internal/config"
	"StockWatch/internal/logx"
	"StockWatch/internal/market"
)

// loadConfig reads the config file and installs the configured logger.
func loadConfig() (*config.Config, error) {
	p := *configPath
	if p == "" {
		p = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			p = v
		}
	}
	cfg, err := config.Load(p)
	if err != nil {
		return nil, err
	}
	logx.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

// marketClient returns the client used by the watch tools. It goes through
// the proxy and never carries the API key.
func marketClient(cfg *config.Config) *market.YahooClient {
	return market.NewYahooClient(cfg.Market.BaseURL, "", "", cfg.Market.Region, cfg.Proxy)
}

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: unknown timezone %q, using UTC\n", name)
		return time.UTC
	}
	return loc
}
