package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"backend"`
	Market struct {
		// BaseURL is where the client sends market-data requests. Normally the
		// proxy served by `stockwatch serve`, which holds the credentials.
		BaseURL string `yaml:"base_url"`
		// UpstreamURL is the real provider, used only by the proxy.
		UpstreamURL string `yaml:"upstream_url"`
		APIKey      string `yaml:"api_key"`
		APIHost     string `yaml:"api_host"`
		Region      string `yaml:"region"`
	} `yaml:"market"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Chart struct {
		Interval string `yaml:"interval"`
		Range    string `yaml:"range"`
		Timezone string `yaml:"timezone"`
	} `yaml:"chart"`
	News struct {
		Timezone string `yaml:"timezone"`
	} `yaml:"news"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// The API key belongs in the environment of the proxy process only.
	if cfg.Market.APIKey != "" {
		slog.Warn("market.api_key found in config file; set RAPIDAPI_KEY in the server environment instead", "path", path)
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKWATCH_BACKEND_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("STOCKWATCH_MARKET_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("MARKET_UPSTREAM_URL"); v != "" {
		cfg.Market.UpstreamURL = v
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		cfg.Market.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		cfg.Market.APIHost = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CHART_TIMEZONE"); v != "" {
		cfg.Chart.Timezone = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:4000"
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = cfg.Backend.BaseURL + "/market"
	}
	if cfg.Market.UpstreamURL == "" {
		cfg.Market.UpstreamURL = "https://apidojo-yahoo-finance-v1.p.rapidapi.com"
	}
	if cfg.Market.APIHost == "" {
		cfg.Market.APIHost = "apidojo-yahoo-finance-v1.p.rapidapi.com"
	}
	if cfg.Market.Region == "" {
		cfg.Market.Region = "US"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":4000"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stockwatch.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Chart.Interval == "" {
		cfg.Chart.Interval = "1d"
	}
	if cfg.Chart.Range == "" {
		cfg.Chart.Range = "1M"
	}
	if cfg.Chart.Timezone == "" {
		cfg.Chart.Timezone = "America/New_York"
	}
	if cfg.News.Timezone == "" {
		cfg.News.Timezone = "Europe/London"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	return cfg, nil
}

// ValidateClient checks the fields needed by the watch client.
func (c *Config) ValidateClient() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Market.BaseURL == "" {
		return fmt.Errorf("market.base_url is required")
	}
	if _, err := time.LoadLocation(c.Chart.Timezone); err != nil {
		return fmt.Errorf("chart.timezone: %w", err)
	}
	if _, err := time.LoadLocation(c.News.Timezone); err != nil {
		return fmt.Errorf("news.timezone: %w", err)
	}
	return nil
}

// ValidateServer checks the fields needed by the backend and market proxy.
func (c *Config) ValidateServer() error {
	if c.Market.APIKey == "" {
		return fmt.Errorf("RAPIDAPI_KEY is required")
	}
	if c.Market.UpstreamURL == "" {
		return fmt.Errorf("market.upstream_url is required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
