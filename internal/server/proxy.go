package server

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"StockWatch/internal/market"
)

// MarketProxy forwards whitelisted market-data requests upstream and adds the
// API credentials, so clients never hold them.
type MarketProxy struct {
	UpstreamURL string
	APIKey      string
	APIHost     string
	Client      *http.Client
}

// NewMarketProxy creates a proxy to upstreamURL.
func NewMarketProxy(upstreamURL, apiKey, apiHost, proxyURL string) *MarketProxy {
	return &MarketProxy{
		UpstreamURL: strings.TrimRight(upstreamURL, "/"),
		APIKey:      apiKey,
		APIHost:     apiHost,
		Client:      market.NewHTTPClient(proxyURL),
	}
}

var proxiedPaths = map[string]bool{
	market.QuotesPath:  true,
	market.SummaryPath: true,
	market.NewsPath:    true,
	market.ChartPath:   true,
}

func (p *MarketProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !proxiedPaths[r.URL.Path] {
		writeError(w, http.StatusNotFound, "unknown market endpoint")
		return
	}

	u := p.UpstreamURL + r.URL.Path
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, u, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(market.HeaderAPIKey, p.APIKey)
	req.Header.Set(market.HeaderAPIHost, p.APIHost)

	resp, err := p.Client.Do(req)
	if err != nil {
		slog.Warn("market upstream request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "market upstream unavailable")
		return
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		slog.Warn("market upstream copy failed", "path", r.URL.Path, "error", err)
	}
}
