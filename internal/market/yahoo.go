package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"StockWatch/internal/model"
)

// Endpoint paths, relative to the provider or proxy base URL.
const (
	QuotesPath  = "/market/v2/get-quotes"
	SummaryPath = "/stock/v2/get-summary"
	NewsPath    = "/stock/get-news"
	ChartPath   = "/stock/v2/get-chart"
)

// Header names understood by the RapidAPI gateway.
const (
	HeaderAPIKey  = "x-rapidapi-key"
	HeaderAPIHost = "x-rapidapi-host"
)

// YahooClient implements Client against the RapidAPI Yahoo Finance endpoints.
// With an empty APIKey it expects BaseURL to be the credential-holding proxy.
type YahooClient struct {
	BaseURL string
	APIKey  string
	APIHost string
	Region  string
	Client  *http.Client
}

// NewHTTPClient returns the HTTP client used for outbound market requests.
func NewHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

// NewYahooClient creates a client for baseURL. apiKey may be empty when
// baseURL points at the proxy.
func NewYahooClient(baseURL, apiKey, apiHost, region, proxyURL string) *YahooClient {
	if region == "" {
		region = "US"
	}
	return &YahooClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		APIHost: apiHost,
		Region:  region,
		Client:  NewHTTPClient(proxyURL),
	}
}

func (c *YahooClient) Name() string {
	if c.APIKey == "" {
		return "yahoo-proxy"
	}
	return "yahoo"
}

func (c *YahooClient) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.BaseURL + path + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set(HeaderAPIKey, c.APIKey)
		req.Header.Set(HeaderAPIHost, c.APIHost)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("market fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("market read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("market %s: status %d, body: %s", path, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("market decode %s: %w", path, err)
	}
	return nil
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []model.Quote `json:"result"`
		Error  any           `json:"error"`
	} `json:"quoteResponse"`
}

func (c *YahooClient) Quotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	q := url.Values{}
	q.Set("region", c.Region)
	q.Set("symbols", strings.Join(symbols, ","))

	var resp quoteResponse
	if err := c.get(ctx, QuotesPath, q, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("market quotes: api error: %v", resp.QuoteResponse.Error)
	}
	return resp.QuoteResponse.Result, nil
}

func (c *YahooClient) Summary(ctx context.Context, symbol string) (*model.StockSnapshot, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("region", c.Region)

	var jobj any
	if err := c.get(ctx, SummaryPath, q, &jobj); err != nil {
		return nil, err
	}

	snap := &model.StockSnapshot{}
	var err error
	if snap.Symbol, err = pathString(jobj, "$.symbol"); err != nil {
		return nil, err
	}
	if snap.ShortName, err = pathString(jobj, "$.price.shortName"); err != nil {
		return nil, err
	}
	if snap.CurrentPrice, err = pathFloat(jobj, "$.price.regularMarketPrice.raw"); err != nil {
		return nil, err
	}
	if snap.CurrentChange, err = pathFloat(jobj, "$.price.regularMarketChange.raw"); err != nil {
		return nil, err
	}
	return snap, nil
}

func pathValue(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("summary field %q: %w", path, err)
	}
	// jsonpath may wrap a single answer in a list
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func pathString(jobj any, path string) (string, error) {
	jval, err := pathValue(jobj, path)
	if err != nil {
		return "", err
	}
	s, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("summary field %q: not a string: %v", path, jval)
	}
	return s, nil
}

func pathFloat(jobj any, path string) (float64, error) {
	jval, err := pathValue(jobj, path)
	if err != nil {
		return 0, err
	}
	f, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("summary field %q: not a number: %v", path, jval)
	}
	return f, nil
}

type newsResponse struct {
	Items struct {
		Result []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			Publisher   string `json:"publisher"`
			PublishedAt int64  `json:"published_at"`
			Summary     string `json:"summary"`
			MainImage   *struct {
				OriginalURL string `json:"original_url"`
			} `json:"main_image"`
		} `json:"result"`
	} `json:"items"`
}

func (c *YahooClient) News(ctx context.Context, symbol string) ([]model.NewsItem, error) {
	q := url.Values{}
	q.Set("category", symbol)
	q.Set("region", c.Region)

	var resp newsResponse
	if err := c.get(ctx, NewsPath, q, &resp); err != nil {
		return nil, err
	}

	items := make([]model.NewsItem, 0, len(resp.Items.Result))
	for _, r := range resp.Items.Result {
		item := model.NewsItem{
			Title:       r.Title,
			URL:         r.Link,
			Publisher:   r.Publisher,
			PublishedAt: r.PublishedAt,
			Summary:     r.Summary,
		}
		if r.MainImage != nil && r.MainImage.OriginalURL != "" {
			img := r.MainImage.OriginalURL
			item.Img = &img
		}
		items = append(items, item)
	}
	return items, nil
}

// chartResponse is the get-chart payload. Quote columns may contain nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []any `json:"high"`
					Low    []any `json:"low"`
					Close  []any `json:"close"`
					Volume []any `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v any) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func toFloats(vs []any) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = toFloat(v)
	}
	return out
}

func (c *YahooClient) Chart(ctx context.Context, symbol, interval, rng string) (*model.RawSeries, error) {
	q := url.Values{}
	q.Set("interval", interval)
	q.Set("symbol", symbol)
	q.Set("range", rng)
	q.Set("region", c.Region)

	var chart chartResponse
	if err := c.get(ctx, ChartPath, q, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("market chart: api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("market chart: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	return &model.RawSeries{
		Timestamps: result.Timestamp,
		Low:        toFloats(quote.Low),
		Close:      toFloats(quote.Close),
		High:       toFloats(quote.High),
		Volume:     toFloats(quote.Volume),
	}, nil
}
