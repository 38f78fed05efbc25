// Package backend is the HTTP client for the watchlist persistence service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"StockWatch/internal/model"
)

// ResourcePath is the REST collection holding watchlist entries.
const ResourcePath = "/watchList"

// Client talks to the persistence backend.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a backend client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("backend read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend %s %s: status %d, body: %s", method, path, resp.StatusCode, string(data))
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("backend decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

func entryPath(id int64) string {
	return ResourcePath + "/" + strconv.FormatInt(id, 10)
}

// List returns every persisted entry.
func (c *Client) List(ctx context.Context) ([]model.WatchlistEntry, error) {
	var entries []model.WatchlistEntry
	if err := c.do(ctx, http.MethodGet, ResourcePath, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create persists draft and returns the stored entry with its assigned id.
func (c *Client) Create(ctx context.Context, draft model.WatchlistDraft) (model.WatchlistEntry, error) {
	var entry model.WatchlistEntry
	if err := c.do(ctx, http.MethodPost, ResourcePath, draft, &entry); err != nil {
		return model.WatchlistEntry{}, err
	}
	return entry, nil
}

// Delete removes the entry with id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, entryPath(id), nil, nil)
}

// Patch writes the full entry back.
func (c *Client) Patch(ctx context.Context, entry model.WatchlistEntry) error {
	return c.do(ctx, http.MethodPatch, entryPath(entry.ID), entry, nil)
}
