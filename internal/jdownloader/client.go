// Package jdownloader reads the download queue from JDownloader's local API.
package jdownloader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Link is one entry of the download queue as JDownloader reports it.
type Link struct {
	Name        string `json:"name"`
	Running     bool   `json:"running"`
	BytesLoaded int64  `json:"bytesLoaded"`
	BytesTotal  int64  `json:"bytesTotal"`
}

// Client talks to the deprecated local HTTP API of JDownloader 2.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
	now        func() time.Time
}

// NewClient creates a client for baseURL (http://host:port). An empty
// baseURL yields a client that always returns ErrNotConfigured.
func NewClient(baseURL string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		log:     log.With("component", "jdownloader"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		now: time.Now,
	}
}

type queryLinksParams struct {
	Running     bool `json:"running"`
	Name        bool `json:"name"`
	BytesLoaded bool `json:"bytesLoaded"`
	BytesTotal  bool `json:"bytesTotal"`
}

type queryLinksRequest struct {
	Params     []queryLinksParams `json:"params"`
	ID         int64              `json:"id"`
	MethodName string             `json:"methodName"`
}

type queryLinksResponse struct {
	Data []Link `json:"data"`
	ID   int64  `json:"id"`
}

// QueryLinks returns every link in the download list.
func (c *Client) QueryLinks(ctx context.Context) ([]Link, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	body := queryLinksRequest{
		Params: []queryLinksParams{{
			Running:     true,
			Name:        true,
			BytesLoaded: true,
			BytesTotal:  true,
		}},
		ID:         c.now().UnixMilli(),
		MethodName: "queryLinks",
	}

	var resp queryLinksResponse
	if err := c.doRequest(ctx, "/downloadsV2/queryLinks", body, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) doRequest(ctx context.Context, path string, body, result any) error {
	start := time.Now()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("api request failed", "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("api unexpected status", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	c.log.Debug("api request complete", "path", path, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
