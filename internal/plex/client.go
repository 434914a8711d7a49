// Package plex talks to Plex Media Server for inventory listings and library scans.
package plex

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotConfigured is returned when no server address or token is set.
var ErrNotConfigured = errors.New("plex not configured")

// Client interacts with the Plex Media Server API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new Plex client.
func NewClient(baseURL, token string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		log:     log.With("component", "plex"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Identity holds Plex server identity information.
type Identity struct {
	Name    string
	Version string
}

type identityResponse struct {
	XMLName      xml.Name `xml:"MediaContainer"`
	FriendlyName string   `xml:"friendlyName,attr"`
	Version      string   `xml:"version,attr"`
}

// Item is a media item in a library section.
type Item struct {
	RatingKey string `xml:"ratingKey,attr"`
	Title     string `xml:"title,attr"`
	Year      int    `xml:"year,attr"`
	Type      string `xml:"type,attr"`
	AddedAt   int64  `xml:"addedAt,attr"`
}

type sectionItemsResponse struct {
	XMLName     xml.Name `xml:"MediaContainer"`
	Videos      []Item   `xml:"Video"`     // Movies
	Directories []Item   `xml:"Directory"` // Shows
}

// GetIdentity returns the Plex server name and version.
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	var result identityResponse
	if err := c.get(ctx, "/", &result); err != nil {
		return nil, err
	}
	return &Identity{Name: result.FriendlyName, Version: result.Version}, nil
}

// ListSection returns all items in a library section.
func (c *Client) ListSection(ctx context.Context, key string) ([]Item, error) {
	var result sectionItemsResponse
	if err := c.get(ctx, "/library/sections/"+url.PathEscape(key)+"/all", &result); err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(result.Videos)+len(result.Directories))
	items = append(items, result.Videos...)
	items = append(items, result.Directories...)
	return items, nil
}

// RefreshAll triggers a scan of every library section.
func (c *Client) RefreshAll(ctx context.Context) error {
	start := time.Now()
	if err := c.get(ctx, "/library/sections/all/refresh", nil); err != nil {
		return err
	}
	c.log.Debug("scan triggered", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// get performs an authenticated GET. A nil result skips decoding.
func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	if result == nil {
		return nil
	}

	if err := xml.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
