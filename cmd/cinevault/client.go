package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// ErrNoPassword is returned when a protected command runs without a password.
var ErrNoPassword = errors.New("password required: use --password or set CINEVAULT_PASSWORD")

// Client wraps HTTP calls to the CineVault-Lite server. The session cookie
// lives in the client's jar for the duration of one command.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client using the --timeout setting.
func NewClient(serverURL string) *Client {
	jar, _ := cookiejar.New(nil)
	t := timeout
	if t <= 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: t,
			Jar:     jar,
		},
	}
}

// newAuthedClient returns a client that has already logged in.
func newAuthedClient() (*Client, error) {
	if password == "" {
		return nil, ErrNoPassword
	}
	client := NewClient(serverURL)
	if err := client.Login(password); err != nil {
		return nil, err
	}
	return client, nil
}

type apiError struct {
	Error string `json:"error"`
}

// responseError turns a non-2xx response into an error, preferring the
// server's {"error": ...} message.
func responseError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var e apiError
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("server error %d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

// API response types (mirror server types)

type StatusResponse struct {
	IsOffline bool   `json:"isOffline"`
	Message   string `json:"message"`
}

type SessionResponse struct {
	IsLoggedIn bool `json:"isLoggedIn"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type DownloadItem struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

type MusicStatusResponse struct {
	IsDownloading   bool    `json:"isDownloading"`
	CurrentSong     *string `json:"currentSong"`
	Progress        int     `json:"progress"`
	Message         string  `json:"message"`
	TotalSongs      int     `json:"totalSongs"`
	DownloadedCount int     `json:"downloadedCount"`
}

// InventoryItem carries Year as raw JSON: a number, or "N/A".
type InventoryItem struct {
	Title string          `json:"title"`
	Year  json.RawMessage `json:"year"`
}

// YearString renders the year without JSON quoting.
func (i InventoryItem) YearString() string {
	var s string
	if json.Unmarshal(i.Year, &s) == nil {
		return s
	}
	return string(i.Year)
}

type EventResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurred_at"`
	Summary    string          `json:"summary"`
}

// API methods

func (c *Client) Login(pw string) error {
	return c.post("/login", map[string]string{"password": pw}, nil)
}

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CheckSession() (*SessionResponse, error) {
	var resp SessionResponse
	if err := c.get("/check-session", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddLink(link, title, kind string) (*MessageResponse, error) {
	req := map[string]string{"link": link, "title": title, "type": kind}
	var resp MessageResponse
	if err := c.post("/direct-download", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Downloads() ([]DownloadItem, error) {
	var resp []DownloadItem
	if err := c.get("/download-status", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) StartMusic(musicURL string) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post("/download-music", map[string]string{"url": musicURL}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) MusicStatus() (*MusicStatusResponse, error) {
	var resp MusicStatusResponse
	if err := c.get("/music-status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Inventory(query string, limit int) ([]InventoryItem, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	path := "/plex-inventory"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp []InventoryItem
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) RefreshPlex() (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post("/refresh-plex", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) PlexUsers() (json.RawMessage, error) {
	var resp json.RawMessage
	if err := c.get("/plex-users", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SyncPlaylist(playlistURL, name, userID string) (*MessageResponse, error) {
	req := map[string]string{"url": playlistURL, "name": name, "userId": userID}
	var resp MessageResponse
	if err := c.post("/sync-playlist", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EventQuery selects which audit events to fetch. Entity narrows the
// result to one entity's history and takes precedence over Since.
type EventQuery struct {
	Since      string
	EntityType string
	EntityID   string
	Limit      int
}

func (c *Client) Events(q EventQuery) ([]EventResponse, error) {
	params := url.Values{}
	if q.EntityType != "" || q.EntityID != "" {
		params.Set("entity_type", q.EntityType)
		params.Set("entity_id", q.EntityID)
	} else if q.Since != "" {
		params.Set("since", q.Since)
	}
	if q.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.Limit))
	}
	path := "/events"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var resp []EventResponse
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
