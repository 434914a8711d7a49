package plex

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

// InventoryItem is one entry of the movie inventory shown on the dashboard.
type InventoryItem struct {
	Title string
	Year  int // 0 when Plex has no year
}

// MarshalJSON renders a missing year as "N/A".
func (i InventoryItem) MarshalJSON() ([]byte, error) {
	var year any = i.Year
	if i.Year == 0 {
		year = "N/A"
	}
	return json.Marshal(struct {
		Title string `json:"title"`
		Year  any    `json:"year"`
	}{i.Title, year})
}

// UnmarshalJSON accepts a numeric year or "N/A".
func (i *InventoryItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title string          `json:"title"`
		Year  json.RawMessage `json:"year"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Title = raw.Title
	i.Year = 0
	if n, err := strconv.Atoi(string(raw.Year)); err == nil {
		i.Year = n
	}
	return nil
}

// SectionClient is the subset of Client used by Library.
type SectionClient interface {
	ListSection(ctx context.Context, key string) ([]Item, error)
	RefreshAll(ctx context.Context) error
}

// Library exposes the configured movie section and library scans.
type Library struct {
	client  SectionClient // nil when Plex is not configured
	section string
	bus     *events.Bus
	log     *slog.Logger
	cache   *inventoryCache // nil disables caching
}

// NewLibrary creates a Library. client may be nil when Plex is not configured.
func NewLibrary(client SectionClient, section string, bus *events.Bus, log *slog.Logger) *Library {
	if log == nil {
		log = slog.Default()
	}
	return &Library{
		client:  client,
		section: section,
		bus:     bus,
		log:     log.With("component", "library"),
	}
}

// SetCacheTTL keeps successful listings for ttl. Zero disables the cache.
func (l *Library) SetCacheTTL(ttl time.Duration) {
	if ttl <= 0 {
		l.cache = nil
		return
	}
	l.cache = newInventoryCache(ttl)
}

// Inventory lists the movie section. It returns an empty slice when Plex is
// not configured or cannot be read.
func (l *Library) Inventory(ctx context.Context) []InventoryItem {
	if l.client == nil {
		return []InventoryItem{}
	}

	if l.cache != nil {
		if items, ok := l.cache.get(); ok {
			return items
		}
	}

	items, err := l.client.ListSection(ctx, l.section)
	if err != nil {
		l.log.Error("inventory failed", "section", l.section, "error", err)
		return []InventoryItem{}
	}

	out := make([]InventoryItem, 0, len(items))
	for _, it := range items {
		out = append(out, InventoryItem{Title: it.Title, Year: it.Year})
	}
	if l.cache != nil {
		l.cache.set(out)
	}
	return out
}

// Refresh asks Plex to rescan every section.
func (l *Library) Refresh(ctx context.Context) error {
	if l.client == nil {
		return ErrNotConfigured
	}
	if err := l.client.RefreshAll(ctx); err != nil {
		l.log.Error("refresh failed", "error", err)
		return err
	}
	l.log.Info("library scan requested")
	if l.cache != nil {
		l.cache.invalidate()
	}

	if l.bus != nil {
		_ = l.bus.Publish(ctx, &events.LibraryRefreshed{
			BaseEvent: events.NewBaseEvent(events.EventLibraryRefreshed, events.EntityLibrary, "all"),
		})
	}
	return nil
}

// RefreshOn requests a scan for every event received on ch. It returns when
// ctx is done or ch is closed.
func (l *Library) RefreshOn(ctx context.Context, ch <-chan events.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-ch:
			if !ok {
				return nil
			}
			l.log.Info("scan triggered", "event", e.EventType(), "entity", e.EntityID())
			_ = l.Refresh(ctx)
		}
	}
}
