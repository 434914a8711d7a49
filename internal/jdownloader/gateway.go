package jdownloader

import (
	"context"
	"errors"
	"log/slog"
)

// Item is the normalized progress of one queued download.
type Item struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Percent converts byte counters to a completion percentage.
// An unknown or zero total reads as 0, and a fully loaded link reads
// exactly 100 whatever the float division says.
func Percent(loaded, total int64) float64 {
	if loaded > 0 && loaded == total {
		return 100
	}
	if total > 0 {
		return float64(loaded) / float64(total) * 100
	}
	return 0
}

// LinkQuerier lists the download queue.
type LinkQuerier interface {
	QueryLinks(ctx context.Context) ([]Link, error)
}

// Gateway turns queue queries into status items for the dashboard.
type Gateway struct {
	client LinkQuerier
	log    *slog.Logger
}

// NewGateway creates a Gateway.
func NewGateway(client LinkQuerier, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{client: client, log: log.With("component", "status")}
}

// Status returns the queue with percentages. Failures are logged and
// collapse to an empty, non-nil slice.
func (g *Gateway) Status(ctx context.Context) []Item {
	links, err := g.client.QueryLinks(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotConfigured):
			g.log.Debug("download status skipped", "error", err)
		case errors.Is(err, ErrUnavailable):
			g.log.Warn("jdownloader unreachable", "error", err)
		default:
			g.log.Warn("download status failed", "error", err)
		}
		return []Item{}
	}

	items := make([]Item, 0, len(links))
	for _, l := range links {
		items = append(items, Item{Name: l.Name, Percent: Percent(l.BytesLoaded, l.BytesTotal)})
	}
	return items
}
