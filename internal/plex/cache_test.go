package plex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryCache_Expiry(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := newInventoryCache(time.Minute)
	c.now = func() time.Time { return now }

	_, ok := c.get()
	assert.False(t, ok)

	c.set([]InventoryItem{{Title: "Alien", Year: 1979}})
	items, ok := c.get()
	require.True(t, ok)
	assert.Equal(t, []InventoryItem{{Title: "Alien", Year: 1979}}, items)

	now = now.Add(2 * time.Minute)
	_, ok = c.get()
	assert.False(t, ok)
}

func TestInventoryCache_EmptyListingIsCached(t *testing.T) {
	c := newInventoryCache(time.Minute)
	c.set(nil)

	items, ok := c.get()
	assert.True(t, ok)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestInventoryCache_GetReturnsCopy(t *testing.T) {
	c := newInventoryCache(time.Minute)
	c.set([]InventoryItem{{Title: "Alien"}})

	items, _ := c.get()
	items[0].Title = "changed"

	again, _ := c.get()
	assert.Equal(t, "Alien", again[0].Title)
}

func TestLibrary_InventoryCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/library/sections/all/refresh" {
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(sectionXML))
	}))
	defer server.Close()

	lib := NewLibrary(NewClient(server.URL, "t", nil), "3", nil, nil)
	lib.SetCacheTTL(time.Minute)

	first := lib.Inventory(context.Background())
	second := lib.Inventory(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())

	// A rescan drops the cached listing.
	require.NoError(t, lib.Refresh(context.Background()))
	lib.Inventory(context.Background())
	assert.Equal(t, int32(2), hits.Load())
}

func TestLibrary_FailuresAreNotCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	lib := NewLibrary(NewClient(server.URL, "t", nil), "1", nil, nil)
	lib.SetCacheTTL(time.Minute)

	lib.Inventory(context.Background())
	lib.Inventory(context.Background())
	assert.Equal(t, int32(2), hits.Load())
}

func TestLibrary_CachedEmptySectionIsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<MediaContainer size="0"></MediaContainer>`))
	}))
	defer server.Close()

	lib := NewLibrary(NewClient(server.URL, "t", nil), "1", nil, nil)
	lib.SetCacheTTL(time.Minute)

	for i := 0; i < 2; i++ {
		out, err := json.Marshal(lib.Inventory(context.Background()))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(out), "call %d", i+1)
	}
}
