package events

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			event_type TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX idx_events_type ON events(event_type);
		CREATE INDEX idx_events_entity ON events(entity_type, entity_id);
		CREATE INDEX idx_events_occurred ON events(occurred_at);
	`)
	require.NoError(t, err)
	return db
}

func TestEventLog_Append(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	e := &testEvent{
		BaseEvent: NewBaseEvent("test.created", "test", "1"),
		Message:   "hello",
	}

	id, err := log.Append(ctx, e)
	require.NoError(t, err)
	assert.Positive(t, id)

	events, err := log.ForEntity(ctx, "test", "1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Contains(t, string(events[0].Payload), `"message":"hello"`)
	assert.Equal(t, "test.created", events[0].EventType)
	assert.Equal(t, "test", events[0].EntityType)
	assert.Equal(t, "1", events[0].EntityID)
}

func TestEventLog_Since(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	start := time.Now().Add(-time.Hour)

	e1 := &testEvent{BaseEvent: NewBaseEvent("test.first", "test", "1"), Message: "first"}
	e2 := &testEvent{BaseEvent: NewBaseEvent("test.second", "test", "2"), Message: "second"}

	_, err := log.Append(ctx, e1)
	require.NoError(t, err)
	_, err = log.Append(ctx, e2)
	require.NoError(t, err)

	events, err := log.Since(ctx, start, 0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "test.first", events[0].EventType)
	assert.Equal(t, "test.second", events[1].EventType)

	limited, err := log.Since(ctx, start, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "test.first", limited[0].EventType)
}

func TestEventLog_SinceEmpty(t *testing.T) {
	log := NewEventLog(setupTestDB(t))

	events, err := log.Since(context.Background(), time.Now(), 10)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestEventLog_ForEntity(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	e1 := &testEvent{BaseEvent: NewBaseEvent("test.one", EntityMusicJob, "a"), Message: "one"}
	e2 := &testEvent{BaseEvent: NewBaseEvent("test.two", EntityMusicJob, "b"), Message: "two"}
	e3 := &testEvent{BaseEvent: NewBaseEvent("test.three", EntityMusicJob, "a"), Message: "three"}

	for _, e := range []Event{e1, e2, e3} {
		_, err := log.Append(ctx, e)
		require.NoError(t, err)
	}

	events, err := log.ForEntity(ctx, EntityMusicJob, "a")
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, "test.one", events[0].EventType)
	assert.Equal(t, "test.three", events[1].EventType)

	events2, err := log.ForEntity(ctx, EntityMusicJob, "b")
	require.NoError(t, err)
	assert.Len(t, events2, 1)
	assert.Equal(t, "test.two", events2[0].EventType)
}

func TestEventLog_Prune(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	_, err := db.Exec(`
		INSERT INTO events (event_type, entity_type, entity_id, payload, occurred_at)
		VALUES (?, ?, ?, ?, ?)`,
		"test.old", "test", "1", `{"message":"old"}`, time.Now().Add(-10*24*time.Hour).UTC(),
	)
	require.NoError(t, err)

	e := &testEvent{BaseEvent: NewBaseEvent("test.new", "test", "2"), Message: "new"}
	_, err = log.Append(ctx, e)
	require.NoError(t, err)

	count, err := log.Prune(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	events, err := log.Since(ctx, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, "test.new", events[0].EventType)
}

func TestEventLog_Recent(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		evt := &JobFileWritten{
			BaseEvent: NewBaseEvent(EventJobFileWritten, EntityJobFile, fmt.Sprintf("job-%d", i+1)),
			Link:      fmt.Sprintf("https://host/%d", i+1),
			Kind:      "movie",
		}
		_, err := log.Append(ctx, evt)
		require.NoError(t, err)
	}

	events, err := log.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "job-5", events[0].EntityID)
	assert.Equal(t, "job-4", events[1].EntityID)
	assert.Equal(t, "job-3", events[2].EntityID)
}

// testEvent is a concrete event type for testing
type testEvent struct {
	BaseEvent
	Message string `json:"message"`
}
