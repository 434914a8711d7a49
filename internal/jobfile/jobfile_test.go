package jobfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NoNoBzH22/CineVault-Lite/internal/events"
)

func newTestEmitter(t *testing.T) (*Emitter, string) {
	t.Helper()
	dir := t.TempDir()
	e := New(Config{
		WatchDir:     dir,
		MoviesFolder: "/output/Movies",
		SeriesFolder: "/output/Series",
	}, nil, nil)
	e.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return e, dir
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindSeries, ParseKind("serie"))
	assert.Equal(t, KindSeries, ParseKind("Series"))
	assert.Equal(t, KindMovie, ParseKind("film"))
	assert.Equal(t, KindMovie, ParseKind(""))
}

func TestJob_Render(t *testing.T) {
	job := Job{Link: "https://host/f", PackageName: "Dune", DownloadFolder: "/output/Movies/Dune"}
	assert.Equal(t,
		"text=https://host/f\r\nautoStart=TRUE\r\npackageName=Dune\r\ndownloadFolder=/output/Movies/Dune\r\n",
		job.Render())

	bare := Job{Link: "https://host/f"}
	assert.Equal(t, "text=https://host/f\r\nautoStart=TRUE\r\n", bare.Render())
}

func TestEmitter_Emit_Movie(t *testing.T) {
	e, dir := newTestEmitter(t)

	res, err := e.Emit(context.Background(), Request{Link: "https://host/file", Title: "My:Movie?", Kind: KindMovie})
	require.NoError(t, err)

	assert.Equal(t, "manual_1700000000000.crawljob", res.FileName)
	assert.Equal(t, filepath.Join(dir, res.FileName), res.Path)
	assert.Equal(t, "MyMovie", res.PackageName)
	assert.Equal(t, KindMovie, res.Kind)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"text=https://host/file\r\nautoStart=TRUE\r\npackageName=MyMovie\r\ndownloadFolder=/output/Movies/MyMovie\r\n",
		string(data))

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0666), info.Mode().Perm())
}

func TestEmitter_Emit_Series(t *testing.T) {
	e, _ := newTestEmitter(t)

	res, err := e.Emit(context.Background(), Request{Link: "https://host/ep", Title: "Severance", Kind: ParseKind("serie")})
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "downloadFolder=/output/Series/Severance\r\n")
}

func TestEmitter_Emit_DefaultTitle(t *testing.T) {
	e, _ := newTestEmitter(t)

	res, err := e.Emit(context.Background(), Request{Link: "https://host/file"})
	require.NoError(t, err)

	assert.Equal(t, "Manual_Add_1700000000000", res.PackageName)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "packageName=Manual_Add_1700000000000\r\n")
}

func TestEmitter_Emit_MissingLink(t *testing.T) {
	e, dir := newTestEmitter(t)

	_, err := e.Emit(context.Background(), Request{Link: "  ", Title: "x"})
	assert.ErrorIs(t, err, ErrMissingLink)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmitter_Emit_TraversalTitle(t *testing.T) {
	e, _ := newTestEmitter(t)

	_, err := e.Emit(context.Background(), Request{Link: "https://host/file", Title: "..."})
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestEmitter_Emit_NoFolderConfigured(t *testing.T) {
	e := New(Config{WatchDir: t.TempDir()}, nil, nil)

	res, err := e.Emit(context.Background(), Request{Link: "https://host/file", Title: "Dune"})
	require.NoError(t, err)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "downloadFolder=")
}

func TestEmitter_Emit_WriteFailure(t *testing.T) {
	e := New(Config{WatchDir: filepath.Join(t.TempDir(), "missing")}, nil, nil)

	_, err := e.Emit(context.Background(), Request{Link: "https://host/file"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write job file")
}

func TestEmitter_Emit_UniqueNames(t *testing.T) {
	e, dir := newTestEmitter(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := e.Emit(context.Background(), Request{Link: fmt.Sprintf("https://host/%d", n)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}

func TestEmitter_Emit_PublishesEvent(t *testing.T) {
	bus := events.NewBus(nil, nil)
	defer bus.Close()
	ch := bus.Subscribe(events.EventJobFileWritten, 1)

	e, _ := newTestEmitter(t)
	e.bus = bus

	res, err := e.Emit(context.Background(), Request{Link: "https://host/file", Title: "Dune", Kind: KindSeries})
	require.NoError(t, err)

	select {
	case ev := <-ch:
		written, ok := ev.(*events.JobFileWritten)
		require.True(t, ok)
		assert.Equal(t, res.FileName, written.EntityID())
		assert.Equal(t, "series", written.Kind)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}
