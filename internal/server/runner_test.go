package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPruner struct {
	mu        sync.Mutex
	calls     int
	olderThan time.Duration
	err       error
}

func (p *countingPruner) Prune(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return 1, p.err
}

func (p *countingPruner) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type eventPruner struct {
	countingPruner
}

func (p *eventPruner) Prune(_ context.Context, olderThan time.Duration) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.olderThan = olderThan
	return 3, p.err
}

func TestNewRunner_Defaults(t *testing.T) {
	r := NewRunner(Config{Addr: ":0"}, http.NotFoundHandler(), nil, nil, nil)

	assert.Equal(t, time.Hour, r.config.PruneInterval)
	assert.Equal(t, 30*time.Second, r.config.ShutdownTimeout)
	assert.Equal(t, ":0", r.config.Addr)
}

func TestRunner_ServesAndShutsDown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r := NewRunner(Config{}, handler, nil, nil, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunner_PrunesOnStartAndInterval(t *testing.T) {
	sessions := &countingPruner{}
	evts := &eventPruner{}
	r := NewRunner(Config{
		PruneInterval:  20 * time.Millisecond,
		EventRetention: 7 * 24 * time.Hour,
	}, http.NotFoundHandler(), sessions, evts, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		return sessions.count() >= 2 && evts.count() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	evts.mu.Lock()
	defer evts.mu.Unlock()
	assert.Equal(t, 7*24*time.Hour, evts.olderThan)
}

func TestRunner_NoEventRetentionSkipsEventPrune(t *testing.T) {
	evts := &eventPruner{}
	r := NewRunner(Config{}, http.NotFoundHandler(), nil, evts, nil)

	r.prune(context.Background())
	assert.Equal(t, 0, evts.count())
}

func TestRunner_PruneErrorsAreNotFatal(t *testing.T) {
	sessions := &countingPruner{err: errors.New("database is locked")}
	r := NewRunner(Config{}, http.NotFoundHandler(), sessions, nil, nil)

	r.prune(context.Background())
	r.prune(context.Background())
	assert.Equal(t, 2, sessions.count())
}

func TestRunner_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	r := NewRunner(Config{Addr: ln.Addr().String()}, http.NotFoundHandler(), nil, nil, nil)
	err = r.Run(context.Background())
	assert.Error(t, err)
}

func TestRunner_ExtraComponents(t *testing.T) {
	r := NewRunner(Config{}, http.NotFoundHandler(), nil, nil, nil)

	started := make(chan struct{})
	stopped := make(chan struct{})
	r.Go(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(stopped)
		return nil
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Serve(ctx, ln) }()

	<-started
	cancel()
	require.NoError(t, <-done)
	<-stopped
}

func TestRunner_ComponentFailureStopsServer(t *testing.T) {
	r := NewRunner(Config{}, http.NotFoundHandler(), nil, nil, nil)
	boom := errors.New("boom")
	r.Go(func(context.Context) error { return boom })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	err = r.Serve(context.Background(), ln)
	assert.ErrorIs(t, err, boom)
}
