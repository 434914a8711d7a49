package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const rateLimitMessage = "Too many requests, please try again later."

// rateLimiter is a per-client token bucket shared by every limited route.
// Each client may burst max requests and regains one every window/max.
type rateLimiter struct {
	mu         sync.Mutex
	clients    map[string]*client
	window     time.Duration
	max        int
	trustProxy bool
	lastSweep  time.Time
	now        func() time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newRateLimiter(window time.Duration, max int, trustProxy bool) *rateLimiter {
	return &rateLimiter{
		clients:    make(map[string]*client),
		window:     window,
		max:        max,
		trustProxy: trustProxy,
		now:        time.Now,
	}
}

// enabled reports whether limiting is configured at all.
func (l *rateLimiter) enabled() bool {
	return l.window > 0 && l.max > 0
}

func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		every := rate.Every(l.window / time.Duration(l.max))
		c = &client{limiter: rate.NewLimiter(every, l.max)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for a full window; their buckets are full again.
func (l *rateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	l.lastSweep = now
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) >= l.window {
			delete(l.clients, key)
		}
	}
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	if !l.enabled() {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(l.clientIP(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(int(l.window.Seconds())))
			writeError(w, http.StatusTooManyRequests, rateLimitMessage)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address the limit is keyed on. Behind a trusted
// proxy that is the last hop recorded in X-Forwarded-For.
func (l *rateLimiter) clientIP(r *http.Request) string {
	if l.trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			hops := strings.Split(xff, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
