package http

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ClientLimiter rate limits requests per client using token buckets.
// Each client key gets its own limiter, so one noisy client cannot starve
// the others.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientBucket
	rps      float64
	burst    int
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a ClientLimiter allowing rps requests per second
// per client with the given burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientBucket),
		rps:      rps,
		burst:    burst,
	}
}

// Allow reports whether the client may make a request now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	b, ok := l.limiters[client]
	if !ok {
		b = &clientBucket{limiter: rate.NewLimiter(rate.Limit(l.rps), l.burst)}
		l.limiters[client] = b
	}
	b.lastSeen = time.Now()
	l.mu.Unlock()

	return b.limiter.Allow()
}

// Prune drops the buckets of clients not seen since cutoff. A client
// returning later starts with a full bucket.
func (l *ClientLimiter) Prune(cutoff time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for client, b := range l.limiters {
		if b.lastSeen.Before(cutoff) {
			delete(l.limiters, client)
		}
	}
}

// Len returns the number of clients being tracked.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}
