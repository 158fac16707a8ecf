package ratelimit

import (
	"sync"
	"time"
)

// Limiter is a sliding-window request limiter keyed by client
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	maxReqs int
	window  time.Duration
	cleanup *time.Ticker
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

type bucket struct {
	requests []time.Time
	lastSeen time.Time
}

// NewLimiter allows maxRequests per window for each key. A non-positive
// maxRequests disables limiting.
func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	limiter := &Limiter{
		buckets: make(map[string]*bucket),
		maxReqs: maxRequests,
		window:  window,
		cleanup: time.NewTicker(5 * time.Minute),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go limiter.cleanupOldBuckets()
	return limiter
}

// Allow records a request for key and reports whether it is within budget
func (l *Limiter) Allow(key string) bool {
	if l.maxReqs <= 0 || key == "" {
		return true
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{}
		l.buckets[key] = b
	}

	cutoff := now.Add(-l.window)
	kept := b.requests[:0]
	for _, t := range b.requests {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.requests = kept
	b.lastSeen = now

	if len(b.requests) >= l.maxReqs {
		return false
	}

	b.requests = append(b.requests, now)
	return true
}

func (l *Limiter) cleanupOldBuckets() {
	for {
		select {
		case <-l.cleanup.C:
			l.mu.Lock()
			staleThreshold := l.now().Add(-3 * l.window)
			for key, b := range l.buckets {
				if b.lastSeen.Before(staleThreshold) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}

// Stop halts the background cleanup
func (l *Limiter) Stop() {
	l.once.Do(func() {
		l.cleanup.Stop()
		close(l.done)
	})
}
