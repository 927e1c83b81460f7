package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter defines the interface for rate limiting
type Limiter interface {
	// Allow reports whether a request may proceed now, consuming a slot if so
	Allow() bool
	// Wait blocks until a request may proceed or ctx is done
	Wait(ctx context.Context) error
	// Reset forgets all recorded requests
	Reset()
}

// SlidingWindow allows at most maxRequests within any window of windowSize
type SlidingWindow struct {
	windowSize  time.Duration
	maxRequests int
	requests    []time.Time
	now         func() time.Time
	mu          sync.Mutex
}

// NewSlidingWindow creates a new sliding window rate limiter
func NewSlidingWindow(maxRequests int, windowSize time.Duration) *SlidingWindow {
	if maxRequests < 1 {
		maxRequests = 1
	}
	return &SlidingWindow{
		windowSize:  windowSize,
		maxRequests: maxRequests,
		requests:    make([]time.Time, 0, maxRequests),
		now:         time.Now,
	}
}

// PerMinute creates a sliding window admitting n requests per minute
func PerMinute(n int) *SlidingWindow {
	return NewSlidingWindow(n, time.Minute)
}

// Allow checks if a request can proceed
func (sw *SlidingWindow) Allow() bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	_, ok := sw.reserve()
	return ok
}

// Wait blocks until a request is allowed
func (sw *SlidingWindow) Wait(ctx context.Context) error {
	for {
		sw.mu.Lock()
		wait, ok := sw.reserve()
		sw.mu.Unlock()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Reset clears all recorded requests
func (sw *SlidingWindow) Reset() {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.requests = sw.requests[:0]
}

// reserve records a request if there is room, otherwise returns how long
// until the oldest request leaves the window. Callers hold mu.
func (sw *SlidingWindow) reserve() (time.Duration, bool) {
	now := sw.now()
	cutoff := now.Add(-sw.windowSize)

	i := 0
	for i < len(sw.requests) && !sw.requests[i].After(cutoff) {
		i++
	}
	if i > 0 {
		sw.requests = append(sw.requests[:0], sw.requests[i:]...)
	}

	if len(sw.requests) < sw.maxRequests {
		sw.requests = append(sw.requests, now)
		return 0, true
	}

	wait := sw.requests[0].Add(sw.windowSize).Sub(now)
	if wait <= 0 {
		wait = time.Millisecond
	}
	return wait, false
}

// Interval enforces a minimum spacing between successive requests.
// The first request is never delayed.
type Interval struct {
	every time.Duration
	last  time.Time
	now   func() time.Time
	mu    sync.Mutex
}

// NewInterval creates a limiter that spaces requests by at least every
func NewInterval(every time.Duration) *Interval {
	return &Interval{every: every, now: time.Now}
}

// Allow checks if the spacing since the previous request has elapsed
func (iv *Interval) Allow() bool {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.remaining() > 0 {
		return false
	}
	iv.last = iv.now()
	return true
}

// Wait blocks until the spacing has elapsed, then records the request
func (iv *Interval) Wait(ctx context.Context) error {
	for {
		iv.mu.Lock()
		wait := iv.remaining()
		if wait <= 0 {
			iv.last = iv.now()
			iv.mu.Unlock()
			return nil
		}
		iv.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Mark restarts the spacing from now, e.g. once the work following a request is done
func (iv *Interval) Mark() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.last = iv.now()
}

// Reset forgets the previous request so the next one proceeds immediately
func (iv *Interval) Reset() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.last = time.Time{}
}

func (iv *Interval) remaining() time.Duration {
	if iv.last.IsZero() || iv.every <= 0 {
		return 0
	}
	return iv.every - iv.now().Sub(iv.last)
}
