package paperless

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive request rate in requests per second.
	DefaultRate = 10

	// DefaultBurst is the number of requests allowed back to back.
	DefaultBurst = 5

	// DefaultRetryAfter is the backoff used when a 429 carries no usable header.
	DefaultRetryAfter = 5 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests proactively and honours server backoff.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per second.
func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, burst),
		now:    time.Now,
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	blockedUntil := r.blockedUntil
	now := r.now()
	r.mu.Unlock()

	if !now.Before(blockedUntil) {
		return nil
	}

	timer := time.NewTimer(blockedUntil.Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckResponse records the backoff requested by a 429 response.
// Returns a RateLimitError if rate limited, nil otherwise.
func (r *RateLimiter) CheckResponse(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	wait := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), now)
	r.blockedUntil = now.Add(wait)

	return &RateLimitError{RetryAfter: wait, ResetAt: r.blockedUntil}
}

// BlockedUntil returns the time before which Wait will not return.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return DefaultRetryAfter
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
		return 0
	}
	return DefaultRetryAfter
}
