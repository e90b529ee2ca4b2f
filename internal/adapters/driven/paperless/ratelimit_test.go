package paperless

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestRateLimiter_CheckResponse(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     int
		retryAfter string
		wantErr    bool
		wantWait   time.Duration
	}{
		{name: "ok", status: http.StatusOK},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "seconds", status: http.StatusTooManyRequests, retryAfter: "30", wantErr: true, wantWait: 30 * time.Second},
		{name: "missing header", status: http.StatusTooManyRequests, wantErr: true, wantWait: DefaultRetryAfter},
		{name: "garbage", status: http.StatusTooManyRequests, retryAfter: "soon", wantErr: true, wantWait: DefaultRetryAfter},
		{
			name:       "http date",
			status:     http.StatusTooManyRequests,
			retryAfter: now.Add(time.Minute).Format(http.TimeFormat),
			wantErr:    true,
			wantWait:   time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRateLimiter(rate.Inf, 1)
			r.now = func() time.Time { return now }

			resp := &http.Response{StatusCode: tt.status, Header: http.Header{}}
			if tt.retryAfter != "" {
				resp.Header.Set(HeaderRetryAfter, tt.retryAfter)
			}

			err := r.CheckResponse(resp)
			if !tt.wantErr {
				assert.NoError(t, err)
				assert.True(t, r.BlockedUntil().IsZero())
				return
			}

			var rlErr *RateLimitError
			require.ErrorAs(t, err, &rlErr)
			assert.Equal(t, tt.wantWait, rlErr.RetryAfter)
			assert.Equal(t, now.Add(tt.wantWait), r.BlockedUntil())
		})
	}
}

func TestRateLimiter_WaitHonoursBackoff(t *testing.T) {
	r := NewRateLimiter(rate.Inf, 1)
	resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "60")
	_ = r.CheckResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_WaitWithoutBackoff(t *testing.T) {
	r := NewRateLimiter(rate.Inf, 1)
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_CheckResponseNil(t *testing.T) {
	assert.NoError(t, NewRateLimiter(DefaultRate, DefaultBurst).CheckResponse(nil))
}
