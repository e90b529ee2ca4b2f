package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// DefaultPollInterval is the delay between task status polls.
const DefaultPollInterval = time.Second

// AwaitOptions tunes AwaitCompletion.
type AwaitOptions struct {
	// Interval is the delay between polls. Zero means DefaultPollInterval.
	Interval time.Duration

	// Timeout caps the total wait. Zero (the default) means unbounded.
	Timeout time.Duration
}

// ProgressFunc receives every observed task snapshot.
type ProgressFunc func(task domain.Task)

// TaskPoller observes ingestion tasks until they finish.
type TaskPoller interface {
	// Poll performs a single status fetch.
	Poll(ctx context.Context, handle string) (*domain.Task, error)

	// AwaitCompletion polls until the task reaches a terminal status.
	// onProgress is called for every successful poll and may be nil.
	AwaitCompletion(
		ctx context.Context, handle string, opts AwaitOptions, onProgress ProgressFunc,
	) (*domain.TaskResult, error)
}
