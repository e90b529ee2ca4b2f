package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure TaskPoller implements the interface.
var _ driving.TaskPoller = (*TaskPoller)(nil)

// maxConsecutivePollFailures is how many failed polls in a row abort a wait.
// A single failure is tolerated as transient.
const maxConsecutivePollFailures = 2

// genericFailureMessage is used when a failed task carries no result text.
const genericFailureMessage = "task failed without a result message"

// TaskPoller follows ingestion tasks to a terminal status.
//
// There is no built-in ceiling: by default AwaitCompletion polls until the
// task finishes or ctx is cancelled (for example by SIGINT).
type TaskPoller struct {
	api   driven.TaskAPI
	clock Clock
}

// NewTaskPoller creates a new task poller.
// If clock is nil the system clock is used.
func NewTaskPoller(api driven.TaskAPI, clock Clock) *TaskPoller {
	if clock == nil {
		clock = SystemClock()
	}
	return &TaskPoller{api: api, clock: clock}
}

// Poll fetches the current status of a task once.
func (p *TaskPoller) Poll(ctx context.Context, handle string) (*domain.Task, error) {
	task, err := p.api.GetTask(ctx, handle)
	if err != nil {
		return nil, fmt.Errorf("poll task %s: %w", handle, err)
	}
	return task, nil
}

// AwaitCompletion polls the task every opts.Interval until it succeeds or fails.
func (p *TaskPoller) AwaitCompletion(
	ctx context.Context, handle string, opts driving.AwaitOptions, onProgress driving.ProgressFunc,
) (*domain.TaskResult, error) {
	interval := opts.Interval
	if interval <= 0 {
		interval = driving.DefaultPollInterval
	}

	start := p.clock.Now()
	failures := 0

	for {
		task, err := p.Poll(ctx, handle)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			failures++
			if failures >= maxConsecutivePollFailures {
				return nil, err
			}
			logger.Warn("Poll failed, retrying: %v", err)

		default:
			failures = 0
			if onProgress != nil {
				onProgress(*task)
			}

			switch task.Status {
			case domain.TaskSuccess:
				result := &domain.TaskResult{RelatedDocument: task.RelatedDocument}
				if task.Result != nil {
					result.Result = *task.Result
				}
				return result, nil

			case domain.TaskFailure:
				msg := genericFailureMessage
				if task.Result != nil && *task.Result != "" {
					msg = *task.Result
				}
				return nil, &domain.TaskFailedError{Handle: handle, FileName: task.FileName, Message: msg}
			}
		}

		if opts.Timeout > 0 && p.clock.Now().Sub(start) >= opts.Timeout {
			return nil, fmt.Errorf("task %s after %s: %w", handle, opts.Timeout, domain.ErrTaskTimeout)
		}

		if err := p.clock.Sleep(ctx, interval); err != nil {
			return nil, err
		}
	}
}
