package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService submits files and follows their ingestion tasks.
type UploadService struct {
	mutator *Mutator
	poller  driving.TaskPoller
}

// NewUploadService creates a new upload service.
func NewUploadService(mutator *Mutator, poller driving.TaskPoller) *UploadService {
	return &UploadService{mutator: mutator, poller: poller}
}

// Upload checks that path is a readable file and submits it.
func (s *UploadService) Upload(ctx context.Context, path string) (string, bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("%s: %w", path, domain.ErrFileNotFound)
	case err != nil:
		return "", false, fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		return "", false, fmt.Errorf("%s is a directory: %w", path, domain.ErrFileNotFound)
	}

	result, err := s.mutator.Apply(ctx, domain.SubmitDocument{Path: path})
	if err != nil {
		return "", false, err
	}
	return result.TaskHandle, result.Skipped, nil
}

// UploadAndWait submits path and polls its task to a terminal status.
func (s *UploadService) UploadAndWait(
	ctx context.Context, path string, opts driving.AwaitOptions, onProgress driving.ProgressFunc,
) domain.UploadOutcome {
	outcome := domain.UploadOutcome{Path: path}

	handle, skipped, err := s.Upload(ctx, path)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if skipped {
		outcome.Skipped = true
		return outcome
	}
	outcome.Handle = handle
	logger.Debug("Submitted %s as task %s", path, handle)

	result, err := s.poller.AwaitCompletion(ctx, handle, opts, onProgress)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Result = result

	return outcome
}

// UploadBatch uploads files one after another, each awaited before the next.
func (s *UploadService) UploadBatch(
	ctx context.Context, paths []string, opts driving.AwaitOptions, onProgress driving.ProgressFunc,
) *domain.UploadReport {
	logger.Section("Upload")
	report := &domain.UploadReport{}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Outcomes = append(report.Outcomes, domain.UploadOutcome{Path: path, Err: err})
			continue
		}
		report.Outcomes = append(report.Outcomes, s.UploadAndWait(ctx, path, opts, onProgress))
	}

	return report
}
