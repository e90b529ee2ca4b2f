package driving

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// UploadService submits files for ingestion and follows them to completion.
type UploadService interface {
	// Upload submits one file and returns its task handle.
	// skipped is true when no-op mode suppressed the submission.
	Upload(ctx context.Context, path string) (handle string, skipped bool, err error)

	// UploadAndWait submits one file and awaits its task.
	UploadAndWait(ctx context.Context, path string, opts AwaitOptions, onProgress ProgressFunc) domain.UploadOutcome

	// UploadBatch processes files strictly one after another.
	// A failed file is recorded and does not stop the batch.
	UploadBatch(ctx context.Context, paths []string, opts AwaitOptions, onProgress ProgressFunc) *domain.UploadReport
}
