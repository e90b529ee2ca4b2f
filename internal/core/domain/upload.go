package domain

import (
	"errors"
	"fmt"
)

// UploadOutcome records what happened to one uploaded file.
type UploadOutcome struct {
	Path   string
	Handle string
	Result *TaskResult

	// Skipped is true when no-op mode suppressed the upload.
	Skipped bool

	Err error
}

// UploadReport collects per-file outcomes of an upload batch, in order.
type UploadReport struct {
	Outcomes []UploadOutcome
}

// Err joins every per-file failure, or returns nil if all succeeded.
func (r *UploadReport) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Path, o.Err))
		}
	}
	return errors.Join(errs...)
}
