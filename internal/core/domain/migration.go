package domain

import (
	"errors"
	"fmt"
)

// MigrationOutcome records what happened to one source correspondent.
type MigrationOutcome struct {
	// SourceID is the requested source identifier.
	SourceID int

	// Source is the resolved correspondent, nil if resolution failed.
	Source *Correspondent

	// DocumentIDs are the documents that were (or would have been) moved.
	DocumentIDs []int

	// Skipped is true when no bulk call was issued (no-op mode, or the
	// source is the destination).
	Skipped bool

	// Err is set when this source could not be migrated.
	Err error
}

// Succeeded returns true if the source was migrated or skipped without error.
func (o MigrationOutcome) Succeeded() bool {
	return o.Err == nil
}

// MigrationReport collects per-source outcomes of a migration.
type MigrationReport struct {
	Destination Correspondent
	Outcomes    []MigrationOutcome
	DryRun      bool
}

// Failed returns the outcomes that carry an error.
func (r *MigrationReport) Failed() []MigrationOutcome {
	var failed []MigrationOutcome
	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Moved returns the number of documents reassigned across all sources.
func (r *MigrationReport) Moved() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Succeeded() && !o.Skipped {
			n += len(o.DocumentIDs)
		}
	}
	return n
}

// Err joins every per-source failure, or returns nil if all succeeded.
func (r *MigrationReport) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, fmt.Errorf("source %d: %w", o.SourceID, o.Err))
	}
	return errors.Join(errs...)
}
