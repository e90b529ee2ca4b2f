package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous indicates a name matched more than one correspondent.
	ErrAmbiguous = errors.New("ambiguous match")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTransport indicates a network or HTTP failure talking to the server.
	ErrTransport = errors.New("transport error")

	// ErrTaskFailed indicates the server reported an ingestion task as failed.
	ErrTaskFailed = errors.New("task failed")

	// ErrTaskTimeout indicates a task did not reach a terminal status
	// within the configured ceiling.
	ErrTaskTimeout = errors.New("task did not finish in time")

	// ErrUnableToDelete indicates the delete safety gate refused the request.
	ErrUnableToDelete = errors.New("unable to delete")

	// ErrConfig indicates the configuration could not be read, written or validated.
	ErrConfig = errors.New("configuration error")

	// ErrFileNotFound indicates a local file to upload does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrSequenceConsumed indicates a lazy listing was iterated twice.
	ErrSequenceConsumed = errors.New("sequence already consumed")
)

// AmbiguousError reports every correspondent a name resolved to.
type AmbiguousError struct {
	Name    string
	Matches []Correspondent
}

func (e *AmbiguousError) Error() string {
	names := make([]string, 0, len(e.Matches))
	for _, m := range e.Matches {
		names = append(names, m.String())
	}
	return fmt.Sprintf("correspondent name %q is ambiguous: %s", e.Name, strings.Join(names, ", "))
}

// Is allows errors.Is(err, ErrAmbiguous).
func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// TaskFailedError carries the server-reported failure of an ingestion task.
type TaskFailedError struct {
	Handle   string
	FileName string
	Message  string
}

func (e *TaskFailedError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("task %s (%s) failed: %s", e.Handle, e.FileName, e.Message)
	}
	return fmt.Sprintf("task %s failed: %s", e.Handle, e.Message)
}

// Is allows errors.Is(err, ErrTaskFailed).
func (e *TaskFailedError) Is(target error) bool {
	return target == ErrTaskFailed
}

// UnableToDeleteError is returned when a delete is refused.
type UnableToDeleteError struct {
	ID     int
	Reason string
}

func (e *UnableToDeleteError) Error() string {
	return fmt.Sprintf("unable to delete item %d: %s", e.ID, e.Reason)
}

// Is allows errors.Is(err, ErrUnableToDelete).
func (e *UnableToDeleteError) Is(target error) bool {
	return target == ErrUnableToDelete
}
