package domain

import "strings"

// TaskStatus is the lifecycle state of an ingestion task.
type TaskStatus string

// Task states. Pending and Started are non-terminal.
const (
	TaskPending TaskStatus = "PENDING"
	TaskStarted TaskStatus = "STARTED"
	TaskSuccess TaskStatus = "SUCCESS"
	TaskFailure TaskStatus = "FAILURE"
)

// ParseTaskStatus maps a server status string onto the task state machine.
// RETRY counts as started, REVOKED as failure. The second return value is
// false when the status was not recognised and defaulted to pending.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING", "RECEIVED":
		return TaskPending, true
	case "STARTED", "RETRY":
		return TaskStarted, true
	case "SUCCESS":
		return TaskSuccess, true
	case "FAILURE", "REVOKED":
		return TaskFailure, true
	default:
		return TaskPending, false
	}
}

// IsTerminal returns true once no further transition can occur.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskSuccess || s == TaskFailure
}

// String returns the string representation.
func (s TaskStatus) String() string {
	return string(s)
}

// Task is an observed snapshot of an asynchronous server-side ingestion job.
// The client never mutates a task, it only polls it by handle.
type Task struct {
	// Handle is the opaque task identifier returned by the upload.
	Handle string

	// FileName is the name of the file being ingested.
	FileName string

	// Status is the current lifecycle state.
	Status TaskStatus

	// Result is the server's result or failure message, if any.
	Result *string

	// RelatedDocument is the id of the created document, if any.
	RelatedDocument *int
}

// TaskResult is what a successfully completed task yields.
type TaskResult struct {
	Result          string
	RelatedDocument *int
}
