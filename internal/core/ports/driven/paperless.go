package driven

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// Page is one page of a paginated server listing.
type Page[T any] struct {
	// Items are the entries on this page, in server order.
	Items []T

	// Count is the total number of entries across all pages.
	Count int

	// Next is the next page number, or 0 when this is the last page.
	Next int
}

// CorrespondentQuery selects a page of correspondents.
type CorrespondentQuery struct {
	// NameContains filters by case-insensitive substring when non-empty.
	NameContains string

	// Page is the 1-based page number.
	Page int
}

// DocumentQuery selects a page of documents.
type DocumentQuery struct {
	// CorrespondentID filters by correspondent when non-nil.
	CorrespondentID *int

	// IDsOnly asks the server to return only document ids.
	IDsOnly bool

	// Page is the 1-based page number.
	Page int
}

// CorrespondentAPI reads and deletes correspondents.
type CorrespondentAPI interface {
	// ListCorrespondents returns one page of correspondents.
	ListCorrespondents(ctx context.Context, q CorrespondentQuery) (*Page[domain.Correspondent], error)

	// GetCorrespondent fetches a correspondent by ID.
	// Returns an error wrapping domain.ErrNotFound if it does not exist.
	GetCorrespondent(ctx context.Context, id int) (*domain.Correspondent, error)

	// DeleteCorrespondent removes a correspondent by ID.
	DeleteCorrespondent(ctx context.Context, id int) error
}

// DocumentAPI lists, bulk-edits and uploads documents.
type DocumentAPI interface {
	// ListDocuments returns one page of documents.
	ListDocuments(ctx context.Context, q DocumentQuery) (*Page[domain.Document], error)

	// BulkSetCorrespondent reassigns all given documents in one call.
	// An empty id list is a no-op.
	BulkSetCorrespondent(ctx context.Context, documentIDs []int, correspondentID int) error

	// UploadDocument submits a local file for ingestion and returns the task handle.
	UploadDocument(ctx context.Context, path string) (string, error)
}

// TaskAPI observes ingestion tasks.
type TaskAPI interface {
	// GetTask fetches the current status of a task by handle.
	// Returns an error wrapping domain.ErrNotFound if the server has no such task.
	GetTask(ctx context.Context, handle string) (*domain.Task, error)
}

// PaperlessAPI is the full set of server operations the core needs.
type PaperlessAPI interface {
	CorrespondentAPI
	DocumentAPI
	TaskAPI
}
