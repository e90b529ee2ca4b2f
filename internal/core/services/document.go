package services

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService enumerates documents page by page.
type DocumentService struct {
	api driven.DocumentAPI
}

// NewDocumentService creates a new document service.
func NewDocumentService(api driven.DocumentAPI) *DocumentService {
	return &DocumentService{api: api}
}

// Documents yields full document snapshots. A nil filter yields every
// document on the server.
func (s *DocumentService) Documents(ctx context.Context, filter *domain.Correspondent) iter.Seq2[domain.Document, error] {
	return pages(ctx, s.api, filter, false, func(d domain.Document) domain.Document { return d })
}

// DocumentIDs yields document identifiers only.
func (s *DocumentService) DocumentIDs(ctx context.Context, filter *domain.Correspondent) iter.Seq2[int, error] {
	return pages(ctx, s.api, filter, true, func(d domain.Document) int { return d.ID })
}

// pages builds a single-use sequence that fetches the next page only once
// the consumer has drained the previous one.
func pages[T any](
	ctx context.Context, api driven.DocumentAPI, filter *domain.Correspondent, idsOnly bool, project func(domain.Document) T,
) iter.Seq2[T, error] {
	var used atomic.Bool

	return func(yield func(T, error) bool) {
		var zero T
		if used.Swap(true) {
			yield(zero, domain.ErrSequenceConsumed)
			return
		}

		q := driven.DocumentQuery{IDsOnly: idsOnly, Page: 1}
		if filter != nil {
			id := filter.ID
			q.CorrespondentID = &id
		}

		for q.Page != 0 {
			logger.Debug("Fetching documents page %d", q.Page)
			page, err := api.ListDocuments(ctx, q)
			if err != nil {
				yield(zero, fmt.Errorf("list documents page %d: %w", q.Page, err))
				return
			}
			for _, d := range page.Items {
				if !yield(project(d), nil) {
					return
				}
			}
			q.Page = page.Next
		}
	}
}

// CollectIDs drains an id sequence into a slice, stopping at the first error.
func CollectIDs(seq iter.Seq2[int, error]) ([]int, error) {
	ids := []int{}
	for id, err := range seq {
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
