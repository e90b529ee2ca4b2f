package driving

import (
	"context"
	"iter"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// DocumentService enumerates documents lazily, page by page.
//
// The returned sequences are single-use: ranging over one a second time
// yields domain.ErrSequenceConsumed. A nil filter enumerates every document
// on the server, which can be a very large sequence.
type DocumentService interface {
	// Documents yields full document snapshots in server order.
	Documents(ctx context.Context, filter *domain.Correspondent) iter.Seq2[domain.Document, error]

	// DocumentIDs yields document identifiers in server order.
	DocumentIDs(ctx context.Context, filter *domain.Correspondent) iter.Seq2[int, error]
}
