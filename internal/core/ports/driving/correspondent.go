package driving

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// CorrespondentService resolves correspondents to canonical server records.
type CorrespondentService interface {
	// List returns every correspondent whose name contains nameContains.
	// An empty filter lists all correspondents.
	List(ctx context.Context, nameContains string) ([]domain.Correspondent, error)

	// ResolveByName returns the single correspondent a name refers to.
	// Fails with domain.ErrNotFound or domain.ErrAmbiguous.
	ResolveByName(ctx context.Context, name string) (*domain.Correspondent, error)

	// ResolveByID fetches a correspondent by ID.
	// Fails with domain.ErrNotFound.
	ResolveByID(ctx context.Context, id int) (*domain.Correspondent, error)
}
