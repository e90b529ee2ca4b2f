package driving

import (
	"context"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// MigrationService moves documents between correspondents and deletes
// correspondents safely.
type MigrationService interface {
	// Migrate moves every document of each source correspondent to the
	// destination. An invalid destination fails before any work starts;
	// per-source failures are recorded in the report.
	Migrate(ctx context.Context, fromIDs []int, to int) (*domain.MigrationReport, error)

	// DeleteCorrespondent removes a correspondent. Without force it refuses
	// when documents still refer to it. skipped is true in no-op mode.
	DeleteCorrespondent(ctx context.Context, id int, force bool) (c *domain.Correspondent, skipped bool, err error)
}
