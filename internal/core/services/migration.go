package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure MigrationService implements the interface.
var _ driving.MigrationService = (*MigrationService)(nil)

// MigrationService moves documents between correspondents.
type MigrationService struct {
	correspondents driving.CorrespondentService
	documents      driving.DocumentService
	mutator        *Mutator
}

// NewMigrationService creates a new migration service.
func NewMigrationService(
	correspondents driving.CorrespondentService,
	documents driving.DocumentService,
	mutator *Mutator,
) *MigrationService {
	return &MigrationService{
		correspondents: correspondents,
		documents:      documents,
		mutator:        mutator,
	}
}

// Migrate moves all documents of each source correspondent to the destination.
//
// The destination is resolved first; if that fails nothing else happens.
// Each source is then processed to completion, one at a time, with a single
// bulk edit covering exactly its documents. A failing source is recorded and
// the remaining sources are still attempted.
func (s *MigrationService) Migrate(ctx context.Context, fromIDs []int, to int) (*domain.MigrationReport, error) {
	logger.Section("Migrate correspondents")

	dest, err := s.correspondents.ResolveByID(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("resolve destination: %w", err)
	}

	report := &domain.MigrationReport{
		Destination: *dest,
		DryRun:      s.mutator.NoOp(),
	}

	seen := make(map[int]bool, len(fromIDs))
	for _, fromID := range fromIDs {
		if seen[fromID] {
			continue
		}
		seen[fromID] = true

		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Outcomes = append(report.Outcomes, s.migrateOne(ctx, fromID, *dest))
	}

	return report, nil
}

func (s *MigrationService) migrateOne(ctx context.Context, fromID int, dest domain.Correspondent) domain.MigrationOutcome {
	outcome := domain.MigrationOutcome{SourceID: fromID}

	if fromID == dest.ID {
		logger.Warn("Source %d is the destination, skipping", fromID)
		outcome.Source = &dest
		outcome.Skipped = true
		return outcome
	}

	source, err := s.correspondents.ResolveByID(ctx, fromID)
	if err != nil {
		outcome.Err = fmt.Errorf("resolve source: %w", err)
		return outcome
	}
	outcome.Source = source

	logger.Info("Moving from %s to %s", source, dest)

	ids, err := CollectIDs(s.documents.DocumentIDs(ctx, source))
	if err != nil {
		outcome.Err = fmt.Errorf("enumerate documents: %w", err)
		return outcome
	}
	outcome.DocumentIDs = ids

	result, err := s.mutator.Apply(ctx, domain.SetCorrespondent{DocumentIDs: ids, Correspondent: dest})
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Skipped = result.Skipped

	return outcome
}

// DeleteCorrespondent removes a correspondent, refusing when documents still
// refer to it unless force is set.
func (s *MigrationService) DeleteCorrespondent(
	ctx context.Context, id int, force bool,
) (*domain.Correspondent, bool, error) {
	c, err := s.correspondents.ResolveByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if c.DocumentCount > 0 && !force {
		return c, false, &domain.UnableToDeleteError{
			ID:     id,
			Reason: fmt.Sprintf("force not set, and %d documents refer to this ID", c.DocumentCount),
		}
	}

	result, err := s.mutator.Apply(ctx, domain.DeleteCorrespondent{Correspondent: *c})
	if err != nil {
		return c, false, err
	}

	return c, result.Skipped, nil
}
