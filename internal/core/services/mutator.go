package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Mutator applies state-changing operations to the server.
// It is the single place where no-op mode suppresses writes.
type Mutator struct {
	api  driven.PaperlessAPI
	noop bool
}

// NewMutator creates a mutation dispatcher. When noop is true every
// mutation is logged and skipped.
func NewMutator(api driven.PaperlessAPI, noop bool) *Mutator {
	return &Mutator{api: api, noop: noop}
}

// NoOp reports whether mutations are being suppressed.
func (m *Mutator) NoOp() bool {
	return m.noop
}

// Apply dispatches one mutation.
func (m *Mutator) Apply(ctx context.Context, mutation domain.Mutation) (domain.MutationResult, error) {
	if m.noop {
		logger.Notice("noop: would %s", mutation.Describe())
		return domain.MutationResult{Skipped: true}, nil
	}

	logger.Debug("Applying: %s", mutation.Describe())

	switch mu := mutation.(type) {
	case domain.SetCorrespondent:
		if err := m.api.BulkSetCorrespondent(ctx, mu.DocumentIDs, mu.Correspondent.ID); err != nil {
			return domain.MutationResult{}, fmt.Errorf("bulk set correspondent: %w", err)
		}
		return domain.MutationResult{}, nil

	case domain.DeleteCorrespondent:
		if err := m.api.DeleteCorrespondent(ctx, mu.Correspondent.ID); err != nil {
			return domain.MutationResult{}, fmt.Errorf("delete correspondent %d: %w", mu.Correspondent.ID, err)
		}
		return domain.MutationResult{}, nil

	case domain.SubmitDocument:
		handle, err := m.api.UploadDocument(ctx, mu.Path)
		if err != nil {
			return domain.MutationResult{}, fmt.Errorf("upload %s: %w", mu.Path, err)
		}
		return domain.MutationResult{TaskHandle: handle}, nil

	default:
		return domain.MutationResult{}, fmt.Errorf("unknown mutation %T: %w", mutation, domain.ErrInvalidInput)
	}
}
