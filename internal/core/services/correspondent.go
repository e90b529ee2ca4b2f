package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driven"
	"github.com/custodia-labs/paperless-cli/internal/core/ports/driving"
	"github.com/custodia-labs/paperless-cli/internal/logger"
)

// Ensure CorrespondentService implements the interface.
var _ driving.CorrespondentService = (*CorrespondentService)(nil)

// CorrespondentService resolves correspondents against the server.
// Nothing is cached between calls.
type CorrespondentService struct {
	api driven.CorrespondentAPI
}

// NewCorrespondentService creates a new correspondent service.
func NewCorrespondentService(api driven.CorrespondentAPI) *CorrespondentService {
	return &CorrespondentService{api: api}
}

// List returns every correspondent whose name contains nameContains.
func (s *CorrespondentService) List(ctx context.Context, nameContains string) ([]domain.Correspondent, error) {
	var all []domain.Correspondent

	page := 1
	for page != 0 {
		logger.Debug("Fetching correspondents page %d (name filter %q)", page, nameContains)
		p, err := s.api.ListCorrespondents(ctx, driven.CorrespondentQuery{
			NameContains: nameContains,
			Page:         page,
		})
		if err != nil {
			return nil, fmt.Errorf("list correspondents: %w", err)
		}
		all = append(all, p.Items...)
		page = p.Next
	}

	return all, nil
}

// ResolveByName returns the single correspondent a name refers to.
//
// Exact (case-insensitive) matches take precedence over substring matches.
// Zero candidates is ErrNotFound; more than one is an AmbiguousError.
func (s *CorrespondentService) ResolveByName(ctx context.Context, name string) (*domain.Correspondent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("resolve correspondent: empty name: %w", domain.ErrInvalidInput)
	}

	candidates, err := s.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("resolve correspondent %q: %w", name, err)
	}

	var exact []domain.Correspondent
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			exact = append(exact, c)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = candidates
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("correspondent %q: %w", name, domain.ErrNotFound)
	case 1:
		logger.Debug("Resolved %q to %s", name, matches[0])
		return &matches[0], nil
	default:
		return nil, &domain.AmbiguousError{Name: name, Matches: matches}
	}
}

// ResolveByID fetches a correspondent by ID.
func (s *CorrespondentService) ResolveByID(ctx context.Context, id int) (*domain.Correspondent, error) {
	c, err := s.api.GetCorrespondent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("correspondent %d: %w", id, err)
	}
	return c, nil
}
