package paperless

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

// nextPage extracts the page number from a listing's "next" link.
// Returns 0 when there is no next page.
func nextPage(next *string) (int, error) {
	if next == nil || *next == "" {
		return 0, nil
	}

	u, err := url.Parse(*next)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed next link %q: %w", domain.ErrTransport, *next, err)
	}

	page, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || page < 1 {
		return 0, fmt.Errorf("%w: next link %q has no page number", domain.ErrTransport, *next)
	}
	return page, nil
}
