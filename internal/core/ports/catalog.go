package ports

import (
	"context"
	"errors"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
)

// ErrCatalogUnavailable indicates the external catalog could not serve the
// query (auth failure, timeout, malformed response). Callers are expected to
// absorb it and fall back to static data rather than surface it.
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// CatalogProvider queries an external music catalog for record labels
// associated with a search term. Implementations return at most limit
// entries, in catalog relevance order, with no empty names.
type CatalogProvider interface {
	SearchLabels(ctx context.Context, term string, limit int) ([]domain.LabelRecommendation, error)
}
