package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
	"github.com/Verisomusic/BeatMatch/internal/core/ports"
)

const (
	// maxRecommendations caps the distinct label names per response.
	maxRecommendations = 5
	// maxSearchTerms bounds how many catalog queries one recommendation makes.
	maxSearchTerms = 2

	defaultCatalogTimeout = 4 * time.Second
)

// Recommender turns a style label into record label suggestions. Catalog
// failures are absorbed: Recommend never returns an error, degrading to the
// curated fallback table instead.
type Recommender struct {
	catalog ports.CatalogProvider // nil when credentials are not configured
	timeout time.Duration
	log     *zap.Logger
}

// NewRecommender constructs a Recommender. catalog may be nil, which forces
// the static fallback for every call. timeout bounds the live catalog
// lookup; zero selects a default of a few seconds.
func NewRecommender(catalog ports.CatalogProvider, timeout time.Duration, log *zap.Logger) *Recommender {
	if timeout <= 0 {
		timeout = defaultCatalogTimeout
	}
	return &Recommender{catalog: catalog, timeout: timeout, log: log}
}

// Recommend returns label suggestions for the style, deduplicated by name and
// capped at maxRecommendations. Live catalog results win; any error or empty
// result yields the static fallback list, so the sequence is always non-empty.
func (r *Recommender) Recommend(ctx context.Context, style domain.StyleLabel) []domain.LabelRecommendation {
	if r.catalog == nil {
		return FallbackLabels(style)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	terms := style.SearchTerms()
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}

	seen := make(map[string]struct{}, maxRecommendations)
	var labels []domain.LabelRecommendation
	for _, term := range terms {
		entries, err := r.catalog.SearchLabels(ctx, term, maxRecommendations-len(labels))
		if err != nil {
			// Single attempt per term, no retries: a slow or broken
			// catalog degrades to the fallback list.
			r.log.Warn("catalog lookup failed",
				zap.String("style", string(style)),
				zap.String("term", term),
				zap.Error(err))
			continue
		}
		for _, entry := range entries {
			if entry.Name == "" {
				continue
			}
			// Same case-insensitive key the catalog adapter dedupes on,
			// so casing variants across terms collapse to one entry.
			key := strings.ToLower(entry.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			labels = append(labels, entry)
		}
		if len(labels) >= maxRecommendations {
			break
		}
	}

	if len(labels) == 0 {
		return FallbackLabels(style)
	}
	return labels
}
