package ports

import (
	"context"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
)

// FeatureExtractor computes scalar signal features from decoded audio.
// Extraction is CPU-bound and may take noticeable time for long uploads,
// so it accepts a context like any other blocking dependency.
type FeatureExtractor interface {
	Extract(ctx context.Context, sample domain.AudioSample) (domain.FeatureSet, error)
}
