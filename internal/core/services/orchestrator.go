package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
	"github.com/Verisomusic/BeatMatch/internal/core/ports"
)

// Orchestrator runs the analysis pipeline for one request:
// extract features, classify the style, gather label recommendations.
type Orchestrator struct {
	extractor   ports.FeatureExtractor
	recommender *Recommender
	log         *zap.Logger
}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator(extractor ports.FeatureExtractor, recommender *Recommender, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		extractor:   extractor,
		recommender: recommender,
		log:         log,
	}
}

// AnalyzeTrack analyzes one decoded upload. Extraction failures propagate
// (wrapped, preserving domain.ErrInvalidInput for the HTTP layer to map);
// recommendation cannot fail, so a returned result is always complete.
func (o *Orchestrator) AnalyzeTrack(ctx context.Context, sample domain.AudioSample) (domain.AnalysisResult, error) {
	features, err := o.extractor.Extract(ctx, sample)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("service: feature extraction failed: %w", err)
	}
	if !features.Valid() {
		return domain.AnalysisResult{}, fmt.Errorf("service: extractor produced an invalid feature set: %+v", features)
	}

	style := domain.Classify(features.Tempo)
	labels := o.recommender.Recommend(ctx, style)

	o.log.Info("track analyzed",
		zap.Float64("tempo", features.Tempo),
		zap.Float64("duration_s", sample.Duration()),
		zap.String("style", string(style)),
		zap.Int("labels", len(labels)))

	return domain.AnalysisResult{
		Features: features,
		Style:    style,
		Labels:   labels,
	}, nil
}
