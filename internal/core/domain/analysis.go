package domain

import (
	"errors"
	"math"
)

// ErrInvalidInput marks failures caused by the caller's payload (missing,
// empty, or undecodable audio). The REST layer maps it to a 400 response;
// everything else becomes a generic 500.
var ErrInvalidInput = errors.New("invalid input")

// AudioSample is the decoded waveform for a single request: mono samples
// normalized to [-1, 1] plus the sample rate they were recorded at.
type AudioSample struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the sample length in seconds.
func (a AudioSample) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// FeatureSet holds the scalar signal features extracted from one track.
type FeatureSet struct {
	Tempo             float64 // beats per minute
	SpectralCentroid  float64 // Hz
	SpectralBandwidth float64 // Hz
}

// Valid reports whether every feature is finite and the tempo is positive.
// A FeatureSet that fails this check must never reach classification.
func (f FeatureSet) Valid() bool {
	for _, v := range []float64{f.Tempo, f.SpectralCentroid, f.SpectralBandwidth} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return f.Tempo > 0 && f.SpectralCentroid >= 0 && f.SpectralBandwidth >= 0
}

// LabelRecommendation is one record label suggestion. URL is the label's
// canonical profile page and may be empty when the catalog did not provide one.
type LabelRecommendation struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AnalysisResult is the assembled outcome of one analysis request.
type AnalysisResult struct {
	Features FeatureSet
	Style    StyleLabel
	Labels   []LabelRecommendation
}
