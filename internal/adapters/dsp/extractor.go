// Package dsp implements feature extraction over decoded audio samples.
//
// The extractor computes three scalars per track: tempo from an onset
// autocorrelation over the spectral flux envelope, and spectral centroid and
// bandwidth as energy-weighted means over short-time FFT frames.
package dsp

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
	"github.com/Verisomusic/BeatMatch/internal/core/ports"
)

const (
	frameSize = 2048
	hopSize   = 512

	minBPM = 40.0
	maxBPM = 220.0

	// defaultBPM is reported when the onset envelope carries no usable
	// periodicity (silence, or audio shorter than the autocorrelation span).
	defaultBPM = 120.0

	// tempoPriorCenter/Width shape the log-Gaussian weighting that breaks
	// ties between a period and its octave multiples.
	tempoPriorCenter = 120.0
	tempoPriorWidth  = 0.9
)

// Extractor computes a domain.FeatureSet from raw samples.
type Extractor struct {
	win []float64
}

var _ ports.FeatureExtractor = (*Extractor)(nil)

// NewExtractor builds an extractor with a precomputed Hann window.
func NewExtractor() *Extractor {
	win := make([]float64, frameSize)
	for i := range win {
		win[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(frameSize-1)))
	}
	return &Extractor{win: win}
}

// Extract computes tempo, spectral centroid and spectral bandwidth.
// Audio shorter than two analysis frames is rejected as invalid input.
func (e *Extractor) Extract(ctx context.Context, sample domain.AudioSample) (domain.FeatureSet, error) {
	if sample.SampleRate <= 0 {
		return domain.FeatureSet{}, fmt.Errorf("%w: sample rate must be positive", domain.ErrInvalidInput)
	}
	if len(sample.Samples) < frameSize+hopSize {
		return domain.FeatureSet{}, fmt.Errorf("%w: audio too short for analysis (%d samples)",
			domain.ErrInvalidInput, len(sample.Samples))
	}
	if err := ctx.Err(); err != nil {
		return domain.FeatureSet{}, err
	}

	mags := e.spectrogram(sample.Samples)
	centroid, bandwidth := spectralShape(mags, sample.SampleRate)
	tempo := e.tempo(mags, sample.SampleRate)

	fs := domain.FeatureSet{
		Tempo:             tempo,
		SpectralCentroid:  centroid,
		SpectralBandwidth: bandwidth,
	}
	if !fs.Valid() {
		return domain.FeatureSet{}, fmt.Errorf("dsp: extraction produced non-finite features")
	}
	return fs, nil
}

// spectrogram returns per-frame magnitude spectra (frameSize/2+1 bins each).
func (e *Extractor) spectrogram(samples []float64) [][]float64 {
	fft := fourier.NewFFT(frameSize)
	frames := 1 + (len(samples)-frameSize)/hopSize

	mags := make([][]float64, frames)
	buf := make([]float64, frameSize)
	for t := 0; t < frames; t++ {
		start := t * hopSize
		for k := 0; k < frameSize; k++ {
			buf[k] = samples[start+k] * e.win[k]
		}
		coeffs := fft.Coefficients(nil, buf)
		row := make([]float64, len(coeffs))
		for k, c := range coeffs {
			row[k] = cmplx.Abs(c)
		}
		mags[t] = row
	}
	return mags
}

// spectralShape computes the energy-weighted mean centroid and bandwidth
// across frames. Frames with negligible energy are ignored.
func spectralShape(mags [][]float64, sampleRate int) (centroid, bandwidth float64) {
	binHz := float64(sampleRate) / frameSize

	var sumCentroid, sumBandwidth, sumWeight float64
	for _, row := range mags {
		var energy float64
		for _, m := range row {
			energy += m
		}
		if energy < 1e-9 {
			continue
		}

		var c float64
		for k, m := range row {
			c += float64(k) * binHz * m
		}
		c /= energy

		var spread float64
		for k, m := range row {
			d := float64(k)*binHz - c
			spread += d * d * m
		}
		bw := math.Sqrt(spread / energy)

		sumCentroid += c * energy
		sumBandwidth += bw * energy
		sumWeight += energy
	}

	if sumWeight == 0 {
		return 0, 0
	}
	return sumCentroid / sumWeight, sumBandwidth / sumWeight
}

// tempo estimates BPM by autocorrelating the half-wave-rectified spectral
// flux envelope over the lag range covering minBPM..maxBPM.
func (e *Extractor) tempo(mags [][]float64, sampleRate int) float64 {
	if len(mags) < 2 {
		return defaultBPM
	}

	flux := make([]float64, len(mags)-1)
	for t := 1; t < len(mags); t++ {
		var f float64
		for k := range mags[t] {
			if d := mags[t][k] - mags[t-1][k]; d > 0 {
				f += d
			}
		}
		flux[t-1] = f
	}

	// Remove the DC component so the autocorrelation reflects periodicity
	// rather than overall loudness.
	var mean float64
	for _, f := range flux {
		mean += f
	}
	mean /= float64(len(flux))
	var energy float64
	for i := range flux {
		flux[i] -= mean
		energy += flux[i] * flux[i]
	}
	if energy < 1e-12 {
		return defaultBPM
	}

	frameRate := float64(sampleRate) / hopSize
	minLag := int(math.Floor(frameRate * 60 / maxBPM))
	maxLag := int(math.Ceil(frameRate * 60 / minBPM))
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(flux)-1 {
		maxLag = len(flux) - 2
	}
	if maxLag < minLag {
		return defaultBPM
	}

	ac := make([]float64, maxLag+2)
	lo := minLag - 1
	if lo < 1 {
		lo = 1
	}
	for lag := lo; lag <= maxLag+1 && lag < len(flux); lag++ {
		var sum float64
		for i := 0; i+lag < len(flux); i++ {
			sum += flux[i] * flux[i+lag]
		}
		ac[lag] = sum
	}

	bestLag := -1
	bestScore := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		bpm := 60 * frameRate / float64(lag)
		score := ac[lag] * tempoPrior(bpm)
		if score > bestScore {
			bestScore = score
			bestLag = lag
		}
	}
	if bestLag <= 0 {
		return defaultBPM
	}

	refined := refineLag(ac, bestLag)
	return 60 * frameRate / refined
}

// tempoPrior weights a candidate BPM by a log-Gaussian centered near common
// dance tempos, suppressing octave aliases of the true period.
func tempoPrior(bpm float64) float64 {
	d := math.Log2(bpm/tempoPriorCenter) / tempoPriorWidth
	return math.Exp(-0.5 * d * d)
}

// refineLag applies parabolic interpolation around the winning
// autocorrelation lag for sub-frame tempo resolution.
func refineLag(ac []float64, lag int) float64 {
	if lag-1 < 0 || lag+1 >= len(ac) {
		return float64(lag)
	}
	y0, y1, y2 := ac[lag-1], ac[lag], ac[lag+1]
	denom := y0 - 2*y1 + y2
	if denom == 0 {
		return float64(lag)
	}
	delta := 0.5 * (y0 - y2) / denom
	if delta > 0.5 || delta < -0.5 {
		return float64(lag)
	}
	return float64(lag) + delta
}
