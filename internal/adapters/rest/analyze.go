package rest

import (
	"errors"
	"io"
	"math"
	"net/http"

	"go.uber.org/zap"

	"github.com/Verisomusic/BeatMatch/internal/core/domain"
	"github.com/Verisomusic/BeatMatch/internal/wav"
)

type analyzeResponse struct {
	Tempo             float64                      `json:"tempo"`
	SpectralCentroid  float64                      `json:"spectral_centroid"`
	SpectralBandwidth float64                      `json:"spectral_bandwidth"`
	Style             string                       `json:"style"`
	RecommendedLabels []domain.LabelRecommendation `json:"recommended_labels"`
}

// Analyze handles POST /analyze: a multipart upload with a single WAV file
// under the "file" field.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart form field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "uploaded file exceeds the size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read uploaded file")
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "uploaded file is empty")
		return
	}

	audio, err := wav.Decode(data)
	if err != nil {
		h.log.Info("upload rejected",
			zap.String("filename", header.Filename),
			zap.Error(err))
		writeError(w, http.StatusBadRequest, "could not decode upload as WAV audio")
		return
	}

	sample := domain.AudioSample{Samples: audio.Samples, SampleRate: audio.SampleRate}
	result, err := h.svc.AnalyzeTrack(r.Context(), sample)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// Detail stays server-side; the client gets a generic message.
		h.log.Error("analysis failed",
			zap.String("filename", header.Filename),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Tempo:             round2(result.Features.Tempo),
		SpectralCentroid:  round2(result.Features.SpectralCentroid),
		SpectralBandwidth: round2(result.Features.SpectralBandwidth),
		Style:             string(result.Style),
		RecommendedLabels: result.Labels,
	})
}

// round2 rounds to two decimals for presentation; the domain keeps full
// precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
