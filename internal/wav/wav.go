// Package wav decodes RIFF/WAVE payloads into mono float64 samples.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

const (
	formatPCM       = 1
	formatIEEEFloat = 3
	// WAVE_FORMAT_EXTENSIBLE wraps the real format in a sub-format GUID.
	formatExtensible = 0xFFFE
)

var ErrMalformed = errors.New("wav: malformed file")

// Audio is a decoded waveform: mono samples in [-1, 1] plus the source
// sample rate and original channel count.
type Audio struct {
	Samples    []float64
	SampleRate int
	Channels   int
}

type format struct {
	audioFormat   uint16
	channels      uint16
	sampleRate    uint32
	bitsPerSample uint16
}

// Decode parses a complete WAV payload. Multi-channel audio is averaged down
// to mono. Supported encodings: PCM 8/16/24/32 bit and IEEE float32.
func Decode(data []byte) (Audio, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return Audio{}, fmt.Errorf("%w: missing RIFF/WAVE header", ErrMalformed)
	}

	var fmtChunk *format
	var pcm []byte

	// Walk the chunk list; real-world files carry LIST/INFO and other chunks
	// between fmt and data, so anything unrecognized is skipped.
	r := bytes.NewReader(data[12:])
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				break
			}
			return Audio{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		size := binary.LittleEndian.Uint32(hdr[4:8])
		// The size field is attacker-controlled; never allocate more than
		// the payload actually carries.
		if uint64(size) > uint64(r.Len()) {
			return Audio{}, fmt.Errorf("%w: truncated %q chunk", ErrMalformed, hdr[0:4])
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return Audio{}, fmt.Errorf("%w: truncated %q chunk", ErrMalformed, hdr[0:4])
		}
		// Chunks are word-aligned; odd sizes carry a pad byte.
		if size%2 == 1 {
			_, _ = r.Seek(1, io.SeekCurrent)
		}

		switch string(hdr[0:4]) {
		case "fmt ":
			f, err := parseFormat(body)
			if err != nil {
				return Audio{}, err
			}
			fmtChunk = &f
		case "data":
			pcm = body
		}
		if fmtChunk != nil && pcm != nil {
			break
		}
	}

	if fmtChunk == nil {
		return Audio{}, fmt.Errorf("%w: no fmt chunk", ErrMalformed)
	}
	if pcm == nil {
		return Audio{}, fmt.Errorf("%w: no data chunk", ErrMalformed)
	}

	samples, err := toMonoSamples(pcm, *fmtChunk)
	if err != nil {
		return Audio{}, err
	}
	if len(samples) == 0 {
		return Audio{}, fmt.Errorf("%w: no audio samples", ErrMalformed)
	}

	return Audio{
		Samples:    samples,
		SampleRate: int(fmtChunk.sampleRate),
		Channels:   int(fmtChunk.channels),
	}, nil
}

func parseFormat(body []byte) (format, error) {
	if len(body) < 16 {
		return format{}, fmt.Errorf("%w: short fmt chunk", ErrMalformed)
	}
	f := format{
		audioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		channels:      binary.LittleEndian.Uint16(body[2:4]),
		sampleRate:    binary.LittleEndian.Uint32(body[4:8]),
		bitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
	}
	if f.audioFormat == formatExtensible {
		// The effective format lives in the first two bytes of the
		// sub-format GUID at offset 24.
		if len(body) < 26 {
			return format{}, fmt.Errorf("%w: short extensible fmt chunk", ErrMalformed)
		}
		f.audioFormat = binary.LittleEndian.Uint16(body[24:26])
	}
	if f.channels == 0 || f.sampleRate == 0 {
		return format{}, fmt.Errorf("%w: invalid fmt chunk", ErrMalformed)
	}
	return f, nil
}

func toMonoSamples(pcm []byte, f format) ([]float64, error) {
	bytesPerSample := int(f.bitsPerSample) / 8
	if bytesPerSample == 0 {
		return nil, fmt.Errorf("%w: zero bits per sample", ErrMalformed)
	}

	var decode func(b []byte) float64
	switch {
	case f.audioFormat == formatPCM && f.bitsPerSample == 8:
		// 8-bit WAV is unsigned.
		decode = func(b []byte) float64 { return (float64(b[0]) - 128) / 128 }
	case f.audioFormat == formatPCM && f.bitsPerSample == 16:
		decode = func(b []byte) float64 {
			return float64(int16(binary.LittleEndian.Uint16(b))) / 32768
		}
	case f.audioFormat == formatPCM && f.bitsPerSample == 24:
		decode = func(b []byte) float64 {
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^int32(0xFFFFFF)
			}
			return float64(v) / 8388608
		}
	case f.audioFormat == formatPCM && f.bitsPerSample == 32:
		decode = func(b []byte) float64 {
			return float64(int32(binary.LittleEndian.Uint32(b))) / 2147483648
		}
	case f.audioFormat == formatIEEEFloat && f.bitsPerSample == 32:
		decode = func(b []byte) float64 {
			return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		}
	default:
		return nil, fmt.Errorf("%w: unsupported encoding (format %d, %d bit)",
			ErrMalformed, f.audioFormat, f.bitsPerSample)
	}

	frameSize := bytesPerSample * int(f.channels)
	frames := len(pcm) / frameSize
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		base := i * frameSize
		for ch := 0; ch < int(f.channels); ch++ {
			off := base + ch*bytesPerSample
			sum += decode(pcm[off : off+bytesPerSample])
		}
		samples[i] = sum / float64(f.channels)
	}
	return samples, nil
}
