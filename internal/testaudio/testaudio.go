// Package testaudio synthesizes small WAV fixtures for tests.
package testaudio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// ClickTrack generates a steady click track at the given BPM: short broadband
// bursts on an otherwise silent signal, which is what tempo detection keys on.
func ClickTrack(bpm float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)

	period := 60.0 / bpm * float64(sampleRate)
	const burstLen = 64
	for click := 0; ; click++ {
		start := int(math.Round(float64(click) * period))
		if start >= n {
			break
		}
		for j := 0; j < burstLen && start+j < n; j++ {
			amp := 0.9 * math.Exp(-float64(j)/12.0)
			if j%2 == 1 {
				amp = -amp
			}
			samples[start+j] = amp
		}
	}
	return samples
}

// Sine generates a pure tone, useful for spectral-shape assertions.
func Sine(freq float64, seconds float64, sampleRate int) []float64 {
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.7 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return samples
}

// WAV encodes samples as a 16-bit PCM WAV payload, duplicating the mono
// signal across the requested channel count.
func WAV(samples []float64, sampleRate int, channels int) []byte {
	var pcm bytes.Buffer
	for _, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s)) * 32767)
		for ch := 0; ch < channels; ch++ {
			_ = binary.Write(&pcm, binary.LittleEndian, v)
		}
	}

	var buf bytes.Buffer
	dataLen := uint32(pcm.Len())
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*channels*2)) // byte rate
	_ = binary.Write(&buf, binary.LittleEndian, uint16(channels*2))            // block align
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))                    // bits per sample

	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, dataLen)
	buf.Write(pcm.Bytes())
	return buf.Bytes()
}
