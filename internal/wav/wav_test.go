package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/Verisomusic/BeatMatch/internal/testaudio"
)

func TestDecode_MonoPCM16(t *testing.T) {
	src := testaudio.Sine(440, 0.5, 8000)
	audio, err := Decode(testaudio.WAV(src, 8000, 1))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if audio.SampleRate != 8000 {
		t.Errorf("sample rate = %d, want 8000", audio.SampleRate)
	}
	if audio.Channels != 1 {
		t.Errorf("channels = %d, want 1", audio.Channels)
	}
	if len(audio.Samples) != len(src) {
		t.Fatalf("sample count = %d, want %d", len(audio.Samples), len(src))
	}
	for i := range src {
		if math.Abs(audio.Samples[i]-src[i]) > 0.001 {
			t.Fatalf("sample %d = %v, want ~%v", i, audio.Samples[i], src[i])
		}
	}
}

func TestDecode_StereoDownmix(t *testing.T) {
	src := testaudio.Sine(200, 0.25, 8000)
	audio, err := Decode(testaudio.WAV(src, 8000, 2))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if audio.Channels != 2 {
		t.Errorf("channels = %d, want 2", audio.Channels)
	}
	// Identical channels average back to the original signal.
	if len(audio.Samples) != len(src) {
		t.Fatalf("sample count = %d, want %d", len(audio.Samples), len(src))
	}
	for i := 0; i < len(src); i += 97 {
		if math.Abs(audio.Samples[i]-src[i]) > 0.001 {
			t.Fatalf("sample %d = %v, want ~%v", i, audio.Samples[i], src[i])
		}
	}
}

func TestDecode_SkipsUnknownChunks(t *testing.T) {
	base := testaudio.WAV(testaudio.Sine(100, 0.1, 8000), 8000, 1)

	// Rebuild with a LIST chunk wedged between fmt and data.
	var out bytes.Buffer
	out.Write(base[:12])
	fmtChunk := base[12 : 12+8+16]
	out.Write(fmtChunk)
	out.WriteString("LIST")
	info := []byte("INFOcomment")
	_ = binary.Write(&out, binary.LittleEndian, uint32(len(info)))
	out.Write(info)
	if len(info)%2 == 1 {
		out.WriteByte(0)
	}
	out.Write(base[12+8+16:])

	audio, err := Decode(out.Bytes())
	if err != nil {
		t.Fatalf("Decode with LIST chunk: %v", err)
	}
	if len(audio.Samples) == 0 {
		t.Error("expected samples after skipping LIST chunk")
	}
}

func TestDecode_Float32(t *testing.T) {
	src := []float64{0, 0.5, -0.5, 1, -1}
	var pcm bytes.Buffer
	for _, s := range src {
		_ = binary.Write(&pcm, binary.LittleEndian, float32(s))
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+pcm.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(3)) // IEEE float
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(44100))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(44100*4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(pcm.Len()))
	buf.Write(pcm.Bytes())

	audio, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, want := range src {
		if math.Abs(audio.Samples[i]-want) > 1e-6 {
			t.Errorf("sample %d = %v, want %v", i, audio.Samples[i], want)
		}
	}
}

// A tiny payload declaring a huge chunk size must be rejected before any
// allocation sized from the header field.
func TestDecode_OversizedChunkDeclaration(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(1<<30))
	buf.WriteString("WAVE")
	buf.WriteString("junk")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(1<<30))

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err := Decode(buf.Bytes())
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("Decode() error = %v, want ErrMalformed", err)
	}
	if grown := after.TotalAlloc - before.TotalAlloc; grown > 1<<20 {
		t.Errorf("Decode allocated %d bytes for a %d-byte payload", grown, buf.Len())
	}
}

func TestDecode_Rejects(t *testing.T) {
	valid := testaudio.WAV(testaudio.Sine(100, 0.1, 8000), 8000, 1)

	mp3ish := append([]byte("ID3\x04\x00"), bytes.Repeat([]byte{0xFF}, 64)...)

	truncated := make([]byte, 40)
	copy(truncated, valid)

	unsupported := make([]byte, len(valid))
	copy(unsupported, valid)
	// Flip the fmt audio-format field to an unsupported codec id.
	binary.LittleEndian.PutUint16(unsupported[20:22], 0x0055)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty payload", nil},
		{"not a RIFF file", mp3ish},
		{"truncated header", truncated},
		{"unsupported codec", unsupported},
		{"riff with no chunks", []byte("RIFF\x04\x00\x00\x00WAVE")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.data); !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode() error = %v, want ErrMalformed", err)
			}
		})
	}
}
