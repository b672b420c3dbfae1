// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"

	"github.com/audioforge/decodekit/audio"
)

// mockAiffReader simulates the aiff.Decoder for testing.
type mockAiffReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	readErr    error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: m.sampleRate, NumChannels: m.channels}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := len(buf.Data)
	if n > len(m.samples)-m.offset {
		n = len(m.samples) - m.offset
	}
	copy(buf.Data, m.samples[m.offset:m.offset+n])
	m.offset += n
	return n, nil
}

func mockCodec(bitDepth int, samples []int) *codec {
	return &codec{
		dec:         &mockAiffReader{sampleRate: 44100, channels: 1, samples: samples},
		sampleRate:  44100,
		channels:    1,
		bitDepth:    bitDepth,
		totalFrames: int64(len(samples)),
	}
}

func TestCodec_Read16Bit(t *testing.T) {
	t.Parallel()

	c := mockCodec(16, []int{0, 16384, -16384, 32767})

	buf := make([]float32, 4)
	n, err := c.ReadAudio(buf, 4)
	if err != nil || n != 4 {
		t.Fatalf("ReadAudio() = %d, %v, want 4, nil", n, err)
	}

	expected := []float32{0.0, 0.5, -0.5, 1.0}
	for i := range expected {
		if math.Abs(float64(buf[i]-expected[i])) > 0.001 {
			t.Errorf("buf[%d] = %v, want ~%v", i, buf[i], expected[i])
		}
	}
	if got := c.CurrentFrame(); got != 4 {
		t.Errorf("CurrentFrame() = %d, want 4", got)
	}
}

func TestCodec_NormalizationPerBitDepth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		sample   int
		want     float32
	}{
		{"8-bit half scale", 8, 64, 0.5},
		{"16-bit half scale", 16, 16384, 0.5},
		{"24-bit half scale", 24, 4194304, 0.5},
		{"32-bit half scale", 32, 1073741824, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := mockCodec(tt.bitDepth, []int{tt.sample})
			buf := make([]float32, 1)
			if n, err := c.ReadAudio(buf, 1); err != nil || n != 1 {
				t.Fatalf("ReadAudio() = %d, %v", n, err)
			}
			if math.Abs(float64(buf[0]-tt.want)) > 0.001 {
				t.Errorf("sample = %v, want ~%v", buf[0], tt.want)
			}
		})
	}
}

func TestCodec_EOS(t *testing.T) {
	t.Parallel()

	c := mockCodec(16, []int{1, 2, 3})

	buf := make([]float32, 8)
	if n, err := c.ReadAudio(buf, 8); err != nil || n != 3 {
		t.Fatalf("ReadAudio() = %d, %v, want 3, nil", n, err)
	}
	if n, err := c.ReadAudio(buf, 8); err != io.EOF || n != 0 {
		t.Errorf("ReadAudio() at EOS = %d, %v, want 0, EOF", n, err)
	}
}

func TestCodec_SeekUnsupported(t *testing.T) {
	t.Parallel()

	c := mockCodec(16, []int{1, 2, 3})

	if c.SupportsSeeking() {
		t.Error("SupportsSeeking() = true")
	}
	if landed, err := c.SeekToFrame(1); err != ErrSeekUnsupported || landed != -1 {
		t.Errorf("SeekToFrame() = %d, %v, want -1, ErrSeekUnsupported", landed, err)
	}
}

func TestCodec_OpenRejectsGarbage(t *testing.T) {
	t.Parallel()

	src := audio.NewMemorySource("test.aiff", []byte("This is not AIFF data"))
	if err := src.Open(); err != nil {
		t.Fatalf("source Open() error = %v", err)
	}
	if err := New().Open(src); err == nil {
		t.Error("Open() error = nil, want failure")
	}
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{"aiff", "aif", "aifc"} {
		if !audio.HandlesFilesWithExtension(ext) {
			t.Errorf("HandlesFilesWithExtension(%s) = false", ext)
		}
	}
	if !audio.HandlesMIMEType("audio/x-aiff") {
		t.Error("HandlesMIMEType(audio/x-aiff) = false")
	}
}
