// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/audioforge/decodekit/audio"
)

// fakeStream serves a fixed block of decoded 16-bit stereo PCM the way
// the go-mp3 decoder does.
type fakeStream struct {
	data []byte
	pos  int64
	rate int
}

func newFakeStream(rate int, samples []int16) *fakeStream {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}
	return &fakeStream{data: data, rate: rate}
}

func (f *fakeStream) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

func (f *fakeStream) Seek(offset int64, whence int) (int64, error) {
	f.pos = offset
	return offset, nil
}

func (f *fakeStream) SampleRate() int { return f.rate }
func (f *fakeStream) Length() int64   { return int64(len(f.data)) }

// stereoFrames builds n stereo frames where frame i carries samples
// (i, -i).
func stereoFrames(n int) []int16 {
	samples := make([]int16, n*2)
	for i := 0; i < n; i++ {
		samples[2*i] = int16(i)
		samples[2*i+1] = int16(-i)
	}
	return samples
}

func TestCodec_FrameAccounting(t *testing.T) {
	t.Parallel()

	c := &codec{stream: newFakeStream(44100, stereoFrames(100)), seekable: true, totalFrames: 100}

	if got := c.TotalFrames(); got != 100 {
		t.Errorf("TotalFrames() = %d, want 100", got)
	}

	buf := make([]float32, 30*2)
	n, err := c.ReadAudio(buf, 30)
	if err != nil || n != 30 {
		t.Fatalf("ReadAudio() = %d, %v, want 30, nil", n, err)
	}
	if got := c.CurrentFrame(); got != 30 {
		t.Errorf("CurrentFrame() = %d, want 30", got)
	}
}

func TestCodec_SampleConversion(t *testing.T) {
	t.Parallel()

	c := &codec{stream: newFakeStream(44100, []int16{0, 16384, -16384, 32767}), totalFrames: 2}

	buf := make([]float32, 4)
	if n, err := c.ReadAudio(buf, 2); err != nil || n != 2 {
		t.Fatalf("ReadAudio() = %d, %v", n, err)
	}

	expected := []float32{0.0, 0.5, -0.5, 1.0}
	for i := range expected {
		if math.Abs(float64(buf[i]-expected[i])) > 0.001 {
			t.Errorf("buf[%d] = %v, want ~%v", i, buf[i], expected[i])
		}
	}
}

func TestCodec_SeekToFrame(t *testing.T) {
	t.Parallel()

	stream := newFakeStream(44100, stereoFrames(200))
	c := &codec{stream: stream, seekable: true, totalFrames: 200}

	landed, err := c.SeekToFrame(150)
	if err != nil || landed != 150 {
		t.Fatalf("SeekToFrame(150) = %d, %v", landed, err)
	}
	if stream.pos != 150*bytesPerFrame {
		t.Errorf("stream position = %d bytes, want %d", stream.pos, 150*bytesPerFrame)
	}

	buf := make([]float32, 2)
	if n, err := c.ReadAudio(buf, 1); err != nil || n != 1 {
		t.Fatalf("ReadAudio() = %d, %v", n, err)
	}
	if got := int16(buf[0] * 32768); got != 150 {
		t.Errorf("frame 150 left sample = %d, want 150", got)
	}
}

func TestCodec_ShortReadAtEOS(t *testing.T) {
	t.Parallel()

	c := &codec{stream: newFakeStream(44100, stereoFrames(5)), totalFrames: 5}

	buf := make([]float32, 8*2)
	n, err := c.ReadAudio(buf, 8)
	if err != nil || n != 5 {
		t.Fatalf("ReadAudio() = %d, %v, want 5, nil", n, err)
	}

	if n, err = c.ReadAudio(buf, 8); err != io.EOF || n != 0 {
		t.Errorf("ReadAudio() at EOS = %d, %v, want 0, EOF", n, err)
	}
}

func TestCodec_Formats(t *testing.T) {
	t.Parallel()

	c := &codec{stream: newFakeStream(48000, nil)}

	format := c.Format()
	if format.SampleRate != 48000 || format.Channels != 2 || !format.Float {
		t.Errorf("Format() = %+v", format)
	}

	src := c.SourceFormat()
	if src.BitDepth != 16 || src.Encoding != "MP3" {
		t.Errorf("SourceFormat() = %+v", src)
	}

	if got := c.SourceDescription(); got != "MPEG Layer III, 48000 Hz, Stereo" {
		t.Errorf("SourceDescription() = %q", got)
	}
}

func TestCodec_OpenRejectsGarbage(t *testing.T) {
	t.Parallel()

	src := audio.NewMemorySource("test.mp3", []byte("definitely not an mpeg stream"))
	if err := src.Open(); err != nil {
		t.Fatalf("source Open() error = %v", err)
	}
	if err := New().Open(src); err == nil {
		t.Error("Open() error = nil, want failure")
	}
}

func TestRegistration(t *testing.T) {
	t.Parallel()

	if !audio.HandlesFilesWithExtension("mp3") {
		t.Error("HandlesFilesWithExtension(mp3) = false")
	}
	if !audio.HandlesMIMEType("audio/mpeg") {
		t.Error("HandlesMIMEType(audio/mpeg) = false")
	}
}
