// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"testing"

	"github.com/audioforge/decodekit/audio"
	"github.com/audioforge/decodekit/internal/audiotest"
)

func newOpenDecoder(t *testing.T, codec *audiotest.MockCodec) *audio.Decoder {
	t.Helper()

	dec := audio.NewDecoder(&audiotest.MockSource{URLVal: "test.mock"}, codec)
	if err := dec.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return dec
}

func TestDecoder_OpenIdempotent(t *testing.T) {
	t.Parallel()

	codec := audiotest.NewMockCodec(2, 1000)
	dec := newOpenDecoder(t, codec)

	if err := dec.Open(); err != nil {
		t.Errorf("second Open() error = %v, want nil", err)
	}

	if codec.OpenCalls != 1 {
		t.Errorf("codec opened %d times, want 1", codec.OpenCalls)
	}
}

func TestDecoder_CloseIdempotent(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(2, 1000))

	if err := dec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := dec.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if dec.IsOpen() {
		t.Error("IsOpen() = true after Close")
	}
}

func TestDecoder_OpenFailureKeepsInputSource(t *testing.T) {
	t.Parallel()

	codec := audiotest.NewMockCodec(2, 1000)
	codec.OpenErr = errors.New("bad header")
	src := &audiotest.MockSource{URLVal: "test.mock"}

	dec := audio.NewDecoder(src, codec)
	if err := dec.Open(); err == nil {
		t.Fatal("Open() error = nil, want failure")
	}

	if dec.IsOpen() {
		t.Error("IsOpen() = true after failed Open")
	}

	if dec.InputSource() != src {
		t.Error("input source detached after failed Open, want still attached")
	}

	if got := dec.TakeInputSource(); got != src {
		t.Error("TakeInputSource() did not return the original source")
	}

	if dec.InputSource() != nil {
		t.Error("InputSource() != nil after TakeInputSource")
	}
}

func TestDecoder_ClosedStateSentinels(t *testing.T) {
	t.Parallel()

	dec := audio.NewDecoder(&audiotest.MockSource{URLVal: "test.mock"}, audiotest.NewMockCodec(2, 1000))

	buf := make([]float32, 128)
	if n := dec.ReadAudio(buf, 64); n != 0 {
		t.Errorf("ReadAudio() on closed decoder = %d, want 0", n)
	}

	if got := dec.TotalFrames(); got != -1 {
		t.Errorf("TotalFrames() on closed decoder = %d, want -1", got)
	}

	if got := dec.CurrentFrame(); got != -1 {
		t.Errorf("CurrentFrame() on closed decoder = %d, want -1", got)
	}

	if dec.SupportsSeeking() {
		t.Error("SupportsSeeking() on closed decoder = true, want false")
	}

	if got := dec.SeekToFrame(0); got != -1 {
		t.Errorf("SeekToFrame() on closed decoder = %d, want -1", got)
	}

	if got := dec.FormatDescription(); got != "" {
		t.Errorf("FormatDescription() on closed decoder = %q, want \"\"", got)
	}

	if got := dec.ChannelLayoutDescription(); got != "" {
		t.Errorf("ChannelLayoutDescription() on closed decoder = %q, want \"\"", got)
	}
}

func TestDecoder_ReadAudio(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(2, 100))

	buf := make([]float32, 64*2)
	n := dec.ReadAudio(buf, 64)
	if n != 64 {
		t.Fatalf("ReadAudio() = %d frames, want 64", n)
	}

	// Frame 0 channel 0, frame 0 channel 1, frame 1 channel 0.
	if buf[0] != audiotest.Sample(0, 0) || buf[1] != audiotest.Sample(0, 1) || buf[2] != audiotest.Sample(1, 0) {
		t.Errorf("unexpected samples %v %v %v", buf[0], buf[1], buf[2])
	}

	// Short read at end of stream.
	if n = dec.ReadAudio(buf, 64); n != 36 {
		t.Errorf("ReadAudio() near EOS = %d frames, want 36", n)
	}

	if n = dec.ReadAudio(buf, 64); n != 0 {
		t.Errorf("ReadAudio() at EOS = %d frames, want 0", n)
	}
}

func TestDecoder_ReadAudio_InvalidArguments(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(2, 100))

	buf := make([]float32, 16)
	if n := dec.ReadAudio(buf, 0); n != 0 {
		t.Errorf("ReadAudio(frameCount=0) = %d, want 0", n)
	}

	// dst too small for the requested frame count.
	if n := dec.ReadAudio(buf, 64); n != 0 {
		t.Errorf("ReadAudio(small dst) = %d, want 0", n)
	}
}

func TestDecoder_SeekToFrame(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(1, 1000))

	tests := []struct {
		name  string
		frame int64
		want  int64
	}{
		{"in range", 500, 500},
		{"first frame", 0, 0},
		{"last frame", 999, 999},
		{"past end", 1000, -1},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dec.SeekToFrame(tt.frame); got != tt.want {
				t.Errorf("SeekToFrame(%d) = %d, want %d", tt.frame, got, tt.want)
			}
		})
	}
}

func TestDecoder_SeekRoundTrip(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(1, 1000))

	if landed := dec.SeekToFrame(123); landed != 123 {
		t.Fatalf("SeekToFrame(123) = %d", landed)
	}

	if got := dec.CurrentFrame(); got != 123 {
		t.Errorf("CurrentFrame() after seek = %d, want 123", got)
	}
}

func TestDecoder_Descriptions(t *testing.T) {
	t.Parallel()

	dec := newOpenDecoder(t, audiotest.NewMockCodec(2, 1000))

	if got := dec.ChannelLayoutDescription(); got != "Stereo" {
		t.Errorf("ChannelLayoutDescription() = %q, want %q", got, "Stereo")
	}

	if got := dec.SourceFormatDescription(); got != "mock audio" {
		t.Errorf("SourceFormatDescription() = %q, want %q", got, "mock audio")
	}

	if got := dec.FormatDescription(); got == "" {
		t.Error("FormatDescription() = \"\", want non-empty")
	}
}

func TestDecoder_RepresentedObject(t *testing.T) {
	t.Parallel()

	dec := audio.NewDecoder(&audiotest.MockSource{URLVal: "test.mock"}, audiotest.NewMockCodec(2, 10))

	if dec.RepresentedObject() != nil {
		t.Error("RepresentedObject() != nil before set")
	}

	dec.SetRepresentedObject("track-42")
	if got := dec.RepresentedObject(); got != "track-42" {
		t.Errorf("RepresentedObject() = %v, want track-42", got)
	}
}

func TestDecoder_CloseClosesInputSource(t *testing.T) {
	t.Parallel()

	src := &audiotest.MockSource{URLVal: "test.mock"}
	dec := audio.NewDecoder(src, audiotest.NewMockCodec(2, 10))

	if err := dec.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := dec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if src.IsOpen() {
		t.Error("input source still open after Close")
	}
}

func BenchmarkDecoder_ReadAudio(b *testing.B) {
	codec := audiotest.NewMockCodec(2, 1<<40)
	dec := audio.NewDecoder(&audiotest.MockSource{URLVal: "bench.mock"}, codec)
	if err := dec.Open(); err != nil {
		b.Fatal(err)
	}

	buf := make([]float32, 4096*2)

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		dec.ReadAudio(buf, 4096)
	}
}
