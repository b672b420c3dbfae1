// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic test doubles for the audio
// resolution and decoding machinery.
package audiotest

import (
	"io"

	"github.com/audioforge/decodekit/audio"
)

// MockCodec is a deterministic, sample-accurate audio.Codec for tests.
// Frame f on channel ch decodes to Sample(f, ch), so tests can verify
// exactly which wrapped frames a read produced.
type MockCodec struct {
	SampleRateVal int
	ChannelsVal   int
	TotalVal      int64

	// OpenErr, when set, makes Open fail.
	OpenErr error
	// Seekable disables seeking when false.
	Seekable bool

	// Waveform generates sample values; defaults to Sample.
	Waveform func(frame int64, ch int) float32

	Opened    bool
	Closed    bool
	OpenCalls int

	current int64
}

// NewMockCodec returns a seekable mock with the given channel count and
// total frames at 44.1kHz.
func NewMockCodec(channels int, totalFrames int64) *MockCodec {
	return &MockCodec{
		SampleRateVal: 44100,
		ChannelsVal:   channels,
		TotalVal:      totalFrames,
		Seekable:      true,
	}
}

// Sample is the default waveform: the frame index plus a small
// per-channel offset, exactly representable in float32 for any frame
// index a test will use.
func Sample(frame int64, ch int) float32 {
	return float32(frame) + float32(ch)/8
}

func (m *MockCodec) Open(src audio.InputSource) error {
	m.OpenCalls++
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.Opened = true
	m.current = 0
	return nil
}

func (m *MockCodec) Close() error {
	m.Closed = true
	return nil
}

func (m *MockCodec) ReadAudio(dst []float32, frameCount int) (int, error) {
	if m.current >= m.TotalVal {
		return 0, io.EOF
	}

	frames := int64(frameCount)
	if remaining := m.TotalVal - m.current; frames > remaining {
		frames = remaining
	}

	waveform := m.Waveform
	if waveform == nil {
		waveform = Sample
	}

	for i := int64(0); i < frames; i++ {
		for ch := 0; ch < m.ChannelsVal; ch++ {
			dst[i*int64(m.ChannelsVal)+int64(ch)] = waveform(m.current+i, ch)
		}
	}

	m.current += frames
	return int(frames), nil
}

func (m *MockCodec) TotalFrames() int64    { return m.TotalVal }
func (m *MockCodec) CurrentFrame() int64   { return m.current }
func (m *MockCodec) SupportsSeeking() bool { return m.Seekable }

func (m *MockCodec) SeekToFrame(frame int64) (int64, error) {
	if !m.Seekable {
		return -1, audio.ErrUnsupported
	}
	m.current = frame
	return frame, nil
}

func (m *MockCodec) Format() audio.Format {
	return audio.Format{
		SampleRate:  m.SampleRateVal,
		Channels:    m.ChannelsVal,
		BitDepth:    32,
		Float:       true,
		Interleaved: true,
		Encoding:    "PCM",
	}
}

func (m *MockCodec) SourceFormat() audio.Format { return m.Format() }

func (m *MockCodec) SourceDescription() string { return "mock audio" }

// MockSource is an audio.InputSource with a scriptable URL and open
// failure, for exercising resolver ownership handling.
type MockSource struct {
	URLVal  string
	OpenErr error

	OpenCount  int
	CloseCount int

	open bool
}

func (s *MockSource) URL() string  { return s.URLVal }
func (s *MockSource) IsOpen() bool { return s.open }

func (s *MockSource) Open() error {
	s.OpenCount++
	if s.OpenErr != nil {
		return s.OpenErr
	}
	s.open = true
	return nil
}

func (s *MockSource) Close() error {
	if s.open {
		s.CloseCount++
	}
	s.open = false
	return nil
}

func (s *MockSource) Read(p []byte) (int, error) {
	if !s.open {
		return 0, audio.ErrNotOpen
	}
	return 0, io.EOF
}

func (s *MockSource) Seek(offset int64, whence int) (int64, error) {
	if !s.open {
		return 0, audio.ErrNotOpen
	}
	return 0, nil
}

func (s *MockSource) SupportsSeeking() bool { return s.open }
func (s *MockSource) Length() int64         { return 0 }

var (
	_ audio.Codec       = (*MockCodec)(nil)
	_ audio.InputSource = (*MockSource)(nil)
)
