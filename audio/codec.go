// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Format describes the layout of a PCM stream.
//
// A codec backend reports two formats: the negotiated output format
// (always interleaved float32 in this module) and the source-native
// format of the encoded stream.
type Format struct {
	// SampleRate of the stream in Hz.
	SampleRate int

	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int

	// BitDepth in bits per sample.
	BitDepth int

	// Float reports whether samples are floating point.
	Float bool

	// Interleaved reports whether channel data is interleaved.
	Interleaved bool

	// Encoding names the bitstream encoding, e.g. "PCM", "MP3", "Vorbis".
	Encoding string
}

// String returns a human-readable description of the format.
func (f Format) String() string {
	kind := "integer"
	if f.Float {
		kind = "float"
	}

	layout := "non-interleaved"
	if f.Interleaved {
		layout = "interleaved"
	}

	return fmt.Sprintf("%s, %d Hz, %s, %d-bit %s, %s",
		f.Encoding, f.SampleRate, f.ChannelLayoutDescription(), f.BitDepth, kind, layout)
}

// ChannelLayoutDescription returns a human-readable channel layout name.
func (f Format) ChannelLayoutDescription() string {
	switch f.Channels {
	case 1:
		return "Mono"
	case 2:
		return "Stereo"
	default:
		return fmt.Sprintf("%d channels", f.Channels)
	}
}

// Codec is the contract a format backend implements.
//
// A Codec is driven exclusively by a Decoder, which guarantees that
// every method other than Open is called only between a successful
// Open and the matching Close.  Backends therefore do not need to
// guard against closed-state misuse themselves.
//
// Codecs do not own the InputSource passed to Open and must not close
// it; the Decoder manages the source lifecycle.
type Codec interface {
	// Open parses and validates the stream headers and prepares the
	// codec for reading.  src is open, but its position is undefined:
	// it may have been partially read by another backend before being
	// reclaimed, so seekable sources should be rewound first.
	Open(src InputSource) error

	// Close releases codec-internal resources.
	Close() error

	// ReadAudio decodes up to frameCount frames of interleaved float32
	// samples into dst and returns the number of frames produced.
	// dst holds at least frameCount*Channels values.  A short count
	// with err == nil or io.EOF signals end of stream.
	ReadAudio(dst []float32, frameCount int) (int, error)

	// TotalFrames returns the total frame count, or -1 if unknown
	// (e.g. an unbounded stream).
	TotalFrames() int64

	// CurrentFrame returns the zero-based index of the next frame
	// ReadAudio will produce.
	CurrentFrame() int64

	// SupportsSeeking reports whether SeekToFrame is usable.
	SupportsSeeking() bool

	// SeekToFrame positions the codec at frame and returns the frame
	// actually landed on; backends with coarse seek granularity may
	// land before the requested frame.
	SeekToFrame(frame int64) (int64, error)

	// Format returns the negotiated output format.
	Format() Format

	// SourceFormat returns the source-native format of the stream.
	SourceFormat() Format

	// SourceDescription returns a human-readable description of the
	// source stream.
	SourceDescription() string
}
