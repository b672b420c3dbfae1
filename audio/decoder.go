// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"log/slog"
)

// Stream is the read/seek surface shared by Decoder and Region.  It is
// what playback callers drive once resolution is done.
//
// A Stream is not safe for concurrent use; the design assumes one
// reader/seeker goroutine per open stream.
type Stream interface {
	Open() error
	Close() error
	IsOpen() bool
	Format() Format
	ReadAudio(dst []float32, frameCount int) int
	TotalFrames() int64
	CurrentFrame() int64
	SupportsSeeking() bool
	SeekToFrame(frame int64) int64
}

// Decoder pairs an InputSource with a codec backend and enforces the
// open/close state machine common to all backends.
//
// While closed, read/seek/introspection calls are benign no-ops that
// return sentinel values (0, -1, false, zero Format) and emit a
// diagnostic log entry; they never fail hard.  This treats call-order
// mistakes as programmer errors the caller can recover from.
type Decoder struct {
	src    InputSource
	codec  Codec
	open   bool
	log    *slog.Logger
	repObj any
}

// NewDecoder returns a closed Decoder that takes ownership of src and
// decodes it with codec.  Most callers obtain decoders through a
// Resolver instead.
func NewDecoder(src InputSource, codec Codec) *Decoder {
	return &Decoder{src: src, codec: codec, log: slog.Default()}
}

// SetLogger replaces the logger used for diagnostic messages.
func (d *Decoder) SetLogger(log *slog.Logger) {
	if log != nil {
		d.log = log
	}
}

// InputSource returns the owned input source, which may be nil if it
// was reclaimed with TakeInputSource.
func (d *Decoder) InputSource() InputSource { return d.src }

// TakeInputSource detaches and returns the owned input source, leaving
// the decoder holding none.  It is used to reclaim the source from a
// decoder that failed to open so another backend can be tried.
func (d *Decoder) TakeInputSource() InputSource {
	src := d.src
	d.src = nil
	return src
}

// URL returns the URL of the owned input source, or "" if the source
// was reclaimed.
func (d *Decoder) URL() string {
	if d.src == nil {
		return ""
	}
	return d.src.URL()
}

// RepresentedObject returns the opaque caller-attached tag.
func (d *Decoder) RepresentedObject() any { return d.repObj }

// SetRepresentedObject attaches an opaque tag to the decoder.
func (d *Decoder) SetRepresentedObject(obj any) { d.repObj = obj }

// IsOpen reports whether the decoder is open.
func (d *Decoder) IsOpen() bool { return d.open }

// Open opens the input source if necessary and then the codec backend,
// which parses headers and negotiates the output format.  Opening an
// already open decoder is a no-op returning nil.
//
// On failure the decoder remains closed with the input source still
// attached; callers that want to retry a different backend must
// reclaim it with TakeInputSource.
func (d *Decoder) Open() error {
	if d.open {
		d.log.Info("Open called on a decoder that is already open", "url", d.URL())
		return nil
	}

	if d.src == nil {
		return inputOutputError("", errors.New("decoder has no input source"))
	}

	if !d.src.IsOpen() {
		if err := d.src.Open(); err != nil {
			return inputOutputError(d.src.URL(), err)
		}
	}

	if err := d.codec.Open(d.src); err != nil {
		return inputOutputError(d.src.URL(), err)
	}

	d.open = true
	return nil
}

// Close closes the codec backend and then the input source.  Closing an
// already closed decoder is a no-op returning nil.
//
// The input source is closed even if the backend close fails; the
// decoder transitions to closed only when the backend close succeeded,
// and Close reports failure if either step failed.
func (d *Decoder) Close() error {
	if !d.open {
		d.log.Info("Close called on a decoder that is not open", "url", d.URL())
		return nil
	}

	err := d.codec.Close()
	if err == nil {
		d.open = false
	}

	if d.src != nil {
		if serr := d.src.Close(); serr != nil && err == nil {
			err = serr
		}
	}

	if err != nil {
		return inputOutputError(d.URL(), err)
	}
	return nil
}

// Format returns the negotiated output format, or the zero Format if
// the decoder is closed.
func (d *Decoder) Format() Format {
	if !d.open {
		return Format{}
	}
	return d.codec.Format()
}

// SourceFormat returns the source-native format, or the zero Format if
// the decoder is closed.
func (d *Decoder) SourceFormat() Format {
	if !d.open {
		return Format{}
	}
	return d.codec.SourceFormat()
}

// FormatDescription returns a description of the negotiated output
// format, or "" if the decoder is closed.
func (d *Decoder) FormatDescription() string {
	if !d.open {
		d.log.Info("FormatDescription called on a decoder that is not open", "url", d.URL())
		return ""
	}
	return d.codec.Format().String()
}

// SourceFormatDescription returns a description of the source stream,
// or "" if the decoder is closed.
func (d *Decoder) SourceFormatDescription() string {
	if !d.open {
		d.log.Info("SourceFormatDescription called on a decoder that is not open", "url", d.URL())
		return ""
	}
	return d.codec.SourceDescription()
}

// ChannelLayoutDescription returns a description of the channel layout,
// or "" if the decoder is closed.
func (d *Decoder) ChannelLayoutDescription() string {
	if !d.open {
		d.log.Info("ChannelLayoutDescription called on a decoder that is not open", "url", d.URL())
		return ""
	}
	return d.codec.Format().ChannelLayoutDescription()
}

// ReadAudio decodes up to frameCount frames of interleaved float32
// samples into dst and returns the number of frames produced, which may
// be less than requested at end of stream.  It returns 0, without
// signaling an error, when the decoder is closed or the arguments are
// invalid.
func (d *Decoder) ReadAudio(dst []float32, frameCount int) int {
	if !d.open {
		d.log.Info("ReadAudio called on a decoder that is not open", "url", d.URL())
		return 0
	}

	if frameCount <= 0 || len(dst) < frameCount*d.codec.Format().Channels {
		d.log.Warn("ReadAudio called with invalid parameters",
			"url", d.URL(), "frameCount", frameCount, "dstLen", len(dst))
		return 0
	}

	n, err := d.codec.ReadAudio(dst, frameCount)
	if err != nil && err != io.EOF {
		d.log.Error("read failed", "url", d.URL(), "error", err)
	}
	return n
}

// TotalFrames returns the total frame count, or -1 if the decoder is
// closed or the stream length is unknown.
func (d *Decoder) TotalFrames() int64 {
	if !d.open {
		d.log.Info("TotalFrames called on a decoder that is not open", "url", d.URL())
		return -1
	}
	return d.codec.TotalFrames()
}

// CurrentFrame returns the zero-based index of the next frame to be
// read, or -1 if the decoder is closed.
func (d *Decoder) CurrentFrame() int64 {
	if !d.open {
		d.log.Info("CurrentFrame called on a decoder that is not open", "url", d.URL())
		return -1
	}
	return d.codec.CurrentFrame()
}

// SupportsSeeking reports whether SeekToFrame is usable.  It returns
// false when the decoder is closed.
func (d *Decoder) SupportsSeeking() bool {
	if !d.open {
		d.log.Info("SupportsSeeking called on a decoder that is not open", "url", d.URL())
		return false
	}
	return d.codec.SupportsSeeking()
}

// SeekToFrame positions the decoder at frame and returns the frame
// actually landed on, which may differ for backends with coarse seek
// granularity.  It returns -1 when the decoder is closed, frame is out
// of range, or the backend seek fails.
func (d *Decoder) SeekToFrame(frame int64) int64 {
	if !d.open {
		d.log.Info("SeekToFrame called on a decoder that is not open", "url", d.URL())
		return -1
	}

	if frame < 0 || frame >= d.codec.TotalFrames() {
		d.log.Warn("SeekToFrame called with invalid parameters", "url", d.URL(), "frame", frame)
		return -1
	}

	landed, err := d.codec.SeekToFrame(frame)
	if err != nil {
		d.log.Error("seek failed", "url", d.URL(), "frame", frame, "error", err)
		return -1
	}
	return landed
}

var _ Stream = (*Decoder)(nil)
