// SPDX-License-Identifier: EPL-2.0

package audio

import "log/slog"

// RepeatForever makes a Region loop indefinitely.
const RepeatForever = -1

// Region presents a Decoder-shaped Stream over a bounded, optionally
// repeating sub-range of a wrapped stream.
//
// Frame coordinates on the Region are local: frame 0 is the region's
// starting frame, and the span is frameCount*(repeatCount+1) when the
// repeat count is finite.  All reads and seeks are remapped onto the
// wrapped stream's coordinate space.
//
// The Region exclusively owns the wrapped stream and closes it when
// closed.
type Region struct {
	stream Stream

	start  int64
	count  int64
	toEnd  bool
	repeat int

	// completed repetitions so far; the wrapped stream's position is
	// always within repetition number `completed`.
	completed int64

	channels int
	open     bool
	log      *slog.Logger
}

// NewRegion wraps s in a region from startingFrame to the end of the
// stream, played once.
func NewRegion(s Stream, startingFrame int64) *Region {
	return &Region{stream: s, start: startingFrame, toEnd: true, log: slog.Default()}
}

// NewBoundedRegion wraps s in a region of frameCount frames starting at
// startingFrame, played once.
func NewBoundedRegion(s Stream, startingFrame, frameCount int64) *Region {
	return &Region{stream: s, start: startingFrame, count: frameCount, log: slog.Default()}
}

// NewRepeatingRegion wraps s in a region of frameCount frames starting
// at startingFrame, played once and then repeated repeatCount
// additional times.  Pass RepeatForever to loop indefinitely.
func NewRepeatingRegion(s Stream, startingFrame, frameCount int64, repeatCount int) *Region {
	return &Region{stream: s, start: startingFrame, count: frameCount, repeat: repeatCount, log: slog.Default()}
}

// SetLogger replaces the logger used for diagnostic messages.
func (r *Region) SetLogger(log *slog.Logger) {
	if log != nil {
		r.log = log
	}
}

// IsOpen reports whether the region is open.
func (r *Region) IsOpen() bool { return r.open }

// Open opens the wrapped stream if necessary, validates the region
// bounds against its total frame count, and seeks it to the starting
// frame.  Opening an already open region is a no-op.
func (r *Region) Open() error {
	if r.open {
		return nil
	}

	if !r.stream.IsOpen() {
		if err := r.stream.Open(); err != nil {
			return err
		}
	}

	total := r.stream.TotalFrames()
	if total < 0 {
		return invalidRegionError("", "the wrapped stream's length is unknown")
	}
	if r.start < 0 || r.start >= total {
		return invalidRegionError("", "starting frame lies outside the stream")
	}

	if r.toEnd {
		r.count = total - r.start
	}
	if r.count <= 0 || r.start+r.count > total {
		return invalidRegionError("", "frame count exceeds the stream")
	}

	if r.stream.SeekToFrame(r.start) < 0 {
		return inputOutputError("", ErrUnsupported)
	}

	r.channels = r.stream.Format().Channels
	r.completed = 0
	r.open = true
	return nil
}

// Close closes the wrapped stream.  Closing an already closed region is
// a no-op.
func (r *Region) Close() error {
	if !r.open {
		return nil
	}
	r.open = false
	return r.stream.Close()
}

// Format returns the wrapped stream's negotiated output format.
func (r *Region) Format() Format { return r.stream.Format() }

// ReadAudio fills dst with up to frameCount frames from the region,
// returning the number of frames produced.  A read that reaches the
// region boundary with repetitions remaining seeks the wrapped stream
// back to the starting frame and continues, so a single call may span a
// loop boundary.  Fewer frames than requested (down to 0) signals that
// the repetitions are exhausted.
func (r *Region) ReadAudio(dst []float32, frameCount int) int {
	if !r.open {
		r.log.Info("ReadAudio called on a region that is not open")
		return 0
	}

	if frameCount <= 0 || len(dst) < frameCount*r.channels {
		r.log.Warn("ReadAudio called with invalid parameters",
			"frameCount", frameCount, "dstLen", len(dst))
		return 0
	}

	// Loop boundary crossings are handled here with a bounded loop
	// over wrapped-stream reads, never by re-entering ReadAudio.
	var read int
	for read < frameCount {
		remaining := r.start + r.count - r.stream.CurrentFrame()
		if remaining <= 0 {
			if r.repeat != RepeatForever && r.completed >= int64(r.repeat) {
				break
			}
			if r.stream.SeekToFrame(r.start) < 0 {
				break
			}
			r.completed++
			remaining = r.count
		}

		want := int64(frameCount - read)
		if want > remaining {
			want = remaining
		}

		n := r.stream.ReadAudio(dst[read*r.channels:], int(want))
		if n <= 0 {
			break
		}
		read += n
	}

	return read
}

// TotalFrames returns the region's span in its local coordinate space:
// frameCount*(repeatCount+1).  It returns -1 when the region is closed
// or the repeat count is infinite.
func (r *Region) TotalFrames() int64 {
	if !r.open {
		r.log.Info("TotalFrames called on a region that is not open")
		return -1
	}
	if r.repeat == RepeatForever {
		return -1
	}
	return r.count * int64(r.repeat+1)
}

// CurrentFrame returns the next frame to be read, in the region's local
// coordinate space, or -1 when closed.
func (r *Region) CurrentFrame() int64 {
	if !r.open {
		r.log.Info("CurrentFrame called on a region that is not open")
		return -1
	}
	return r.stream.CurrentFrame() - r.start + r.count*r.completed
}

// SupportsSeeking delegates to the wrapped stream.
func (r *Region) SupportsSeeking() bool {
	if !r.open {
		return false
	}
	return r.stream.SupportsSeeking()
}

// SeekToFrame positions the region at the given local frame, mapping it
// to a repetition index and an offset within the region.  It returns
// the local frame landed on, or -1 when closed, out of range, or the
// wrapped seek fails.
func (r *Region) SeekToFrame(frame int64) int64 {
	if !r.open {
		r.log.Info("SeekToFrame called on a region that is not open")
		return -1
	}

	if frame < 0 {
		r.log.Warn("SeekToFrame called with invalid parameters", "frame", frame)
		return -1
	}
	if total := r.TotalFrames(); total >= 0 && frame >= total {
		r.log.Warn("SeekToFrame called with invalid parameters", "frame", frame)
		return -1
	}

	repetition := frame / r.count
	offset := frame % r.count

	landed := r.stream.SeekToFrame(r.start + offset)
	if landed < 0 {
		return -1
	}

	r.completed = repetition
	return landed - r.start + r.count*repetition
}

var _ Stream = (*Region)(nil)
