// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/audioforge/decodekit/audio"
)

func init() {
	audio.Register(audio.Registration{
		Name:       "Ogg Vorbis",
		Extensions: []string{"ogg", "oga"},
		MIMETypes:  []string{"audio/ogg", "application/ogg", "audio/vorbis"},
		New:        New,
	})
}

// New returns an Ogg Vorbis codec.  Most callers resolve decoders
// through the registry instead of constructing codecs directly.
func New() audio.Codec { return &codec{} }

// oggStream is the slice of *oggvorbis.Reader the codec relies on.
// Read counts in samples, everything else counts in frames.
type oggStream interface {
	Read(p []float32) (int, error)
	SampleRate() int
	Channels() int
	Length() int64
	Position() int64
	SetPosition(pos int64) error
}

// codec decodes Ogg Vorbis streams.  The reader already produces
// interleaved float32 samples, so decoding is a straight copy.
type codec struct {
	stream   oggStream
	seekable bool

	totalFrames int64
}

func (c *codec) Open(src audio.InputSource) error {
	// The source may have been partially read by another backend
	// before being reclaimed; start from the beginning.
	if src.SupportsSeeking() {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}

	r, err := oggvorbis.NewReader(src)
	if err != nil {
		return fmt.Errorf("open vorbis: %w", err)
	}

	c.stream = r
	c.seekable = src.SupportsSeeking()

	// Length requires a seekable source; zero means unknown.
	if length := r.Length(); length > 0 {
		c.totalFrames = length
	} else {
		c.totalFrames = -1
	}

	return nil
}

func (c *codec) Close() error {
	c.stream = nil
	return nil
}

func (c *codec) ReadAudio(dst []float32, frameCount int) (int, error) {
	channels := c.stream.Channels()
	want := frameCount * channels

	// Read returns sample counts and may stop at packet boundaries;
	// keep going until the request is filled or the stream ends.
	read := 0
	for read < want {
		n, err := c.stream.Read(dst[read:want])
		read += n
		if err != nil {
			if err == io.EOF {
				break
			}
			return read / channels, fmt.Errorf("read vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if read == 0 {
		return 0, io.EOF
	}
	return read / channels, nil
}

func (c *codec) TotalFrames() int64  { return c.totalFrames }
func (c *codec) CurrentFrame() int64 { return c.stream.Position() }

func (c *codec) SupportsSeeking() bool { return c.seekable }

func (c *codec) SeekToFrame(frame int64) (int64, error) {
	if err := c.stream.SetPosition(frame); err != nil {
		return -1, fmt.Errorf("seek vorbis: %w", err)
	}
	return frame, nil
}

func (c *codec) Format() audio.Format {
	return audio.Format{
		SampleRate:  c.stream.SampleRate(),
		Channels:    c.stream.Channels(),
		BitDepth:    32,
		Float:       true,
		Interleaved: true,
		Encoding:    "PCM",
	}
}

func (c *codec) SourceFormat() audio.Format {
	return audio.Format{
		SampleRate:  c.stream.SampleRate(),
		Channels:    c.stream.Channels(),
		BitDepth:    32,
		Float:       true,
		Interleaved: true,
		Encoding:    "Vorbis",
	}
}

func (c *codec) SourceDescription() string {
	return fmt.Sprintf("Ogg Vorbis, %d Hz, %s",
		c.stream.SampleRate(), c.SourceFormat().ChannelLayoutDescription())
}
