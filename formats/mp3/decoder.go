// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/audioforge/decodekit/audio"
)

func init() {
	audio.Register(audio.Registration{
		Name:       "MP3",
		Extensions: []string{"mp3"},
		MIMETypes:  []string{"audio/mpeg", "audio/mp3"},
		New:        New,
	})
}

// New returns an MP3 codec.  Most callers resolve decoders through the
// registry instead of constructing codecs directly.
func New() audio.Codec { return &codec{} }

// mp3Stream is the slice of *gomp3.Decoder the codec relies on.
type mp3Stream interface {
	io.Reader
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

// codec decodes MPEG-1/2 Layer III streams.  Decoded output is always
// interleaved 16-bit stereo, so one frame occupies four bytes and seek
// targets map directly to byte offsets in the decoded stream.
type codec struct {
	stream   mp3Stream
	seekable bool

	totalFrames  int64
	currentFrame int64

	buf []byte
}

// bytesPerFrame is fixed: go-mp3 emits 16-bit stereo regardless of the
// source channel layout.
const bytesPerFrame = 4

func (c *codec) Open(src audio.InputSource) error {
	// The source may have been partially read by another backend
	// before being reclaimed; start from the beginning.
	if src.SupportsSeeking() {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}

	dec, err := gomp3.NewDecoder(src)
	if err != nil {
		return fmt.Errorf("open mp3: %w", err)
	}

	c.stream = dec
	c.seekable = src.SupportsSeeking()
	c.currentFrame = 0

	// Length is the decoded size in bytes; zero means the stream is
	// not seekable and the duration is unknown.
	if length := dec.Length(); length > 0 {
		c.totalFrames = length / bytesPerFrame
	} else {
		c.totalFrames = -1
	}

	return nil
}

func (c *codec) Close() error {
	c.stream = nil
	c.buf = nil
	return nil
}

func (c *codec) ReadAudio(dst []float32, frameCount int) (int, error) {
	need := frameCount * bytesPerFrame
	if cap(c.buf) < need {
		c.buf = make([]byte, need)
	}
	c.buf = c.buf[:need]

	n, err := io.ReadFull(c.stream, c.buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("read mp3: %w", err)
	}

	framesRead := n / bytesPerFrame
	for i := 0; i < framesRead*2; i++ {
		v := int16(uint16(c.buf[2*i]) | uint16(c.buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}

	c.currentFrame += int64(framesRead)
	return framesRead, nil
}

func (c *codec) TotalFrames() int64  { return c.totalFrames }
func (c *codec) CurrentFrame() int64 { return c.currentFrame }

func (c *codec) SupportsSeeking() bool { return c.seekable }

func (c *codec) SeekToFrame(frame int64) (int64, error) {
	if _, err := c.stream.Seek(frame*bytesPerFrame, io.SeekStart); err != nil {
		return -1, fmt.Errorf("seek mp3: %w", err)
	}
	c.currentFrame = frame
	return frame, nil
}

func (c *codec) Format() audio.Format {
	return audio.Format{
		SampleRate:  c.stream.SampleRate(),
		Channels:    2,
		BitDepth:    32,
		Float:       true,
		Interleaved: true,
		Encoding:    "PCM",
	}
}

func (c *codec) SourceFormat() audio.Format {
	return audio.Format{
		SampleRate:  c.stream.SampleRate(),
		Channels:    2,
		BitDepth:    16,
		Interleaved: true,
		Encoding:    "MP3",
	}
}

func (c *codec) SourceDescription() string {
	return fmt.Sprintf("MPEG Layer III, %d Hz, %s",
		c.stream.SampleRate(), c.SourceFormat().ChannelLayoutDescription())
}
