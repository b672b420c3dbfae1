// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/audioforge/decodekit/audio"
)

func init() {
	audio.Register(audio.Registration{
		Name:       "AIFF",
		Extensions: []string{"aiff", "aif", "aifc"},
		MIMETypes:  []string{"audio/aiff", "audio/x-aiff"},
		New:        New,
	})
}

// New returns an AIFF codec.  Most callers resolve decoders through
// the registry instead of constructing codecs directly.
func New() audio.Codec { return &codec{} }

// aiffReader is the slice of *aiff.Decoder the codec relies on.
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// codec decodes AIFF streams.  The underlying reader is strictly
// sequential, so seeking is unsupported.
type codec struct {
	dec aiffReader

	sampleRate int
	channels   int
	bitDepth   int

	totalFrames  int64
	currentFrame int64

	intBuf *goaudio.IntBuffer
}

func (c *codec) Open(src audio.InputSource) error {
	// The source may have been partially read by another backend
	// before being reclaimed; start from the beginning.
	if src.SupportsSeeking() {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}

	dec := aiff.NewDecoder(src)
	if !dec.IsValidFile() {
		return ErrNotAiffFile
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil || dec.Err() != nil {
		return ErrNotAiffFile
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("open aiff: unsupported bit depth %d", dec.BitDepth)
	}

	c.dec = dec
	c.sampleRate = format.SampleRate
	c.channels = format.NumChannels
	c.bitDepth = int(dec.BitDepth)
	c.totalFrames = int64(dec.NumSampleFrames)
	c.currentFrame = 0

	return nil
}

func (c *codec) Close() error {
	c.dec = nil
	c.intBuf = nil
	return nil
}

func (c *codec) ReadAudio(dst []float32, frameCount int) (int, error) {
	want := frameCount * c.channels

	if c.intBuf == nil || cap(c.intBuf.Data) < want {
		c.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: &goaudio.Format{NumChannels: c.channels, SampleRate: c.sampleRate},
		}
	}
	c.intBuf.Data = c.intBuf.Data[:want]

	n, err := c.dec.PCMBuffer(c.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("read aiff: %w", err)
		}
		return 0, io.EOF
	}

	// go-audio delivers ints at the source bit depth; normalize.
	var maxVal float32
	switch c.bitDepth {
	case 8:
		maxVal = 128
	case 16:
		maxVal = 32768
	case 24:
		maxVal = 8388608
	case 32:
		maxVal = 2147483648
	}

	for i := 0; i < n; i++ {
		dst[i] = float32(c.intBuf.Data[i]) / maxVal
	}

	framesRead := n / c.channels
	c.currentFrame += int64(framesRead)
	return framesRead, nil
}

func (c *codec) TotalFrames() int64  { return c.totalFrames }
func (c *codec) CurrentFrame() int64 { return c.currentFrame }

func (c *codec) SupportsSeeking() bool { return false }

func (c *codec) SeekToFrame(frame int64) (int64, error) {
	return -1, ErrSeekUnsupported
}

func (c *codec) Format() audio.Format {
	return audio.Format{
		SampleRate:  c.sampleRate,
		Channels:    c.channels,
		BitDepth:    32,
		Float:       true,
		Interleaved: true,
		Encoding:    "PCM",
	}
}

func (c *codec) SourceFormat() audio.Format {
	return audio.Format{
		SampleRate:  c.sampleRate,
		Channels:    c.channels,
		BitDepth:    c.bitDepth,
		Interleaved: true,
		Encoding:    "PCM",
	}
}

func (c *codec) SourceDescription() string {
	return fmt.Sprintf("AIFF, %d-bit PCM, %d Hz, %s",
		c.bitDepth, c.sampleRate, c.SourceFormat().ChannelLayoutDescription())
}
