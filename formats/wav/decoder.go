// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/audioforge/decodekit/audio"
)

func init() {
	audio.Register(audio.Registration{
		Name:       "WAV",
		Extensions: []string{"wav", "wave"},
		MIMETypes:  []string{"audio/wav", "audio/x-wav", "audio/wave"},
		New:        New,
	})
}

// New returns a WAV codec.  Most callers resolve decoders through the
// registry instead of constructing codecs directly.
func New() audio.Codec { return &codec{} }

// codec decodes RIFF/WAVE PCM streams.  Seeking is sample accurate:
// PCM frames map to fixed-size byte offsets within the data chunk.
type codec struct {
	src audio.InputSource

	sampleRate int
	channels   int
	bitDepth   int

	dataStart  int64
	blockAlign int64

	totalFrames  int64
	currentFrame int64

	buf []byte
}

func (c *codec) Open(src audio.InputSource) error {
	// The source may have been partially read by another backend
	// before being reclaimed; start from the beginning.
	if src.SupportsSeeking() {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("rewind: %w", err)
		}
	}

	var hdr [12]byte
	if _, err := io.ReadFull(src, hdr[:]); err != nil {
		return ErrNotWavFile
	}
	if string(hdr[0:4]) != "RIFF" || string(hdr[8:12]) != "WAVE" {
		return ErrNotWavFile
	}

	// Scan chunks for fmt and data, skipping anything else.
	pos := int64(12)
	var haveFmt bool
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(src, chunk[:]); err != nil {
			return ErrUnsupportedWavLayout
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))
		pos += 8

		switch id {
		case "fmt ":
			if size < 16 {
				return ErrUnsupportedWavLayout
			}
			var body [16]byte
			if _, err := io.ReadFull(src, body[:]); err != nil {
				return ErrUnsupportedWavLayout
			}

			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			c.channels = int(binary.LittleEndian.Uint16(body[2:4]))
			c.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
			c.bitDepth = int(binary.LittleEndian.Uint16(body[14:16]))

			if audioFormat != 1 {
				return ErrOnlyPCMSupported
			}
			switch c.bitDepth {
			case 8, 16, 24:
			default:
				return ErrUnsupportedBitDepth
			}
			if c.channels < 1 || c.sampleRate < 1 {
				return ErrUnsupportedWavLayout
			}
			haveFmt = true

			if skip := size - 16; skip > 0 {
				if _, err := src.Seek(skip+skip&1, io.SeekCurrent); err != nil {
					return ErrUnsupportedWavLayout
				}
				pos += skip + skip&1
			}
			pos += 16

		case "data":
			if !haveFmt {
				return ErrUnsupportedWavLayout
			}

			c.blockAlign = int64(c.channels) * int64(c.bitDepth/8)
			c.dataStart = pos

			// Trust the chunk size, clamped to the bytes actually
			// present.
			if length := src.Length(); length >= 0 && size > length-pos {
				size = length - pos
			}
			c.totalFrames = size / c.blockAlign
			c.currentFrame = 0
			c.src = src
			return nil

		default:
			if _, err := src.Seek(size+size&1, io.SeekCurrent); err != nil {
				return ErrUnsupportedWavLayout
			}
			pos += size + size&1
		}
	}
}

func (c *codec) Close() error {
	c.src = nil
	c.buf = nil
	return nil
}

func (c *codec) ReadAudio(dst []float32, frameCount int) (int, error) {
	frames := int64(frameCount)
	if remaining := c.totalFrames - c.currentFrame; frames > remaining {
		frames = remaining
	}
	if frames <= 0 {
		return 0, io.EOF
	}

	need := int(frames * c.blockAlign)
	if cap(c.buf) < need {
		c.buf = make([]byte, need)
	}
	c.buf = c.buf[:need]

	n, err := io.ReadFull(c.src, c.buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("read pcm: %w", err)
	}

	framesRead := int64(n) / c.blockAlign
	samples := int(framesRead) * c.channels

	switch c.bitDepth {
	case 8:
		for i := 0; i < samples; i++ {
			dst[i] = (float32(c.buf[i]) - 128) / 128
		}
	case 16:
		for i := 0; i < samples; i++ {
			v := int16(binary.LittleEndian.Uint16(c.buf[2*i:]))
			dst[i] = float32(v) / 32768
		}
	case 24:
		for i := 0; i < samples; i++ {
			b := c.buf[3*i:]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v -= 0x1000000
			}
			dst[i] = float32(v) / 8388608
		}
	}

	c.currentFrame += framesRead
	return int(framesRead), nil
}

func (c *codec) TotalFrames() int64  { return c.totalFrames }
func (c *codec) CurrentFrame() int64 { return c.currentFrame }

func (c *codec) SupportsSeeking() bool { return c.src.SupportsSeeking() }

func (c *codec) SeekToFrame(frame int64) (int64, error) {
	if _, err := c.src.Seek(c.dataStart+frame*c.blockAlign, io.SeekStart); err != nil {
		return -1, fmt.Errorf("seek pcm: %w", err)
	}
	c.currentFrame = frame
	return frame, nil
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
	return fmt.Sprintf("WAVE, %d-bit PCM, %d Hz, %s",
		c.bitDepth, c.sampleRate, c.SourceFormat().ChannelLayoutDescription())
}
