// SPDX-License-Identifier: EPL-2.0

package decodekit

import (
	"github.com/audioforge/decodekit/audio"
	"github.com/audioforge/decodekit/utils"
)

// ReadAllPCM16 drains a stream and returns its content as interleaved
// 16-bit PCM.  bufFrames sets the per-read request size; 4096 is a
// reasonable default.  The stream must be open and is read from its
// current position.
//
// Do not call this on an endlessly repeating region; it will not
// return.
func ReadAllPCM16(s audio.Stream, bufFrames int) []int16 {
	channels := s.Format().Channels
	if channels < 1 || bufFrames < 1 {
		return nil
	}

	var out []int16
	if total := s.TotalFrames(); total > 0 {
		out = make([]int16, 0, (total-s.CurrentFrame())*int64(channels))
	}

	buf := make([]float32, bufFrames*channels)
	for {
		n := s.ReadAudio(buf, bufFrames)
		if n == 0 {
			break
		}
		out = utils.AppendFloat32ToInt16(out, buf[:n*channels])
	}

	return out
}
