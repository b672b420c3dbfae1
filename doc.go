// SPDX-License-Identifier: EPL-2.0

// Package decodekit decodes audio files into float32 PCM.
//
// This package is the high-level entry point: it pulls in every codec
// backend and exposes one-call helpers for opening files, carving out
// regions and loops, and draining a stream into 16-bit samples.
//
// # Supported Formats
//
//   - WAV (8/16/24-bit PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// # Quick Start
//
//	dec, err := decodekit.Open("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dec.Close()
//
//	buf := make([]float32, 4096*dec.Format().Channels)
//	for {
//		n := dec.ReadAudio(buf, 4096)
//		if n == 0 {
//			break
//		}
//		// process buf[:n*channels]
//	}
//
// # Lower Levels
//
// The audio subpackage holds the codec registry, the decoder state
// machine, and the region decorator; use it directly when you need to
// control backend resolution, supply your own InputSource, or register
// a custom codec.  The metadata subpackage reads and writes tags.
package decodekit
