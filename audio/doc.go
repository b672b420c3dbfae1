// SPDX-License-Identifier: EPL-2.0

// Package audio resolves audio sources to codec backends and manages
// the decoder lifecycle shared by all of them.
//
// This package contains the core building blocks:
//   - InputSource, a seekable/openable byte stream with a URL
//   - Codec, the contract format backends implement
//   - Registry, the ordered table of registered backends
//   - Resolver, which picks and constructs a decoder for a source
//   - Decoder, the open/close/read/seek state machine
//   - Region, a loopable sub-range decorator over any stream
//
// # Resolution
//
// Backends register themselves during init (import a format package for
// its side effect) and the resolver dispatches across them:
//
//	resolver := audio.NewResolver()
//	dec, err := resolver.ResolveFile("song.ogg", "")
//	if err != nil {
//	    return err
//	}
//	defer dec.Close()
//
// A caller-supplied MIME type takes precedence over the file extension.
// When a backend matches but fails to open, the resolver reclaims the
// input source and tries the next matching backend; resolution fails
// only when every candidate is exhausted.
//
// # Reading audio
//
// Decoders produce interleaved float32 samples in [-1.0, 1.0]:
//
//	buf := make([]float32, 4096*dec.Format().Channels)
//	for {
//	    n := dec.ReadAudio(buf, 4096)
//	    if n == 0 {
//	        break
//	    }
//	    // Process n frames from buf
//	}
//
// Frame counts and positions use int64 frame indices; -1 is the
// sentinel for "closed" or "unknown".
//
// # Regions and looping
//
// Region wraps any stream to play a sub-range, optionally repeated:
//
//	loop := audio.NewRepeatingRegion(dec, 44100, 88200, 2)
//	if err := loop.Open(); err != nil {
//	    return err
//	}
//
// The region's frame coordinates are local: frame 0 is the region
// start, and seeks map onto (repetition, offset) pairs internally.
//
// # Concurrency
//
// A Decoder or Region must be driven by a single goroutine.  Registry
// queries are safe for concurrent use once registration (process init)
// has finished.
package audio
