// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides the MP3 codec backend.
//
// Importing this package registers the backend for the mp3 extension
// and the audio/mpeg and audio/mp3 MIME types.
//
// Decoding is handled by github.com/hajimehoshi/go-mp3, which emits
// interleaved 16-bit stereo at the stream's sample rate regardless of
// the source channel layout.  When the input supports seeking, the
// total frame count is known up front and seeking is sample accurate;
// otherwise the duration is reported as unknown.
package mp3
