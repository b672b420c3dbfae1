// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides the Ogg Vorbis codec backend.
//
// Importing this package registers the backend for the ogg and oga
// extensions and the audio/ogg, application/ogg, and audio/vorbis MIME
// types.
//
// Decoding is handled by github.com/jfreymuth/oggvorbis, which emits
// interleaved float32 samples directly.  Seeking and the total frame
// count require a seekable input.
package vorbis
