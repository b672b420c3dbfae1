// SPDX-License-Identifier: EPL-2.0

// Package aiff provides the AIFF codec backend.
//
// Importing this package registers the backend for the aiff, aif, and
// aifc extensions and the audio/aiff and audio/x-aiff MIME types.
//
// Decoding is handled by github.com/go-audio/aiff.  The underlying
// reader is strictly sequential, so this backend reports that it does
// not support seeking.  Decoders for other formats should be preferred
// when random access matters.
package aiff
