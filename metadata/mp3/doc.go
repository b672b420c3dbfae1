// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides the MP3 metadata handler.
//
// Importing this package registers the handler for the mp3 extension.
// Tags are read from and written to the file's ID3v2 tag; a tag is
// created when the file has none.  Audio properties are derived by
// decoding the stream headers.
package mp3
