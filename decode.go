// SPDX-License-Identifier: EPL-2.0

package decodekit

import (
	"github.com/audioforge/decodekit/audio"

	// Register the codec backends.
	_ "github.com/audioforge/decodekit/formats/aiff"
	_ "github.com/audioforge/decodekit/formats/mp3"
	_ "github.com/audioforge/decodekit/formats/vorbis"
	_ "github.com/audioforge/decodekit/formats/wav"
)

// Open resolves a codec backend for the file at path and returns an
// open decoder.
func Open(path string, opts ...audio.ResolverOption) (*audio.Decoder, error) {
	return audio.NewResolver(opts...).ResolveFile(path, "")
}

// OpenRegion opens the file at path restricted to frameCount frames
// starting at startingFrame.
func OpenRegion(path string, startingFrame, frameCount int64) (*audio.Region, error) {
	dec, err := Open(path)
	if err != nil {
		return nil, err
	}

	region := audio.NewBoundedRegion(dec, startingFrame, frameCount)
	if err := region.Open(); err != nil {
		dec.Close()
		return nil, err
	}
	return region, nil
}

// OpenLoop opens the file at path restricted to a region that repeats
// repeatCount additional times.  Pass audio.RepeatForever to loop
// without end.
func OpenLoop(path string, startingFrame, frameCount int64, repeatCount int) (*audio.Region, error) {
	dec, err := Open(path)
	if err != nil {
		return nil, err
	}

	region := audio.NewRepeatingRegion(dec, startingFrame, frameCount, repeatCount)
	if err := region.Open(); err != nil {
		dec.Close()
		return nil, err
	}
	return region, nil
}

// SupportedFileExtensions lists the extensions claimed by the built-in
// backends, in registration order.
func SupportedFileExtensions() []string { return audio.SupportedFileExtensions() }

// SupportedMIMETypes lists the MIME types claimed by the built-in
// backends, in registration order.
func SupportedMIMETypes() []string { return audio.SupportedMIMETypes() }

// HandlesFilesWithExtension reports whether a built-in backend claims
// the extension.
func HandlesFilesWithExtension(ext string) bool { return audio.HandlesFilesWithExtension(ext) }

// HandlesMIMEType reports whether a built-in backend claims the MIME
// type.
func HandlesMIMEType(mimeType string) bool { return audio.HandlesMIMEType(mimeType) }
