// SPDX-License-Identifier: EPL-2.0

// Package metadata reads and writes audio file tags.
//
// Format support follows the same registry pattern as the audio
// package: handler packages such as metadata/mp3 register themselves
// in init(), keyed by file extension, and callers go through ReadFile
// and WriteFile.
//
//	import _ "github.com/audioforge/decodekit/metadata/mp3"
//
//	file, err := metadata.ReadFile("song.mp3")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Tags.Artist, "-", file.Tags.Title)
package metadata
