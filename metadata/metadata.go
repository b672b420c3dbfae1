// SPDX-License-Identifier: EPL-2.0

package metadata

import (
	"fmt"
	"path"
	"strings"
	"sync"
	"time"
)

// Tags holds the textual metadata of an audio file.  Zero values mean
// the field is absent; writing a zero value removes the field.
type Tags struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Year        string

	TrackNumber int
	TrackTotal  int
	DiscNumber  int
	DiscTotal   int

	Lyrics  string
	Comment string
}

// Properties holds the audio characteristics of a file.  They are
// derived from the stream and cannot be written.
type Properties struct {
	Duration    time.Duration
	SampleRate  int
	Channels    int
	BitRate     int // bits per second, 0 if unknown
	TotalFrames int64
}

// File is the result of reading a file's metadata.
type File struct {
	Tags       Tags
	Properties Properties
}

// Handler reads and writes metadata for one family of file formats.
type Handler interface {
	ReadFile(path string) (*File, error)
	WriteFile(path string, tags *Tags) error
}

// Registration associates a Handler with the extensions it claims.
type Registration struct {
	Name       string
	Extensions []string
	Handler    Handler
}

var (
	mu       sync.Mutex
	handlers []Registration
)

// Register adds a handler to the registry.  Handler packages call this
// from init(); earlier registrations win when extensions overlap.
func Register(reg Registration) {
	mu.Lock()
	defer mu.Unlock()
	handlers = append(handlers, reg)
}

func handlerFor(ext string) (Handler, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return nil, false
	}

	mu.Lock()
	defer mu.Unlock()
	for _, reg := range handlers {
		for _, e := range reg.Extensions {
			if e == ext {
				return reg.Handler, true
			}
		}
	}
	return nil, false
}

// HandlesExtension reports whether a handler is registered for the
// extension.  Matching is case-insensitive and tolerates a leading dot.
func HandlesExtension(ext string) bool {
	_, ok := handlerFor(ext)
	return ok
}

// ReadFile reads the tags and audio properties of the file at path,
// dispatching on the file extension.
func ReadFile(p string) (*File, error) {
	h, ok := handlerFor(path.Ext(p))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
	}
	return h.ReadFile(p)
}

// WriteFile replaces the tags of the file at path.  Audio data is
// untouched.
func WriteFile(p string, tags *Tags) error {
	h, ok := handlerFor(path.Ext(p))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, p)
	}
	return h.WriteFile(p, tags)
}
