// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// InputSource is a seekable, openable byte stream with an associated
// URL.  An InputSource is owned by exactly one Decoder at a time;
// ownership transfers into a Decoder at construction and can be
// reclaimed with Decoder.TakeInputSource after a failed open.
type InputSource interface {
	// URL returns the location the source reads from.  For file-backed
	// sources this is the file path.
	URL() string

	// Open acquires the underlying resource.  Opening an already open
	// source is a no-op.
	Open() error

	// Close releases the underlying resource.  Closing an already
	// closed source is a no-op.
	Close() error

	// IsOpen reports whether the source is open.
	IsOpen() bool

	// Read reads raw bytes from the source.
	Read(p []byte) (int, error)

	// Seek repositions the source.
	Seek(offset int64, whence int) (int64, error)

	// SupportsSeeking reports whether Seek is usable.
	SupportsSeeking() bool

	// Length returns the total size of the source in bytes, or -1 if
	// unknown.
	Length() int64
}

// FileSource is an InputSource backed by a file on disk.  The file is
// not touched until Open is called.
type FileSource struct {
	path string
	f    *os.File
	size int64
}

// NewFileSource returns a closed InputSource for the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path, size: -1}
}

func (s *FileSource) URL() string  { return s.path }
func (s *FileSource) IsOpen() bool { return s.f != nil }

func (s *FileSource) Open() error {
	if s.f != nil {
		return nil
	}

	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat file: %w", err)
	}

	s.f = f
	s.size = stat.Size()
	return nil
}

func (s *FileSource) Close() error {
	if s.f == nil {
		return nil
	}

	err := s.f.Close()
	s.f = nil
	s.size = -1
	if err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

func (s *FileSource) Read(p []byte) (int, error) {
	if s.f == nil {
		return 0, ErrNotOpen
	}
	return s.f.Read(p)
}

func (s *FileSource) Seek(offset int64, whence int) (int64, error) {
	if s.f == nil {
		return 0, ErrNotOpen
	}
	return s.f.Seek(offset, whence)
}

func (s *FileSource) SupportsSeeking() bool { return s.f != nil }
func (s *FileSource) Length() int64         { return s.size }

// MemorySource is an InputSource over an in-memory byte slice, labeled
// with a caller-supplied URL.  It is useful for tests and for data
// already held in memory.
type MemorySource struct {
	url  string
	data []byte
	r    *bytes.Reader
}

// NewMemorySource returns a closed InputSource over data.
func NewMemorySource(url string, data []byte) *MemorySource {
	return &MemorySource{url: url, data: data}
}

func (s *MemorySource) URL() string  { return s.url }
func (s *MemorySource) IsOpen() bool { return s.r != nil }

func (s *MemorySource) Open() error {
	if s.r == nil {
		s.r = bytes.NewReader(s.data)
	}
	return nil
}

func (s *MemorySource) Close() error {
	s.r = nil
	return nil
}

func (s *MemorySource) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotOpen
	}
	return s.r.Read(p)
}

func (s *MemorySource) Seek(offset int64, whence int) (int64, error) {
	if s.r == nil {
		return 0, ErrNotOpen
	}
	return s.r.Seek(offset, whence)
}

func (s *MemorySource) SupportsSeeking() bool { return s.r != nil }

func (s *MemorySource) Length() int64 { return int64(len(s.data)) }

var (
	_ InputSource   = (*FileSource)(nil)
	_ InputSource   = (*MemorySource)(nil)
	_ io.ReadSeeker = (*FileSource)(nil)
)
