// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"strings"
	"sync"
)

// Registration describes a codec backend: the formats it claims to
// handle and a factory for creating codec instances.  Registrations
// are immutable once registered.
type Registration struct {
	// Name of the backend, e.g. "WAV".
	Name string

	// Extensions lists the file extensions the backend handles,
	// lower case, without the leading dot.
	Extensions []string

	// MIMETypes lists the MIME types the backend handles.
	MIMETypes []string

	// New constructs a fresh Codec instance.
	New func() Codec
}

// HandlesExtension reports whether the backend claims ext.  Matching is
// case-insensitive and tolerates a leading dot.  An empty extension
// never matches.
func (r Registration) HandlesExtension(ext string) bool {
	ext = normalizeExtension(ext)
	if ext == "" {
		return false
	}
	for _, e := range r.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// HandlesMIMEType reports whether the backend claims mimeType,
// case-insensitively.  An empty MIME type never matches.
func (r Registration) HandlesMIMEType(mimeType string) bool {
	if mimeType == "" {
		return false
	}
	for _, m := range r.MIMETypes {
		if strings.EqualFold(mimeType, m) {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Registry is an ordered, append-only table of codec backend
// registrations.  Registration order defines dispatch priority: during
// resolution the first matching backend is tried first.
//
// Backends are expected to register once during process startup (each
// format package self-registers from init); after that the registry is
// effectively read-only and safe for concurrent queries.
type Registry struct {
	mtx      sync.RWMutex
	backends []Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends reg to the registry.  There is no de-duplication or
// removal: a later registration with overlapping extensions or MIME
// types is tried only after earlier ones.
func (r *Registry) Register(reg Registration) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	reg.Extensions = append([]string(nil), reg.Extensions...)
	reg.MIMETypes = append([]string(nil), reg.MIMETypes...)
	r.backends = append(r.backends, reg)
}

// registrations returns a snapshot of the registered backends in
// registration order.
func (r *Registry) registrations() []Registration {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return append([]Registration(nil), r.backends...)
}

// SupportedFileExtensions returns the concatenation, in registration
// order, of every backend's extension list.  Extensions claimed by more
// than one backend appear more than once.
func (r *Registry) SupportedFileExtensions() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var exts []string
	for _, reg := range r.backends {
		exts = append(exts, reg.Extensions...)
	}
	return exts
}

// SupportedMIMETypes returns the concatenation, in registration order,
// of every backend's MIME type list.
func (r *Registry) SupportedMIMETypes() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var types []string
	for _, reg := range r.backends {
		types = append(types, reg.MIMETypes...)
	}
	return types
}

// HandlesFilesWithExtension reports whether any registered backend
// claims ext.
func (r *Registry) HandlesFilesWithExtension(ext string) bool {
	for _, reg := range r.registrations() {
		if reg.HandlesExtension(ext) {
			return true
		}
	}
	return false
}

// HandlesMIMEType reports whether any registered backend claims
// mimeType.
func (r *Registry) HandlesMIMEType(mimeType string) bool {
	for _, reg := range r.registrations() {
		if reg.HandlesMIMEType(mimeType) {
			return true
		}
	}
	return false
}

// DefaultRegistry is the process-wide registry the format packages
// register into.
var DefaultRegistry = NewRegistry()

// Register appends reg to the default registry.
func Register(reg Registration) { DefaultRegistry.Register(reg) }

// SupportedFileExtensions queries the default registry.
func SupportedFileExtensions() []string { return DefaultRegistry.SupportedFileExtensions() }

// SupportedMIMETypes queries the default registry.
func SupportedMIMETypes() []string { return DefaultRegistry.SupportedMIMETypes() }

// HandlesFilesWithExtension queries the default registry.
func HandlesFilesWithExtension(ext string) bool {
	return DefaultRegistry.HandlesFilesWithExtension(ext)
}

// HandlesMIMEType queries the default registry.
func HandlesMIMEType(mimeType string) bool { return DefaultRegistry.HandlesMIMEType(mimeType) }
