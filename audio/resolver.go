// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"path"
	"strings"
)

// Resolver picks the codec backend for an input source and constructs a
// Decoder around it.
//
// MIME type, when supplied, takes precedence over the file extension
// because it is assumed to be less ambiguous when present.  A failed
// open is not terminal: the same extension or MIME type can be claimed
// by multiple container formats (an .oga file might hold Vorbis, FLAC,
// or Speex), and only opening reveals the true codec, so the resolver
// reclaims the input source from a failed decoder and continues with
// the next matching backend.
type Resolver struct {
	autoOpen bool
	registry *Registry
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithAutoOpen controls whether resolution opens the resulting decoder
// before returning it.  The default is true.
//
// With auto-open disabled, a MIME type match is trusted without
// validation: the first matching backend wins, and a MIME or extension
// collision between backends is settled arbitrarily by registration
// order.  Callers that need the collision resolved correctly must keep
// auto-open enabled.
func WithAutoOpen(open bool) ResolverOption {
	return func(r *Resolver) { r.autoOpen = open }
}

// WithRegistry makes the resolver consult reg instead of the default
// registry.
func WithRegistry(reg *Registry) ResolverOption {
	return func(r *Resolver) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// NewResolver returns a resolver consulting the default registry with
// auto-open enabled.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{autoOpen: true, registry: DefaultRegistry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve picks a backend for src, optionally guided by mimeType, and
// returns a Decoder owning src.  The decoder is open unless auto-open
// is disabled.
//
// On failure the returned *Error carries the reason: the source could
// not be opened, the URL has no extension and no MIME type matched
// ("unknown file type"), or every matching backend failed to open.
func (r *Resolver) Resolve(src InputSource, mimeType string) (*Decoder, error) {
	if src == nil {
		return nil, inputOutputError("", ErrNotOpen)
	}

	if r.autoOpen && !src.IsOpen() {
		if err := src.Open(); err != nil {
			return nil, inputOutputError(src.URL(), err)
		}
	}

	// The MIME type takes precedence over the file extension.
	if mimeType != "" {
		for _, reg := range r.registry.registrations() {
			if !reg.HandlesMIMEType(mimeType) {
				continue
			}

			dec := NewDecoder(src, reg.New())
			if !r.autoOpen {
				return dec, nil
			}
			if err := dec.Open(); err == nil {
				return dec, nil
			}

			// Take back the input source for reuse if opening fails.
			src = dec.TakeInputSource()
		}
		// MIME candidates exhausted; fall through to the extension.
	}

	ext := pathExtension(src.URL())
	if ext == "" {
		return nil, unknownFileTypeError(src.URL())
	}

	for _, reg := range r.registry.registrations() {
		if !reg.HandlesExtension(ext) {
			continue
		}

		dec := NewDecoder(src, reg.New())
		if !r.autoOpen {
			return dec, nil
		}
		if err := dec.Open(); err == nil {
			return dec, nil
		}

		src = dec.TakeInputSource()
	}

	return nil, noMatchingBackendError(src.URL())
}

// ResolveFile resolves the file at p.  See Resolve.
func (r *Resolver) ResolveFile(p, mimeType string) (*Decoder, error) {
	return r.Resolve(NewFileSource(p), mimeType)
}

// ResolveRegion resolves src and wraps the decoder in a region covering
// startingFrame to the end of the stream, played once.  A failed inner
// resolution short-circuits without constructing the region.
func (r *Resolver) ResolveRegion(src InputSource, mimeType string, startingFrame int64) (*Region, error) {
	dec, err := r.Resolve(src, mimeType)
	if err != nil {
		return nil, err
	}
	return NewRegion(dec, startingFrame), nil
}

// ResolveBoundedRegion resolves src and wraps the decoder in a region
// of frameCount frames starting at startingFrame, played once.
func (r *Resolver) ResolveBoundedRegion(src InputSource, mimeType string, startingFrame, frameCount int64) (*Region, error) {
	dec, err := r.Resolve(src, mimeType)
	if err != nil {
		return nil, err
	}
	return NewBoundedRegion(dec, startingFrame, frameCount), nil
}

// ResolveRepeatingRegion resolves src and wraps the decoder in a region
// of frameCount frames starting at startingFrame, repeated repeatCount
// additional times (RepeatForever loops indefinitely).
func (r *Resolver) ResolveRepeatingRegion(src InputSource, mimeType string, startingFrame, frameCount int64, repeatCount int) (*Region, error) {
	dec, err := r.Resolve(src, mimeType)
	if err != nil {
		return nil, err
	}
	return NewRepeatingRegion(dec, startingFrame, frameCount, repeatCount), nil
}

// pathExtension returns the lower-case extension of the URL's path
// component, without the dot, or "" if there is none.
func pathExtension(url string) string {
	ext := path.Ext(url)
	if ext == "" || ext == "." {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
