package audio

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Is(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *Error
		sentinel error
	}{
		{"unknown file type", unknownFileTypeError("a.bin"), ErrUnknownFileType},
		{"input output", inputOutputError("a.wav", errors.New("short read")), ErrInputOutput},
		{"no matching backend", noMatchingBackendError("a.wav"), ErrNoMatchingBackend},
		{"invalid region", invalidRegionError("a.wav", "bad start"), ErrInvalidRegion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}

			if errors.Is(tt.err, ErrUnsupported) {
				t.Errorf("errors.Is(%v, ErrUnsupported) = true, want false", tt.err)
			}
		})
	}
}

func TestError_MessageCarriesURL(t *testing.T) {
	t.Parallel()

	err := unknownFileTypeError("/music/track")
	if !strings.Contains(err.Error(), "/music/track") {
		t.Errorf("Error() = %q, want URL included", err.Error())
	}

	if err.Recovery == "" {
		t.Error("Recovery suggestion is empty")
	}
	if err.Domain != ErrorDomain {
		t.Errorf("Domain = %q, want %q", err.Domain, ErrorDomain)
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	err := inputOutputError("a.wav", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}
