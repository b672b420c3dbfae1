package audio

import (
	"errors"
	"fmt"
)

// ErrorDomain tags errors produced by this package.
const ErrorDomain = "decodekit.audio"

// ErrorCode classifies a structured Error.
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeUnknownFileType
	ErrCodeInputOutput
	ErrCodeNoMatchingBackend
	ErrCodeInvalidRegion
	ErrCodeUnsupported
)

// Sentinel errors for matching with errors.Is.  A structured *Error
// reports Is(sentinel) true when its code corresponds.
var (
	ErrUnknownFileType   = errors.New("unknown file type")
	ErrInputOutput       = errors.New("input/output error")
	ErrNoMatchingBackend = errors.New("no matching backend")
	ErrInvalidRegion     = errors.New("invalid region")
	ErrUnsupported       = errors.New("operation not supported")

	// ErrNotOpen is returned by InputSource Read/Seek on a closed source.
	ErrNotOpen = errors.New("input source is not open")
)

// Error is a structured error carrying a domain tag, a code, and
// human-readable description, reason, and recovery-suggestion strings
// tied to the offending URL.
type Error struct {
	Domain      string
	Code        ErrorCode
	URL         string
	Description string
	Reason      string
	Recovery    string
	Err         error
}

func (e *Error) Error() string {
	msg := e.Description
	if msg == "" {
		msg = e.Reason
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s: %s", e.URL, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is maps error codes onto the package sentinels so callers can use
// errors.Is without inspecting codes directly.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnknownFileType:
		return e.Code == ErrCodeUnknownFileType
	case ErrInputOutput:
		return e.Code == ErrCodeInputOutput
	case ErrNoMatchingBackend:
		return e.Code == ErrCodeNoMatchingBackend
	case ErrInvalidRegion:
		return e.Code == ErrCodeInvalidRegion
	case ErrUnsupported:
		return e.Code == ErrCodeUnsupported
	}
	return false
}

func unknownFileTypeError(url string) *Error {
	return &Error{
		Domain:      ErrorDomain,
		Code:        ErrCodeUnknownFileType,
		URL:         url,
		Description: "the type of the file could not be determined",
		Reason:      "unknown file type",
		Recovery:    "the file's extension may be missing or may not match the file's type",
	}
}

func inputOutputError(url string, err error) *Error {
	return &Error{
		Domain:      ErrorDomain,
		Code:        ErrCodeInputOutput,
		URL:         url,
		Description: "the file could not be read",
		Reason:      "input/output error",
		Recovery:    "the file may be damaged or inaccessible",
		Err:         err,
	}
}

func noMatchingBackendError(url string) *Error {
	return &Error{
		Domain:      ErrorDomain,
		Code:        ErrCodeNoMatchingBackend,
		URL:         url,
		Description: "the file is not a supported format",
		Reason:      "no matching backend",
		Recovery:    "the file may use an unsupported codec or be damaged",
	}
}

func invalidRegionError(url, reason string) *Error {
	return &Error{
		Domain:      ErrorDomain,
		Code:        ErrCodeInvalidRegion,
		URL:         url,
		Description: "the requested region is not playable",
		Reason:      reason,
		Recovery:    "the starting frame and frame count must lie within the stream",
	}
}
