// SPDX-License-Identifier: EPL-2.0

package metadata

import "errors"

var (
	// ErrUnsupportedFormat is returned when no registered handler
	// claims the file's extension.
	ErrUnsupportedFormat = errors.New("no metadata handler for file type")
)
