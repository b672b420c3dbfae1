// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	ErrNotAiffFile     = errors.New("not an AIFF file")
	ErrSeekUnsupported = errors.New("AIFF decoding does not support seeking")
)
