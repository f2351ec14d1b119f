// SPDX-License-Identifier: EPL-2.0

package generic

import "errors"

var (
	// ErrUnsupportedContainer indicates the stream's magic matches none of
	// the containers this backend reads.
	ErrUnsupportedContainer = errors.New("generic: unsupported container")

	// ErrMalformedContainer indicates the container library rejected the
	// stream during Open.
	ErrMalformedContainer = errors.New("generic: malformed container")

	// ErrSeekUnsupported is returned for any seek other than a rewind to
	// the stream origin.
	ErrSeekUnsupported = errors.New("generic: only rewind is supported")
)
