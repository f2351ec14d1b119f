// SPDX-License-Identifier: EPL-2.0

package decoder

import "errors"

var (
	// ErrFormatFixed indicates the backend cannot negotiate a different
	// output format.
	ErrFormatFixed = errors.New("decoder: output format is fixed")

	// ErrPitchUnsupported indicates the backend has no pitch control.
	ErrPitchUnsupported = errors.New("decoder: pitch is not supported")

	// ErrNotOpened indicates a decode call before a successful Open.
	ErrNotOpened = errors.New("decoder: not opened")
)
