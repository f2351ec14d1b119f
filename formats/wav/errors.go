// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrNotWavFile indicates the stream is not a RIFF/WAVE container.
	ErrNotWavFile = errors.New("wav: not a WAV file")

	// ErrMissingFmtChunk indicates the container has no fmt chunk before
	// the data chunk.
	ErrMissingFmtChunk = errors.New("wav: missing fmt chunk")

	// ErrMissingDataChunk indicates the container has no data chunk.
	ErrMissingDataChunk = errors.New("wav: missing data chunk")

	// ErrOnlyPCMSupported indicates a non-linear-PCM encoding tag.
	ErrOnlyPCMSupported = errors.New("wav: only linear PCM is supported")

	// ErrUnsupportedWavLayout indicates an unsupported bit depth, channel
	// count or malformed fmt chunk.
	ErrUnsupportedWavLayout = errors.New("wav: unsupported WAV layout")

	// ErrSeekOutOfRange indicates a seek target outside the data chunk.
	ErrSeekOutOfRange = errors.New("wav: seek out of range")
)
