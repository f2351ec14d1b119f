// SPDX-License-Identifier: EPL-2.0

package decoder

import "io"

// Stream is the byte source a decoder reads from. It must support absolute
// seeking and carries a name used by name-based sniffing heuristics
// (tracker modules). *os.File satisfies it.
type Stream interface {
	io.ReadSeeker
	// Name returns a human-readable identifier for the stream, usually a
	// file path. It may be empty.
	Name() string
}

// Decoder is the uniform pull-based PCM decoding contract every codec
// backend satisfies. Instances are created by the factory, opened once,
// then drained with Decode.
//
// A decoder is not safe for concurrent use; all calls are blocking calls
// on the calling goroutine.
type Decoder interface {
	// Open prepares the decoder for the given stream. The stream is
	// positioned at offset 0. On failure the instance stays unusable and
	// GetError reports the cause.
	Open(stream Stream) error

	// Seek repositions the decode cursor. Offsets are expressed in the
	// decoder's logical coordinate space (container-relative for the WAV
	// decoder, decoded PCM bytes for MP3, and so on). whence is one of
	// io.SeekStart, io.SeekCurrent, io.SeekEnd.
	Seek(offset int64, whence int) error

	// IsFinished reports whether the underlying data is exhausted at the
	// current loop pass. Looping never suppresses it; loop-stitching is
	// handled above the backend.
	IsFinished() bool

	// GetFormat returns the negotiated output format.
	GetFormat() (rate int, format Format, channels int)

	// SetFormat requests a different output format. Most backends have a
	// fixed format and return ErrFormatFixed.
	SetFormat(rate int, format Format, channels int) error

	// Decode fills buf with interleaved PCM in the negotiated format and
	// returns the count of real decoded bytes before silence padding.
	// While paused the whole buffer is silence and no state advances.
	Decode(buf []byte) int

	// DecodeAll drains the remaining stream into a single buffer.
	DecodeAll() []byte

	// Rewind seeks back to the start. Backends guarantee this succeeds;
	// a failure is a contract violation and panics.
	Rewind()

	// GetTicks returns seconds of audio decoded so far, or 0 when the
	// backend does not track time.
	GetTicks() int

	// Tell returns the current logical position, or -1 when unsupported.
	Tell() int64

	Pause()
	Resume()
	IsPaused() bool

	GetVolume() int
	SetVolume(volume int)

	// SetFade sets the volume to begin and fades linearly to end over
	// durationMS of playback time, advanced by Update.
	SetFade(begin, end, durationMS int)
	// Update advances fade interpolation by deltaMS milliseconds.
	Update(deltaMS int)

	GetLooping() bool
	SetLooping(enable bool)
	GetLoopCount() int

	// GetPitch returns the pitch in percent, or 0 when the backend has no
	// pitch control. SetPitch returns ErrPitchUnsupported by default.
	GetPitch() int
	SetPitch(pitch int) error

	// WasInited reports whether one-time backend initialization succeeded.
	WasInited() bool

	// GetError returns the last error message, empty if none.
	GetError() string

	// GetType returns the backend identity tag ("wav", "mp3", ...).
	GetType() string
}

// Backend is the primitive surface a concrete codec hands to Base. The
// shared Decode defaults dispatch through it.
type Backend interface {
	// FillBuffer decodes up to len(buf) bytes of PCM into buf and returns
	// the byte count, or a negative value on a read error.
	FillBuffer(buf []byte) int
	IsFinished() bool
	Seek(offset int64, whence int) error
}
