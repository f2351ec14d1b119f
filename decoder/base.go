// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// maxLoopDepth bounds the loop-stitching recursion. A pathological
// zero-length track would otherwise rewind forever inside one call.
const maxLoopDepth = 10

// loopWarnLimit caps how many loop iterations still produce the
// depth-exceeded diagnostic, so a persistently broken stream does not
// flood the log.
const loopWarnLimit = 50

// Base carries the state and default behavior shared by every decoder:
// pause silence, underrun padding, loop-stitching, fading, volume and the
// capability defaults a backend may override. Concrete decoders embed it
// and call Init with themselves as the Backend.
type Base struct {
	backend   Backend
	musicType string

	volume    float64
	fadeEnd   float64
	fadeTime  float64
	deltaStep float64

	looping   bool
	loopCount int
	paused    bool

	lastErr error
}

// Init wires the concrete backend into the shared defaults. musicType is
// the identity tag reported by GetType.
func (b *Base) Init(musicType string, backend Backend) {
	b.musicType = musicType
	b.backend = backend
	b.volume = 100
}

func (b *Base) Pause()         { b.paused = true }
func (b *Base) Resume()        { b.paused = false }
func (b *Base) IsPaused() bool { return b.paused }

// Decode fills buf with PCM and returns the real (pre-padding) byte count.
// Any shortfall from the backend is zero-padded so the caller always gets
// a full buffer of playable audio; a read error becomes a silent buffer
// rather than a glitch.
func (b *Base) Decode(buf []byte) int {
	return b.decode(buf, 0)
}

func (b *Base) decode(buf []byte, depth int) int {
	if b.paused {
		zero(buf)
		return len(buf)
	}

	n := b.backend.FillBuffer(buf)
	if n < 0 {
		zero(buf)
		n = 0
	} else if n < len(buf) {
		zero(buf[n:])
	}

	if b.backend.IsFinished() && b.looping && depth < maxLoopDepth {
		b.loopCount++
		b.Rewind()
		if len(buf)-n > 0 {
			n2 := b.decode(buf[n:], depth+1)
			if n2 <= 0 {
				return n
			}
			return n + n2
		}
	}

	if depth == maxLoopDepth && b.loopCount < loopWarnLimit {
		logrus.WithField("type", b.musicType).
			Warn("decoder: loop recursion depth exceeded, probably a stream error")
	}

	return n
}

// DecodeAll drains the stream in fixed-size chunks until the backend
// reports finished.
func (b *Base) DecodeAll() []byte {
	const bufferSize = 8192

	buffer := make([]byte, bufferSize)

	for !b.backend.IsFinished() {
		read := b.Decode(buffer[len(buffer)-bufferSize:])
		if read < bufferSize {
			buffer = buffer[:len(buffer)-(bufferSize-read)]
			break
		}
		buffer = append(buffer, make([]byte, bufferSize)...)
	}

	return buffer
}

// Rewind seeks the backend to the start. Backends guarantee the origin is
// always reachable, so a failure here is a programming error.
func (b *Base) Rewind() {
	if err := b.backend.Seek(0, io.SeekStart); err != nil {
		panic(fmt.Sprintf("decoder: rewind of %q backend failed: %v", b.musicType, err))
	}
}

// SetFade sets the volume to begin and interpolates linearly toward end
// over durationMS of playback time. A non-positive duration or equal
// endpoints jump straight to end.
func (b *Base) SetFade(begin, end, durationMS int) {
	b.fadeTime = 0

	if durationMS <= 0 || begin == end {
		b.volume = clampVolume(float64(end))
		return
	}

	b.volume = clampVolume(float64(begin))
	b.fadeEnd = float64(end)
	b.fadeTime = float64(durationMS)
	b.deltaStep = (b.fadeEnd - b.volume) / b.fadeTime
}

// Update advances a running fade by deltaMS milliseconds. Once the fade
// time is spent it is a no-op.
func (b *Base) Update(deltaMS int) {
	if b.fadeTime <= 0 {
		return
	}

	b.fadeTime -= float64(deltaMS)
	b.volume = clampVolume(b.volume + float64(deltaMS)*b.deltaStep)
}

func (b *Base) GetVolume() int { return int(b.volume) }

func (b *Base) SetVolume(volume int) {
	b.volume = clampVolume(float64(volume))
}

func (b *Base) GetLooping() bool       { return b.looping }
func (b *Base) SetLooping(enable bool) { b.looping = enable }
func (b *Base) GetLoopCount() int      { return b.loopCount }

// SetError records err for GetError and returns it, so Open paths can
// store and propagate in one step.
func (b *Base) SetError(err error) error {
	b.lastErr = err
	return err
}

func (b *Base) GetError() string {
	if b.lastErr == nil {
		return ""
	}
	return b.lastErr.Error()
}

func (b *Base) GetType() string { return b.musicType }

// Capability defaults; backends with real support override these.

func (b *Base) SetFormat(int, Format, int) error { return ErrFormatFixed }
func (b *Base) GetPitch() int                    { return 0 }
func (b *Base) SetPitch(int) error               { return ErrPitchUnsupported }
func (b *Base) Tell() int64                      { return -1 }
func (b *Base) GetTicks() int                    { return 0 }
func (b *Base) WasInited() bool                  { return true }

func clampVolume(v float64) float64 {
	switch {
	case v > 100:
		return 100
	case v < 0:
		return 0
	}
	return v
}

func zero(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
