// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"encoding/binary"
	"errors"

	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/utils"
)

// ErrOnlyS16Supported is returned by SetFormat for any sample format
// other than signed 16-bit.
var ErrOnlyS16Supported = errors.New("resample: only 16-bit output supported")

// ErrBadChannelCount is returned by SetFormat for channel counts other
// than mono and stereo.
var ErrBadChannelCount = errors.New("resample: only mono and stereo output supported")

// ErrBadPitch is returned by SetPitch for non-positive values.
var ErrBadPitch = errors.New("resample: pitch must be positive")

// ErrNoChannels is returned by Open when the wrapped decoder reports no
// channels.
var ErrNoChannels = errors.New("resample: source reports no channels")

const defaultPitch = 100

// Resampler wraps another decoder and converts its output to a caller
// chosen sample rate and channel count, with optional pitch shifting.
// Interpolation is a Catmull-Rom spline over a four frame window. Any
// source wider than the requested output goes through an averaging
// mixdown and mono to stereo duplicates the channel.
//
// Loop-stitching, fading, volume and pause are handled on the wrapper,
// so the wrapped decoder is driven with looping off.
type Resampler struct {
	decoder.Base

	wrapped decoder.Decoder

	inRate     int
	inChannels int

	outRate     int
	outChannels int
	pitch       int

	// ratio is how many source frames one output frame consumes.
	ratio float64
	pos   float64

	// Four frame interpolation window, one float per input channel.
	// frames[1] and frames[2] bracket the current position.
	frames   [4][]float32
	hasFrame [4]bool
	mixed    []float32

	srcBuf     []byte
	srcPos     int
	srcLen     int
	srcEOF     bool
	tailShifts int
	finished   bool
}

// Wrap decorates d. Open must be called on the wrapper, not on d; the
// output format defaults to d's native format, so call SetFormat after
// Open to change it.
func Wrap(d decoder.Decoder) *Resampler {
	r := &Resampler{
		wrapped: d,
		pitch:   defaultPitch,
	}
	r.Init("resampler", r)
	return r
}

// Open opens the wrapped decoder and adopts its native format as the
// initial output format.
func (r *Resampler) Open(s decoder.Stream) error {
	if err := r.wrapped.Open(s); err != nil {
		return r.SetError(err)
	}

	rate, _, channels := r.wrapped.GetFormat()
	if channels < 1 {
		return r.SetError(ErrNoChannels)
	}
	r.inRate = rate
	r.inChannels = channels
	r.outRate = rate
	r.outChannels = channels

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	r.mixed = make([]float32, max(channels, 2))
	// Sized to a whole number of source frames so a refill never splits
	// a frame across reads.
	r.srcBuf = make([]byte, 512*2*channels)

	r.reset()
	r.updateRatio()
	return nil
}

// GetFormat reports the output format. The sample format is always
// signed 16-bit.
func (r *Resampler) GetFormat() (int, decoder.Format, int) {
	return r.outRate, decoder.FormatS16, r.outChannels
}

// SetFormat selects the output sample rate and channel count. Only
// FormatS16 output is produced.
func (r *Resampler) SetFormat(rate int, format decoder.Format, channels int) error {
	if format != decoder.FormatS16 {
		return r.SetError(ErrOnlyS16Supported)
	}
	if channels < 1 || channels > 2 {
		return r.SetError(ErrBadChannelCount)
	}

	r.outRate = rate
	r.outChannels = channels
	r.updateRatio()
	return nil
}

// GetPitch returns the playback speed in percent, 100 being normal.
func (r *Resampler) GetPitch() int { return r.pitch }

// SetPitch changes playback speed in percent without touching the output
// rate. 200 plays twice as fast.
func (r *Resampler) SetPitch(pitch int) error {
	if pitch <= 0 {
		return r.SetError(ErrBadPitch)
	}
	r.pitch = pitch
	r.updateRatio()
	return nil
}

// FillBuffer produces interpolated output frames until buf is full or the
// wrapped decoder runs dry.
func (r *Resampler) FillBuffer(buf []byte) int {
	frameSize := 2 * r.outChannels
	total := len(buf) / frameSize

	if !r.hasFrame[1] && !r.prime() {
		r.finished = true
		return 0
	}

	written := 0
	for written < total {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if !r.shift() {
				r.finished = true
				return written * frameSize
			}
		}

		r.emitFrame(buf[written*frameSize:], float32(r.pos))
		written++
		r.pos += r.ratio
	}

	return written * frameSize
}

// IsFinished reports whether the wrapped stream and the interpolation
// window are both exhausted.
func (r *Resampler) IsFinished() bool { return r.finished }

// Seek forwards to the wrapped decoder and discards the interpolation
// window. Offsets are in the wrapped decoder's coordinates.
func (r *Resampler) Seek(offset int64, whence int) error {
	if err := r.wrapped.Seek(offset, whence); err != nil {
		return r.SetError(err)
	}
	r.reset()
	return nil
}

// Identity and position report through to the wrapped decoder.

func (r *Resampler) GetType() string { return r.wrapped.GetType() }
func (r *Resampler) Tell() int64     { return r.wrapped.Tell() }
func (r *Resampler) GetTicks() int   { return r.wrapped.GetTicks() }
func (r *Resampler) WasInited() bool { return r.wrapped.WasInited() }

func (r *Resampler) updateRatio() {
	r.ratio = float64(r.inRate) * float64(r.pitch) / defaultPitch / float64(r.outRate)
}

func (r *Resampler) reset() {
	for i := range r.hasFrame {
		r.hasFrame[i] = false
	}
	r.pos = 0
	r.srcPos = 0
	r.srcLen = 0
	r.srcEOF = false
	r.tailShifts = 0
	r.finished = false
}

// prime fills the initial window. frames[0] duplicates the first frame so
// interpolation has a left neighbor; a short source duplicates its last
// frame rightward.
func (r *Resampler) prime() bool {
	if !r.fetch(1) {
		return false
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0] = true

	for i := 2; i < 4; i++ {
		if !r.fetch(i) {
			copy(r.frames[i], r.frames[i-1])
			r.hasFrame[i] = true
		}
	}
	return true
}

// shift advances the window one source frame. Returns false once the
// playable region is exhausted.
func (r *Resampler) shift() bool {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])

	if !r.fetch(3) {
		// Duplicate the edge frame; after two such shifts frames[2] no
		// longer holds real data and the window is done.
		copy(r.frames[3], r.frames[2])
		r.tailShifts++
		if r.tailShifts > 2 {
			return false
		}
	}
	return true
}

// fetch reads one source frame into the window slot, refilling the byte
// staging buffer from the wrapped decoder as needed.
func (r *Resampler) fetch(slot int) bool {
	frameSize := 2 * r.inChannels

	if r.srcLen-r.srcPos < frameSize {
		if r.srcEOF {
			r.hasFrame[slot] = false
			return false
		}
		n := r.wrapped.Decode(r.srcBuf)
		r.srcPos = 0
		r.srcLen = n
		if r.wrapped.IsFinished() {
			r.srcEOF = true
		}
		if n < frameSize {
			r.hasFrame[slot] = false
			return false
		}
	}

	for c := 0; c < r.inChannels; c++ {
		s := int16(binary.LittleEndian.Uint16(r.srcBuf[r.srcPos+2*c:]))
		r.frames[slot][c] = utils.Int16ToFloat32(s)
	}
	r.srcPos += frameSize
	r.hasFrame[slot] = true
	return true
}

// emitFrame interpolates one output frame at fractional position alpha
// and writes it, converting channel count on the way out.
func (r *Resampler) emitFrame(dst []byte, alpha float32) {
	for c := 0; c < r.inChannels; c++ {
		r.mixed[c] = utils.CubicInterpolate(
			r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
	}

	if r.inChannels != r.outChannels {
		if r.inChannels == 1 {
			r.mixed[1] = r.mixed[0]
		} else {
			// Downmix any wider layout by averaging every source channel.
			var sum float32
			for c := 0; c < r.inChannels; c++ {
				sum += r.mixed[c]
			}
			avg := sum / float32(r.inChannels)
			r.mixed[0] = avg
			r.mixed[1] = avg
		}
	}

	for c := 0; c < r.outChannels; c++ {
		binary.LittleEndian.PutUint16(dst[2*c:], uint16(utils.Float32ToInt16(r.mixed[c])))
	}
}
