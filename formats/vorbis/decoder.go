// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/utils"
)

func init() {
	decoder.Register("vorbis", decoder.Entry{New: New})
}

// Decoder decodes Ogg Vorbis streams through jfreymuth/oggvorbis. The
// library yields float32 samples; output is converted to 16-bit signed.
type Decoder struct {
	decoder.Base

	r        *oggvorbis.Reader
	fbuf     []float32
	finished bool
}

// New returns an unopened Vorbis decoder.
func New() decoder.Decoder {
	d := &Decoder{}
	d.Init("vorbis", d)
	return d
}

func (d *Decoder) Open(stream decoder.Stream) error {
	r, err := oggvorbis.NewReader(stream)
	if err != nil {
		return d.SetError(fmt.Errorf("vorbis: %w", err))
	}

	d.r = r
	d.fbuf = make([]float32, 4096)
	d.finished = false
	return nil
}

func (d *Decoder) FillBuffer(buf []byte) int {
	if d.r == nil {
		return -1
	}

	want := len(buf) / 2
	if cap(d.fbuf) < want {
		d.fbuf = make([]float32, want)
	}
	d.fbuf = d.fbuf[:want]

	total := 0
	for total < want {
		n, err := d.r.Read(d.fbuf[total:])
		total += n
		if err == io.EOF {
			d.finished = true
			break
		}
		if err != nil {
			if total > 0 {
				break
			}
			return -1
		}
		if n == 0 {
			break
		}
	}

	for i := 0; i < total; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(utils.Float32ToInt16(d.fbuf[i])))
	}

	return total * 2
}

// Seek interprets offset as a decoded PCM byte position (16-bit samples)
// and maps it to the library's per-channel sample index.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.r == nil {
		return d.SetError(decoder.ErrNotOpened)
	}

	frameSize := int64(2 * d.r.Channels())
	var index int64
	switch whence {
	case io.SeekStart:
		index = offset / frameSize
	case io.SeekCurrent:
		index = d.r.Position() + offset/frameSize
	case io.SeekEnd:
		index = d.r.Length() + offset/frameSize
	default:
		return d.SetError(fmt.Errorf("vorbis: invalid whence %d", whence))
	}

	if err := d.r.SetPosition(index); err != nil {
		return d.SetError(fmt.Errorf("vorbis: %w", err))
	}

	d.finished = d.r.Length() > 0 && index >= d.r.Length()
	return nil
}

func (d *Decoder) IsFinished() bool { return d.finished }

func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	if d.r == nil {
		return 0, decoder.FormatS16, 0
	}
	return d.r.SampleRate(), decoder.FormatS16, d.r.Channels()
}

// Tell returns the decoded PCM byte position.
func (d *Decoder) Tell() int64 {
	if d.r == nil {
		return -1
	}
	return d.r.Position() * int64(2*d.r.Channels())
}

// GetTicks returns whole seconds of audio decoded so far.
func (d *Decoder) GetTicks() int {
	if d.r == nil || d.r.SampleRate() <= 0 {
		return 0
	}
	return int(d.r.Position() / int64(d.r.SampleRate()))
}
