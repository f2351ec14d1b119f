// SPDX-License-Identifier: EPL-2.0

package generic

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fdelapena/Player/decoder"
)

func init() {
	decoder.Register("generic", decoder.Entry{New: New})
}

// reader is the container-specific surface behind the generic decoder.
type reader interface {
	open(stream decoder.Stream) error
	// fill decodes up to len(buf) bytes of S16 PCM into buf. It returns 0
	// at end of stream and a negative value on a read error.
	fill(buf []byte) int
	format() (rate, channels int)
}

// Decoder is the multi-container backend: one decoder that reads every
// container the codec libraries cover (RIFF, FORM, OggS, fLaC), selected
// by magic at Open. Output is always 16-bit signed PCM.
type Decoder struct {
	decoder.Base

	stream   decoder.Stream
	r        reader
	decoded  int64
	finished bool
}

// New returns an unopened generic decoder.
func New() decoder.Decoder {
	d := &Decoder{}
	d.Init("generic", d)
	return d
}

func (d *Decoder) Open(stream decoder.Stream) error {
	var magic [4]byte
	if _, err := io.ReadFull(stream, magic[:]); err != nil {
		return d.SetError(ErrUnsupportedContainer)
	}
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return d.SetError(fmt.Errorf("generic: %w", err))
	}

	var r reader
	switch {
	case bytes.Equal(magic[:], []byte("RIFF")):
		r = &riffReader{}
	case bytes.Equal(magic[:], []byte("FORM")):
		r = &aiffReader{}
	case bytes.Equal(magic[:], []byte("OggS")):
		r = &oggReader{}
	case bytes.Equal(magic[:], []byte("fLaC")):
		r = &flacReader{}
	default:
		return d.SetError(ErrUnsupportedContainer)
	}

	if err := r.open(stream); err != nil {
		return d.SetError(err)
	}

	d.stream = stream
	d.r = r
	d.decoded = 0
	d.finished = false
	return nil
}

func (d *Decoder) FillBuffer(buf []byte) int {
	if d.r == nil {
		return -1
	}

	total := 0
	for total < len(buf)-1 { // S16 needs 2 bytes per sample
		n := d.r.fill(buf[total:])
		if n < 0 {
			if total > 0 {
				break
			}
			return -1
		}
		if n == 0 {
			d.finished = true
			break
		}
		total += n
	}

	d.decoded += int64(total)
	return total
}

// Seek supports only a rewind to the origin; the codec libraries behind
// this backend have no common random-access surface. Rewinding re-opens
// the container from byte 0.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.stream == nil {
		return d.SetError(decoder.ErrNotOpened)
	}
	if offset != 0 || whence != io.SeekStart {
		return d.SetError(ErrSeekUnsupported)
	}

	if _, err := d.stream.Seek(0, io.SeekStart); err != nil {
		return d.SetError(fmt.Errorf("generic: %w", err))
	}
	if err := d.r.open(d.stream); err != nil {
		return d.SetError(err)
	}

	d.decoded = 0
	d.finished = false
	return nil
}

func (d *Decoder) IsFinished() bool { return d.finished }

func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	if d.r == nil {
		return 0, decoder.FormatS16, 0
	}
	rate, channels := d.r.format()
	return rate, decoder.FormatS16, channels
}

// GetTicks returns whole seconds of audio decoded so far.
func (d *Decoder) GetTicks() int {
	if d.r == nil {
		return 0
	}
	rate, channels := d.r.format()
	if rate <= 0 || channels <= 0 {
		return 0
	}
	return int(d.decoded / int64(2*channels) / int64(rate))
}
