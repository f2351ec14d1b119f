// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pion/opus"
	"github.com/pion/opus/pkg/oggreader"

	"github.com/fdelapena/Player/decoder"
)

func init() {
	decoder.Register("opus", decoder.Entry{New: New})
}

// Opus always decodes at 48 kHz regardless of the original input rate.
const opusSampleRate = 48000

// 20 ms at 48 kHz, 16-bit, per channel.
const frameBytesPerChannel = 960 * 2

// ErrSeekUnsupported is returned for any seek other than a rewind to the
// stream origin; Ogg Opus has no sample-accurate index to seek by.
var ErrSeekUnsupported = errors.New("opus: only rewind is supported")

// Decoder decodes Ogg Opus streams: page and segment demux through
// pion's oggreader, packet decode through pion/opus.
type Decoder struct {
	decoder.Base

	stream   decoder.Stream
	ogg      *oggreader.OggReader
	dec      opus.Decoder
	channels int

	segments [][]byte // undecoded segments of the current page
	pcm      []byte   // decoded bytes not yet handed out
	pcmPos   int
	out      []byte

	decoded  int64
	finished bool
}

// New returns an unopened Opus decoder.
func New() decoder.Decoder {
	d := &Decoder{}
	d.Init("opus", d)
	return d
}

func (d *Decoder) Open(stream decoder.Stream) error {
	ogg, hdr, err := oggreader.NewWith(stream)
	if err != nil {
		return d.SetError(fmt.Errorf("opus: %w", err))
	}

	d.stream = stream
	d.ogg = ogg
	d.channels = int(hdr.Channels)
	if d.channels < 1 {
		d.channels = 1
	}
	d.dec = opus.NewDecoder()
	d.out = make([]byte, frameBytesPerChannel*d.channels)
	d.segments = nil
	d.pcm = nil
	d.pcmPos = 0
	d.decoded = 0
	d.finished = false
	return nil
}

func (d *Decoder) FillBuffer(buf []byte) int {
	if d.ogg == nil {
		return -1
	}

	total := 0
	for total < len(buf) {
		if d.pcmPos < len(d.pcm) {
			n := copy(buf[total:], d.pcm[d.pcmPos:])
			d.pcmPos += n
			total += n
			d.decoded += int64(n)
			continue
		}

		segment, ok := d.nextSegment()
		if !ok {
			d.finished = true
			break
		}

		// Header packets carry no audio.
		if bytes.HasPrefix(segment, []byte("OpusHead")) || bytes.HasPrefix(segment, []byte("OpusTags")) {
			continue
		}

		if _, _, err := d.dec.Decode(segment, d.out); err != nil {
			// Damaged or unsupported packets are skipped, not fatal;
			// padding covers the gap.
			continue
		}
		d.pcm = d.out
		d.pcmPos = 0
	}

	return total
}

func (d *Decoder) nextSegment() ([]byte, bool) {
	for len(d.segments) == 0 {
		segments, _, err := d.ogg.ParseNextPage()
		if err != nil {
			return nil, false
		}
		d.segments = segments
	}

	segment := d.segments[0]
	d.segments = d.segments[1:]
	return segment, true
}

// Seek supports only a rewind to the origin, done by re-demuxing the
// stream from byte 0.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.stream == nil {
		return d.SetError(decoder.ErrNotOpened)
	}
	if offset != 0 || whence != io.SeekStart {
		return d.SetError(ErrSeekUnsupported)
	}

	if _, err := d.stream.Seek(0, io.SeekStart); err != nil {
		return d.SetError(fmt.Errorf("opus: %w", err))
	}

	return d.Open(d.stream)
}

func (d *Decoder) IsFinished() bool { return d.finished }

func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	return opusSampleRate, decoder.FormatS16, d.channels
}

// GetTicks returns whole seconds of audio decoded so far.
func (d *Decoder) GetTicks() int {
	if d.channels <= 0 {
		return 0
	}
	return int(d.decoded / int64(2*d.channels) / opusSampleRate)
}
