// SPDX-License-Identifier: EPL-2.0

package mod

import (
	"bytes"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/quasilyte/xm"
	"github.com/quasilyte/xm/xmfile"

	"github.com/fdelapena/Player/decoder"
)

func init() {
	decoder.Register("mod", decoder.Entry{
		New:   func() decoder.Decoder { return New() },
		Sniff: Sniff,
	})
}

// xmMagic opens every extended module file.
var xmMagic = []byte("Extended Module:")

const outputRate = 44100

// ErrSeekUnsupported is returned for any seek other than a rewind to the
// stream start. Tracker playback position is pattern state, not a byte
// offset.
var ErrSeekUnsupported = errors.New("mod: seek not supported")

// Decoder renders FastTracker II extended modules to 16-bit stereo PCM.
type Decoder struct {
	decoder.Base

	stream   *xm.Stream
	source   decoder.Stream
	finished bool
}

// New returns an unopened tracker decoder.
func New() *Decoder {
	d := &Decoder{}
	d.Init("mod", d)
	return d
}

// Sniff reports whether s looks like a module the tracker backend can
// play, by header magic first and file extension second.
func Sniff(s decoder.Stream) bool {
	var magic [16]byte
	if _, err := io.ReadFull(s, magic[:]); err == nil && bytes.Equal(magic[:], xmMagic) {
		return true
	}
	ext := strings.ToLower(path.Ext(s.Name()))
	return ext == ".xm"
}

// Open parses the module and prepares a render stream.
func (d *Decoder) Open(s decoder.Stream) error {
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return d.SetError(err)
	}
	module, err := xmfile.NewParser(xmfile.ParserConfig{}).Parse(s)
	if err != nil {
		return d.SetError(err)
	}
	stream := xm.NewStream()
	if err := stream.LoadModule(module, xm.LoadModuleConfig{}); err != nil {
		return d.SetError(err)
	}
	d.stream = stream
	d.source = s
	d.finished = false
	return nil
}

// GetFormat reports the fixed render format, 16-bit stereo at 44.1 kHz.
func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	return outputRate, decoder.FormatS16, 2
}

// FillBuffer renders the next PCM block.
func (d *Decoder) FillBuffer(buf []byte) int {
	if d.stream == nil {
		d.SetError(decoder.ErrNotOpened)
		return -1
	}
	n, err := d.stream.Read(buf)
	if err == io.EOF || (err == nil && n == 0) {
		d.finished = true
		return n
	}
	if err != nil {
		d.SetError(err)
		return -1
	}
	return n
}

// IsFinished reports whether the module has played through.
func (d *Decoder) IsFinished() bool {
	return d.finished
}

// Seek supports rewinding to the beginning only.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.stream == nil {
		return d.SetError(decoder.ErrNotOpened)
	}
	if offset != 0 || whence != io.SeekStart {
		return d.SetError(ErrSeekUnsupported)
	}
	d.stream.Rewind()
	d.finished = false
	return nil
}
