// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/fdelapena/Player/decoder"
)

func init() {
	decoder.Register("mp3", decoder.Entry{New: New, Sniff: Sniff})
}

// Decoder decodes MP3 streams through go-mp3. Output is always 16-bit
// signed stereo at the stream's sample rate.
type Decoder struct {
	decoder.Base

	dec      *gomp3.Decoder
	cursor   int64 // decoded PCM byte position
	finished bool
}

// New returns an unopened MP3 decoder.
func New() decoder.Decoder {
	d := &Decoder{}
	d.Init("mp3", d)
	return d
}

func (d *Decoder) Open(stream decoder.Stream) error {
	dec, err := gomp3.NewDecoder(stream)
	if err != nil {
		return d.SetError(fmt.Errorf("mp3: %w", err))
	}

	d.dec = dec
	d.cursor = 0
	d.finished = false
	return nil
}

func (d *Decoder) FillBuffer(buf []byte) int {
	if d.dec == nil {
		return -1
	}

	total := 0
	for total < len(buf) {
		n, err := d.dec.Read(buf[total:])
		total += n
		d.cursor += int64(n)
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

	return total
}

// Seek repositions within the decoded PCM byte stream.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.dec == nil {
		return d.SetError(decoder.ErrNotOpened)
	}

	pos, err := d.dec.Seek(offset, whence)
	if err != nil {
		return d.SetError(fmt.Errorf("mp3: %w", err))
	}

	d.cursor = pos
	length := d.dec.Length()
	d.finished = length >= 0 && pos >= length
	return nil
}

func (d *Decoder) IsFinished() bool { return d.finished }

func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	if d.dec == nil {
		return 0, decoder.FormatS16, 2
	}
	// go-mp3 always outputs stereo 16-bit.
	return d.dec.SampleRate(), decoder.FormatS16, 2
}

// Tell returns the decoded PCM byte position.
func (d *Decoder) Tell() int64 { return d.cursor }

// GetTicks returns whole seconds of audio decoded so far.
func (d *Decoder) GetTicks() int {
	if d.dec == nil || d.dec.SampleRate() <= 0 {
		return 0
	}
	// 4 bytes per stereo 16-bit frame.
	return int(d.cursor / 4 / int64(d.dec.SampleRate()))
}

// Sniff reports whether the stream parses as MP3. Frame parsing is the
// only reliable detection for headerless MP3 streams, which is why the
// factory runs it last. The stream position is undefined afterwards; the
// caller rewinds.
func Sniff(stream decoder.Stream) bool {
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return false
	}
	_, err := gomp3.NewDecoder(stream)
	return err == nil
}
