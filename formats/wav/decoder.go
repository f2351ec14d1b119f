// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/fdelapena/Player/decoder"
)

func init() {
	decoder.Register("wav", decoder.Entry{New: New})
}

// Decoder is a standalone basic decoder for linear-PCM WAV. It walks the
// RIFF chunk list itself instead of going through a codec library, which
// keeps the common PCM case cheap for the factory's fast path.
type Decoder struct {
	decoder.Base

	stream decoder.Stream

	format     decoder.Format
	sampleRate int
	channels   int

	// Byte range of the data chunk payload. dataOffset is absolute in the
	// stream; cursor is container-relative within the chunk.
	dataOffset int64
	dataSize   int64
	cursor     int64

	finished bool
}

// New returns an unopened WAV decoder.
func New() decoder.Decoder {
	d := &Decoder{}
	d.Init("wav", d)
	return d
}

var (
	riffTag = []byte("RIFF")
	waveTag = []byte("WAVE")
	fmtTag  = []byte("fmt ")
	dataTag = []byte("data")
)

// Open parses the RIFF header and chunk list, locating the fmt and data
// chunks. The stream is left positioned at the start of the PCM payload.
func (d *Decoder) Open(stream decoder.Stream) error {
	var hdr [12]byte
	if _, err := io.ReadFull(stream, hdr[:]); err != nil {
		return d.SetError(ErrNotWavFile)
	}
	if !bytes.Equal(hdr[0:4], riffTag) || !bytes.Equal(hdr[8:12], waveTag) {
		return d.SetError(ErrNotWavFile)
	}

	var haveFmt bool
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(stream, chunk[:]); err != nil {
			if haveFmt {
				return d.SetError(ErrMissingDataChunk)
			}
			return d.SetError(ErrMissingFmtChunk)
		}
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch {
		case bytes.Equal(chunk[0:4], fmtTag):
			if err := d.parseFmt(stream, size); err != nil {
				return d.SetError(err)
			}
			haveFmt = true

		case bytes.Equal(chunk[0:4], dataTag):
			if !haveFmt {
				return d.SetError(ErrMissingFmtChunk)
			}
			pos, err := stream.Seek(0, io.SeekCurrent)
			if err != nil {
				return d.SetError(fmt.Errorf("wav: %w", err))
			}
			d.stream = stream
			d.dataOffset = pos
			d.dataSize = size
			d.cursor = 0
			d.finished = false
			return nil

		default:
			// Chunks are 2-byte aligned; skip content plus pad byte.
			if size%2 == 1 {
				size++
			}
			if _, err := stream.Seek(size, io.SeekCurrent); err != nil {
				return d.SetError(fmt.Errorf("wav: %w", err))
			}
		}
	}
}

func (d *Decoder) parseFmt(stream decoder.Stream, size int64) error {
	if size < 16 {
		return ErrUnsupportedWavLayout
	}

	var f [16]byte
	if _, err := io.ReadFull(stream, f[:]); err != nil {
		return ErrUnsupportedWavLayout
	}

	if binary.LittleEndian.Uint16(f[0:2]) != 1 {
		return ErrOnlyPCMSupported
	}

	d.channels = int(binary.LittleEndian.Uint16(f[2:4]))
	d.sampleRate = int(binary.LittleEndian.Uint32(f[4:8]))

	switch bits := binary.LittleEndian.Uint16(f[14:16]); bits {
	case 8:
		d.format = decoder.FormatU8
	case 16:
		d.format = decoder.FormatS16
	case 32:
		d.format = decoder.FormatS32
	default:
		return ErrUnsupportedWavLayout
	}

	if d.channels < 1 || d.channels > 2 {
		return ErrUnsupportedWavLayout
	}
	if d.sampleRate <= 0 {
		return ErrUnsupportedWavLayout
	}

	// Skip any fmt extension bytes.
	rest := size - 16
	if rest%2 == 1 {
		rest++
	}
	if rest > 0 {
		if _, err := stream.Seek(rest, io.SeekCurrent); err != nil {
			return fmt.Errorf("wav: %w", err)
		}
	}

	return nil
}

// FillBuffer reads PCM from the data chunk, never past its recorded
// boundary even when the stream has trailing bytes.
func (d *Decoder) FillBuffer(buf []byte) int {
	if d.stream == nil {
		return -1
	}

	remaining := d.dataSize - d.cursor
	if remaining <= 0 {
		d.finished = true
		return 0
	}

	want := int64(len(buf))
	if want > remaining {
		want = remaining
	}

	n, err := d.stream.Read(buf[:want])
	d.cursor += int64(n)
	if d.cursor >= d.dataSize {
		d.finished = true
	}

	if err != nil {
		if err == io.EOF {
			d.finished = true
			return n
		}
		return -1
	}

	return n
}

// Seek maps a container-relative data offset onto the stream. Targets
// beyond the data chunk are an error, not a clamp.
func (d *Decoder) Seek(offset int64, whence int) error {
	if d.stream == nil {
		return d.SetError(decoder.ErrNotOpened)
	}

	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = d.cursor + offset
	case io.SeekEnd:
		target = d.dataSize + offset
	default:
		return d.SetError(fmt.Errorf("wav: invalid whence %d", whence))
	}

	if target < 0 || target > d.dataSize {
		return d.SetError(ErrSeekOutOfRange)
	}

	if _, err := d.stream.Seek(d.dataOffset+target, io.SeekStart); err != nil {
		return d.SetError(fmt.Errorf("wav: %w", err))
	}

	d.cursor = target
	d.finished = target >= d.dataSize
	return nil
}

func (d *Decoder) IsFinished() bool { return d.finished }

func (d *Decoder) GetFormat() (int, decoder.Format, int) {
	return d.sampleRate, d.format, d.channels
}

// Tell returns the container-relative byte position within the data chunk.
func (d *Decoder) Tell() int64 { return d.cursor }

// GetTicks returns whole seconds of audio decoded so far.
func (d *Decoder) GetTicks() int {
	if d.sampleRate <= 0 || d.channels <= 0 {
		return 0
	}
	frameSize := int64(d.channels * decoder.SampleSize(d.format))
	return int(d.cursor / frameSize / int64(d.sampleRate))
}
