// SPDX-License-Identifier: EPL-2.0

package generic

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/utils"
)

// riffReader reads RIFF/WAVE through go-audio/wav, covering the PCM
// layouts the minimal fast-path decoder rejects.
type riffReader struct {
	dec      *wav.Decoder
	intBuf   *goaudio.IntBuffer
	bitDepth int
	rate     int
	channels int
}

func (r *riffReader) open(stream decoder.Stream) error {
	dec := wav.NewDecoder(stream)
	if !dec.IsValidFile() {
		return ErrMalformedContainer
	}
	if err := dec.FwdToPCM(); err != nil {
		return fmt.Errorf("generic: wav: %w", err)
	}

	r.dec = dec
	r.rate = int(dec.SampleRate)
	r.channels = int(dec.NumChans)
	r.bitDepth = int(dec.BitDepth)
	return nil
}

func (r *riffReader) fill(buf []byte) int {
	want := len(buf) / 2
	if r.intBuf == nil || cap(r.intBuf.Data) < want {
		r.intBuf = &goaudio.IntBuffer{
			Data: make([]int, want),
			Format: &goaudio.Format{
				NumChannels: r.channels,
				SampleRate:  r.rate,
			},
		}
	}
	r.intBuf.Data = r.intBuf.Data[:want]

	n, err := r.dec.PCMBuffer(r.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return -1
		}
		return 0
	}

	putInt16s(buf, r.intBuf.Data[:n], r.bitDepth)
	return n * 2
}

func (r *riffReader) format() (int, int) { return r.rate, r.channels }

// aiffReader reads FORM/AIFF through go-audio/aiff.
type aiffReader struct {
	dec      *aiff.Decoder
	intBuf   *goaudio.IntBuffer
	bitDepth int
	rate     int
	channels int
}

func (r *aiffReader) open(stream decoder.Stream) error {
	dec := aiff.NewDecoder(stream)
	if !dec.IsValidFile() {
		return ErrMalformedContainer
	}
	dec.ReadInfo()

	format := dec.Format()
	if format == nil {
		return ErrMalformedContainer
	}

	r.dec = dec
	r.rate = format.SampleRate
	r.channels = format.NumChannels
	r.bitDepth = int(dec.BitDepth)
	return nil
}

func (r *aiffReader) fill(buf []byte) int {
	want := len(buf) / 2
	if r.intBuf == nil || cap(r.intBuf.Data) < want {
		r.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, want),
			Format: r.dec.Format(),
		}
	}
	r.intBuf.Data = r.intBuf.Data[:want]

	n, err := r.dec.PCMBuffer(r.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return -1
		}
		return 0
	}

	putInt16s(buf, r.intBuf.Data[:n], r.bitDepth)
	return n * 2
}

func (r *aiffReader) format() (int, int) { return r.rate, r.channels }

// oggReader reads Ogg Vorbis. It only triggers when the dedicated Opus
// and Vorbis probes both declined the stream but the OggS magic matched.
type oggReader struct {
	r        *oggvorbis.Reader
	fbuf     []float32
	rate     int
	channels int
}

func (o *oggReader) open(stream decoder.Stream) error {
	r, err := oggvorbis.NewReader(stream)
	if err != nil {
		return fmt.Errorf("generic: ogg: %w", err)
	}

	o.r = r
	o.rate = r.SampleRate()
	o.channels = r.Channels()
	return nil
}

func (o *oggReader) fill(buf []byte) int {
	want := len(buf) / 2
	if cap(o.fbuf) < want {
		o.fbuf = make([]float32, want)
	}
	o.fbuf = o.fbuf[:want]

	n, err := o.r.Read(o.fbuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return -1
		}
		return 0
	}

	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(utils.Float32ToInt16(o.fbuf[i])))
	}
	return n * 2
}

func (o *oggReader) format() (int, int) { return o.rate, o.channels }

// flacReader reads FLAC through mewkiz/flac, one frame at a time, keeping
// undelivered samples between fills.
type flacReader struct {
	stream   *flac.Stream
	pending  []int16
	rate     int
	channels int
	bitDepth int
}

func (f *flacReader) open(stream decoder.Stream) error {
	s, err := flac.New(stream)
	if err != nil {
		return fmt.Errorf("generic: flac: %w", err)
	}

	f.stream = s
	f.pending = f.pending[:0]
	f.rate = int(s.Info.SampleRate)
	f.channels = int(s.Info.NChannels)
	f.bitDepth = int(s.Info.BitsPerSample)
	return nil
}

func (f *flacReader) fill(buf []byte) int {
	for len(f.pending) == 0 {
		frame, err := f.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				return 0
			}
			return -1
		}

		// Frames hold one subframe per channel; interleave them.
		samples := len(frame.Subframes[0].Samples)
		for i := 0; i < samples; i++ {
			for _, subframe := range frame.Subframes {
				f.pending = append(f.pending, scaleTo16(int(subframe.Samples[i]), f.bitDepth))
			}
		}
	}

	want := len(buf) / 2
	if want > len(f.pending) {
		want = len(f.pending)
	}
	for i := 0; i < want; i++ {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(f.pending[i]))
	}
	f.pending = f.pending[want:]
	return want * 2
}

func (f *flacReader) format() (int, int) { return f.rate, f.channels }

// putInt16s writes go-audio int samples as S16LE, rescaled from bitDepth.
func putInt16s(buf []byte, data []int, bitDepth int) {
	for i, v := range data {
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(scaleTo16(v, bitDepth)))
	}
}

func scaleTo16(v, bitDepth int) int16 {
	switch {
	case bitDepth > 16:
		v >>= uint(bitDepth - 16)
	case bitDepth < 16:
		v <<= uint(16 - bitDepth)
	}
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}
