// SPDX-License-Identifier: EPL-2.0

// Package decodertest holds shared test doubles for the decoder contract.
package decodertest

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/fdelapena/Player/decoder"
)

// MockBackend is a deterministic backend for exercising the shared
// decoder behavior. It produces totalBytes of a repeating byte pattern
// (i mod 251 + 1, never zero, so padding is distinguishable from data)
// and implements decoder.Decoder through the embedded Base.
type MockBackend struct {
	decoder.Base

	totalBytes int
	cursor     int

	// MaxFill caps the bytes served per FillBuffer call; zero means
	// unlimited. Useful for forcing underruns.
	MaxFill int

	// FailFill makes FillBuffer report an error return.
	FailFill bool

	// Rewinds counts Seek calls back to the origin.
	Rewinds int
}

// NewMockBackend returns an opened-equivalent mock serving totalBytes of
// pattern data. totalBytes of zero models a pathological empty track that
// is finished before the first read.
func NewMockBackend(totalBytes int) *MockBackend {
	m := &MockBackend{totalBytes: totalBytes}
	m.Init("mock", m)
	return m
}

// PatternByte is the byte the mock serves at offset i.
func PatternByte(i int) byte {
	return byte(i%251) + 1
}

func (m *MockBackend) Open(decoder.Stream) error { return nil }

func (m *MockBackend) FillBuffer(buf []byte) int {
	if m.FailFill {
		return -1
	}

	n := len(buf)
	if m.MaxFill > 0 && n > m.MaxFill {
		n = m.MaxFill
	}
	if remain := m.totalBytes - m.cursor; n > remain {
		n = remain
	}
	for i := 0; i < n; i++ {
		buf[i] = PatternByte(m.cursor + i)
	}
	m.cursor += n
	return n
}

func (m *MockBackend) IsFinished() bool {
	return m.cursor >= m.totalBytes
}

func (m *MockBackend) Seek(offset int64, whence int) error {
	if offset == 0 && whence == io.SeekStart {
		m.cursor = 0
		m.Rewinds++
		return nil
	}
	m.cursor = int(offset)
	return nil
}

func (m *MockBackend) GetFormat() (int, decoder.Format, int) {
	return 44100, decoder.FormatS16, 2
}

// PCMBackend serves a fixed slice of interleaved 16-bit samples as a
// decoder, for exercising consumers that interpret the PCM.
type PCMBackend struct {
	decoder.Base

	rate     int
	channels int
	data     []byte
	cursor   int
}

// NewPCMBackend wraps samples as an opened-equivalent S16 decoder.
func NewPCMBackend(rate, channels int, samples []int16) *PCMBackend {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[i*2:], uint16(s))
	}
	m := &PCMBackend{rate: rate, channels: channels, data: data}
	m.Init("pcm", m)
	return m
}

func (m *PCMBackend) Open(decoder.Stream) error { return nil }

func (m *PCMBackend) FillBuffer(buf []byte) int {
	n := copy(buf, m.data[m.cursor:])
	m.cursor += n
	return n
}

func (m *PCMBackend) IsFinished() bool { return m.cursor >= len(m.data) }

func (m *PCMBackend) Seek(offset int64, whence int) error {
	if offset == 0 && whence == io.SeekStart {
		m.cursor = 0
		return nil
	}
	m.cursor = int(offset)
	return nil
}

func (m *PCMBackend) GetFormat() (int, decoder.Format, int) {
	return m.rate, decoder.FormatS16, m.channels
}

// MemStream is an in-memory decoder.Stream with a name, for factory and
// backend tests.
type MemStream struct {
	*bytes.Reader
	name string
}

// NewMemStream wraps data as a named seekable stream.
func NewMemStream(name string, data []byte) *MemStream {
	return &MemStream{Reader: bytes.NewReader(data), name: name}
}

func (s *MemStream) Name() string { return s.name }
