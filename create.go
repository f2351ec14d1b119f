// SPDX-License-Identifier: EPL-2.0

package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/resample"
)

var wmaMagic = []byte{0x30, 0x26, 0xB2, 0x75}

// mp3Works gates the expensive MP3 probe. It flips to false once, the
// first time backend construction reports a failed initialization, and is
// never retried. Factory calls are single-threaded, so a plain bool is
// enough.
var mp3Works = true

// Create sniffs stream and returns an opened-ready decoder for it, or nil
// when no registered backend claims the content. The stream is left
// positioned at 0 so the caller can hand it straight to Open, or to the
// next consumer when the result is nil.
//
// Probes run cheap to expensive: exact magics, container magics needing a
// second disambiguating read, then the tracker name heuristic and the MP3
// frame-sync scan. When resample is true the returned decoder is wrapped
// so SetFormat and SetPitch work regardless of backend.
func Create(stream decoder.Stream, resample bool) decoder.Decoder {
	var magic [4]byte
	if _, err := io.ReadFull(stream, magic[:]); err != nil {
		return nil
	}
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil
	}

	// Standard MIDI file. The registry hook lets an integrator plug a
	// synthesizer backend in; without one the remaining probes still get
	// a look at the stream.
	if bytes.Equal(magic[:], []byte("MThd")) {
		if entry, ok := decoder.Lookup("midi"); ok {
			return wrap(entry.New(), resample)
		}
	}

	// Ogg is a container, not a codec. Disambiguate by the codec id ("Opus"
	// at offset 28, "vorb" at offset 29) before giving up on the dedicated
	// backends; an unclaimed Ogg falls through to the generic branch, but
	// one too short to carry a codec id is conclusively unplayable.
	if bytes.Equal(magic[:], []byte("OggS")) {
		d, ok := createOgg(stream, resample)
		if d != nil {
			return d
		}
		if !ok {
			return nil
		}
	}

	// Fast path for the overwhelmingly common case, a linear PCM WAV. The
	// encoding tag sits at offset 20 of a canonical RIFF/WAVE header.
	if bytes.Equal(magic[:], []byte("RIFF")) {
		if tag, ok := readLE16At(stream, 20); ok && tag == 1 {
			if entry, ok := decoder.Lookup("wav"); ok {
				return wrap(entry.New(), resample)
			}
		}
	}

	// Containers the generic multi-format backend handles. These magics are
	// conclusive: with no generic backend registered the answer is nil, not
	// a further probe.
	switch string(magic[:]) {
	case "RIFF", "FORM", "OggS", "fLaC":
		if entry, ok := decoder.Lookup("generic"); ok {
			return wrap(entry.New(), resample)
		}
		return nil
	}

	// WMA gets a stub that refuses to open with an actionable message
	// instead of a silent nil.
	if bytes.Equal(magic[:], wmaMagic) {
		logrus.WithField("stream", stream.Name()).Warn("player: WMA audio is not supported")
		return newWMAStub()
	}

	// Tracker modules have no single magic; the backend's own sniff decides.
	if entry, ok := decoder.Lookup("mod"); ok && entry.Sniff != nil {
		matched := entry.Sniff(stream)
		if _, err := stream.Seek(0, io.SeekStart); err != nil {
			return nil
		}
		if matched {
			return wrap(entry.New(), resample)
		}
	}

	// MP3 last: the frame-sync scan reads the whole stream in the worst
	// case, and raw MP3 has no magic to cheapen it.
	if d := createMP3(stream, magic[:], resample); d != nil {
		return d
	}

	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil
	}
	return nil
}

// createOgg picks the codec specific backend for an Ogg stream. ok is
// false when the stream is too short to carry a codec id; a nil decoder
// with ok true means neither dedicated backend claimed the codec.
func createOgg(stream decoder.Stream, resample bool) (d decoder.Decoder, ok bool) {
	var id [33]byte
	_, readErr := io.ReadFull(stream, id[:])
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, false
	}
	if readErr != nil {
		return nil, false
	}

	if entry, ok := decoder.Lookup("opus"); ok && string(id[28:32]) == "Opus" {
		return wrap(entry.New(), resample), true
	}
	if entry, ok := decoder.Lookup("vorbis"); ok && string(id[29:33]) == "vorb" {
		return wrap(entry.New(), resample), true
	}
	return nil, true
}

func createMP3(stream decoder.Stream, magic []byte, resample bool) decoder.Decoder {
	if !mp3Works {
		return nil
	}
	entry, ok := decoder.Lookup("mp3")
	if !ok {
		return nil
	}

	d := entry.New()
	if !d.WasInited() {
		mp3Works = false
		return nil
	}

	if bytes.Equal(magic[:3], []byte("ID3")) {
		return wrap(d, resample)
	}
	if entry.Sniff != nil {
		matched := entry.Sniff(stream)
		if _, err := stream.Seek(0, io.SeekStart); err != nil {
			return nil
		}
		if matched {
			return wrap(d, resample)
		}
	}
	return nil
}

func wrap(d decoder.Decoder, useResampler bool) decoder.Decoder {
	if useResampler {
		return resample.Wrap(d)
	}
	return d
}

// readLE16At reads a little-endian uint16 at offset, restoring the stream
// to 0 either way.
func readLE16At(s decoder.Stream, offset int64) (uint16, bool) {
	if _, err := s.Seek(offset, io.SeekStart); err != nil {
		return 0, false
	}
	var buf [2]byte
	_, readErr := io.ReadFull(s, buf[:])
	if _, err := s.Seek(0, io.SeekStart); err != nil {
		return 0, false
	}
	if readErr != nil {
		return 0, false
	}
	return binary.LittleEndian.Uint16(buf[:]), true
}

// errWMAUnsupported is the fixed diagnostic carried by the WMA stub.
var errWMAUnsupported = errors.New("WMA audio is not supported, convert the file to a supported format")

// wmaStub satisfies the decoder contract but refuses to open. It exists
// so a WMA file yields a readable error instead of "unknown format".
type wmaStub struct {
	decoder.Base
}

func newWMAStub() *wmaStub {
	d := &wmaStub{}
	d.Init("wma", d)
	return d
}

func (d *wmaStub) Open(decoder.Stream) error { return d.SetError(errWMAUnsupported) }
func (d *wmaStub) Seek(int64, int) error     { return errWMAUnsupported }
func (d *wmaStub) IsFinished() bool          { return true }
func (d *wmaStub) FillBuffer([]byte) int     { return -1 }

func (d *wmaStub) GetFormat() (int, decoder.Format, int) {
	return 0, decoder.FormatS16, 0
}
