// SPDX-License-Identifier: EPL-2.0

package player_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	player "github.com/fdelapena/Player"
	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/formats/wav"
	"github.com/fdelapena/Player/internal/decodertest"
	"github.com/fdelapena/Player/resample"
)

func pcmWAV(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	require.NoError(t, wav.WriteWAV16(buf, 8000, 1, []int16{1, 2, 3, 4}))
	return buf.Bytes()
}

// nonPCMWAV is a RIFF/WAVE header whose encoding tag is not linear PCM,
// which must bypass the fast path.
func nonPCMWAV() []byte {
	data := make([]byte, 44)
	copy(data[0:4], "RIFF")
	binary.LittleEndian.PutUint32(data[4:8], 36)
	copy(data[8:12], "WAVE")
	copy(data[12:16], "fmt ")
	binary.LittleEndian.PutUint32(data[16:20], 16)
	binary.LittleEndian.PutUint16(data[20:22], 85) // MP3-in-WAV
	copy(data[36:40], "data")
	return data
}

// oggWith builds a fake Ogg page start carrying a codec id at the given
// offset; Create only inspects magics, not full page structure.
func oggWith(offset int, id string) []byte {
	data := make([]byte, 64)
	copy(data[0:4], "OggS")
	copy(data[offset:], id)
	return data
}

func TestCreateIdentifiesBackends(t *testing.T) {
	t.Parallel()

	wavFile := pcmWAV(t)

	tests := []struct {
		name     string
		fileName string
		data     []byte
		wantType string
	}{
		{name: "pcm wav fast path", fileName: "a.wav", data: wavFile, wantType: "wav"},
		{name: "non-pcm riff goes generic", fileName: "a.wav", data: nonPCMWAV(), wantType: "generic"},
		{name: "ogg opus", fileName: "a.opus", data: oggWith(28, "Opus"), wantType: "opus"},
		{name: "ogg vorbis", fileName: "a.ogg", data: oggWith(29, "vorb"), wantType: "vorbis"},
		{name: "unknown ogg codec goes generic", fileName: "a.ogg", data: oggWith(40, "spee"), wantType: "generic"},
		{name: "aiff goes generic", fileName: "a.aiff", data: append([]byte("FORM"), make([]byte, 40)...), wantType: "generic"},
		{name: "flac goes generic", fileName: "a.flac", data: append([]byte("fLaC"), make([]byte, 40)...), wantType: "generic"},
		{name: "id3 tagged mp3", fileName: "a.mp3", data: append([]byte("ID3\x04"), make([]byte, 40)...), wantType: "mp3"},
		{name: "tracker module", fileName: "a.xm", data: []byte("Extended Module: test song title"), wantType: "mod"},
		{name: "wma stub", fileName: "a.wma", data: append([]byte{0x30, 0x26, 0xB2, 0x75}, make([]byte, 40)...), wantType: "wma"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stream := decodertest.NewMemStream(tt.fileName, tt.data)
			d := player.Create(stream, false)

			require.NotNil(t, d, "Create() returned nil")
			assert.Equal(t, tt.wantType, d.GetType())

			pos, err := stream.Seek(0, io.SeekCurrent)
			require.NoError(t, err)
			assert.Zero(t, pos, "stream not restored to origin")
		})
	}
}

func TestCreateUnknownFormat(t *testing.T) {
	t.Parallel()

	stream := decodertest.NewMemStream("mystery.bin", []byte("nothing recognizes these bytes"))
	d := player.Create(stream, false)
	assert.Nil(t, d)

	pos, err := stream.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos, "stream not restored to origin on decline")
}

func TestCreateShortStream(t *testing.T) {
	t.Parallel()

	assert.Nil(t, player.Create(decodertest.NewMemStream("tiny", []byte("ab")), false))
	assert.Nil(t, player.Create(decodertest.NewMemStream("empty", nil), false))
}

// TestCreateShortOgg: an Ogg page too short to carry a codec id is
// conclusively unplayable, not a candidate for the remaining probes.
func TestCreateShortOgg(t *testing.T) {
	t.Parallel()

	stream := decodertest.NewMemStream("stub.ogg", []byte("OggS\x00\x02"))
	assert.Nil(t, player.Create(stream, false))

	pos, err := stream.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Zero(t, pos, "stream not restored to origin on decline")
}

func TestCreateResamplerWrapped(t *testing.T) {
	t.Parallel()

	stream := decodertest.NewMemStream("a.wav", pcmWAV(t))
	d := player.Create(stream, true)
	require.NotNil(t, d)

	r, ok := d.(*resample.Resampler)
	require.True(t, ok, "resample=true did not wrap the decoder")

	require.NoError(t, r.Open(stream))
	assert.Equal(t, "wav", r.GetType())
	require.NoError(t, r.SetFormat(44100, decoder.FormatS16, 2))

	rate, format, channels := r.GetFormat()
	assert.Equal(t, 44100, rate)
	assert.Equal(t, decoder.FormatS16, format)
	assert.Equal(t, 2, channels)
}

// TestCreateOpensWhatItIdentifies: the wav fast path result must open
// and decode against the same stream.
func TestCreateOpensWhatItIdentifies(t *testing.T) {
	t.Parallel()

	stream := decodertest.NewMemStream("a.wav", pcmWAV(t))
	d := player.Create(stream, false)
	require.NotNil(t, d)
	require.NoError(t, d.Open(stream))

	buf := make([]byte, 8)
	assert.Equal(t, 8, d.Decode(buf))
	assert.True(t, d.IsFinished())
}

func TestWMAStubRefusesOpen(t *testing.T) {
	t.Parallel()

	data := append([]byte{0x30, 0x26, 0xB2, 0x75}, make([]byte, 16)...)
	stream := decodertest.NewMemStream("track.wma", data)

	d := player.Create(stream, false)
	require.NotNil(t, d)

	err := d.Open(stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
	assert.Contains(t, d.GetError(), "not supported")
}

type fakeMIDI struct{ decoder.Base }

func newFakeMIDI() decoder.Decoder {
	d := &fakeMIDI{}
	d.Init("midi", d)
	return d
}

func (d *fakeMIDI) Open(decoder.Stream) error { return nil }
func (d *fakeMIDI) Seek(int64, int) error     { return nil }
func (d *fakeMIDI) IsFinished() bool          { return true }
func (d *fakeMIDI) FillBuffer([]byte) int     { return 0 }

func (d *fakeMIDI) GetFormat() (int, decoder.Format, int) {
	return 44100, decoder.FormatS16, 2
}

// TestCreateMIDIFallsThrough: with no "midi" backend an MThd magic is
// not conclusive and the later probes still get to claim the stream,
// here the tracker backend through its extension heuristic. Not
// parallel, it must run before the registry mutation below.
func TestCreateMIDIFallsThrough(t *testing.T) {
	smf := append([]byte("MThd"), make([]byte, 28)...)

	d := player.Create(decodertest.NewMemStream("a.xm", smf), false)
	require.NotNil(t, d)
	assert.Equal(t, "mod", d.GetType())
}

// TestCreateMIDIHook: MThd yields nothing by default, and whatever is
// registered under "midi" afterwards. Not parallel, it mutates the
// registry.
func TestCreateMIDIHook(t *testing.T) {
	smf := append([]byte("MThd"), make([]byte, 16)...)

	assert.Nil(t, player.Create(decodertest.NewMemStream("a.mid", smf), false))

	decoder.Register("midi", decoder.Entry{New: newFakeMIDI})

	d := player.Create(decodertest.NewMemStream("a.mid", smf), false)
	require.NotNil(t, d)
	assert.Equal(t, "midi", d.GetType())
}
