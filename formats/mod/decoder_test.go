// SPDX-License-Identifier: EPL-2.0

package mod

import (
	"os"
	"testing"

	"github.com/fdelapena/Player/decoder"
	"github.com/fdelapena/Player/internal/decodertest"
)

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stream decoder.Stream
		want   bool
	}{
		{
			name:   "header magic",
			stream: decodertest.NewMemStream("song.bin", []byte("Extended Module: some song title")),
			want:   true,
		},
		{
			name:   "extension heuristic",
			stream: decodertest.NewMemStream("music/intro.XM", []byte("garbage without the magic....")),
			want:   true,
		},
		{
			name:   "neither",
			stream: decodertest.NewMemStream("intro.wav", []byte("RIFF....WAVE")),
			want:   false,
		},
		{
			name:   "short stream with matching extension",
			stream: decodertest.NewMemStream("tiny.xm", []byte("ab")),
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Sniff(tt.stream); got != tt.want {
				t.Errorf("Sniff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	t.Parallel()

	d := New()
	err := d.Open(decodertest.NewMemStream("fake.xm", []byte("Extended Module: but truncated")))
	if err == nil {
		t.Fatal("Open() = nil on a truncated module")
	}
	if d.GetError() == "" {
		t.Error("GetError() empty after failed Open")
	}
}

func TestGetTypeAndFormat(t *testing.T) {
	t.Parallel()

	d := New()
	if got := d.GetType(); got != "mod" {
		t.Errorf("GetType() = %q, want \"mod\"", got)
	}

	rate, format, channels := d.GetFormat()
	if rate != 44100 || format != decoder.FormatS16 || channels != 2 {
		t.Errorf("GetFormat() = (%d, %v, %d), want fixed (44100, S16, 2)", rate, format, channels)
	}
}

// TestRenderFile needs a real module; it is skipped when the fixture is
// absent.
func TestRenderFile(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/sample.xm")
	if err != nil {
		t.Skip("no testdata/sample.xm fixture")
	}

	d := New()
	if err := d.Open(decodertest.NewMemStream("sample.xm", data)); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	buf := make([]byte, 16384)
	if n := d.Decode(buf); n == 0 {
		t.Error("no PCM rendered from module")
	}
}
