// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"slices"
	"testing"
)

type nopDecoder struct{ Base }

func (d *nopDecoder) Open(Stream) error             { return nil }
func (d *nopDecoder) Seek(int64, int) error         { return nil }
func (d *nopDecoder) IsFinished() bool              { return true }
func (d *nopDecoder) FillBuffer([]byte) int         { return 0 }
func (d *nopDecoder) GetFormat() (int, Format, int) { return 44100, FormatS16, 2 }

func TestRegisterAndLookup(t *testing.T) {
	Register("test-reg", Entry{New: func() Decoder { return &nopDecoder{} }})

	entry, ok := Lookup("test-reg")
	if !ok {
		t.Fatal("Lookup() did not find registered backend")
	}
	if entry.New == nil {
		t.Fatal("registered entry has nil constructor")
	}
	if entry.Sniff != nil {
		t.Error("Sniff should be nil when not provided")
	}

	if _, ok := Lookup("never-registered"); ok {
		t.Error("Lookup() found a backend that was never registered")
	}
}

func TestRegisterReplaces(t *testing.T) {
	calls := 0
	Register("test-replace", Entry{New: func() Decoder { calls = 1; return &nopDecoder{} }})
	Register("test-replace", Entry{New: func() Decoder { calls = 2; return &nopDecoder{} }})

	entry, _ := Lookup("test-replace")
	entry.New()
	if calls != 2 {
		t.Errorf("constructor from first registration survived, calls = %d", calls)
	}
}

func TestBackendsSorted(t *testing.T) {
	Register("test-zz", Entry{New: func() Decoder { return &nopDecoder{} }})
	Register("test-aa", Entry{New: func() Decoder { return &nopDecoder{} }})

	names := Backends()
	if !slices.IsSorted(names) {
		t.Errorf("Backends() = %v, want sorted", names)
	}
	if !slices.Contains(names, "test-aa") || !slices.Contains(names, "test-zz") {
		t.Errorf("Backends() = %v, missing registered keys", names)
	}
}
