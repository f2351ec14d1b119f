// SPDX-License-Identifier: EPL-2.0

package player

import (
	"io"

	"github.com/fdelapena/Player/decoder"
)

type namedStream struct {
	io.ReadSeeker
	name string
}

func (s *namedStream) Name() string { return s.name }

// NewFileStream adapts any seekable reader into a decoder.Stream. The
// name is what extension heuristics see; for files pass the path.
func NewFileStream(r io.ReadSeeker, name string) decoder.Stream {
	return &namedStream{ReadSeeker: r, name: name}
}
