// SPDX-License-Identifier: EPL-2.0

package player

// Importing a format package is what makes its backend available to
// Create. This is the bundled set; builds wanting fewer codecs import the
// decoder package and the desired formats directly.
import (
	_ "github.com/fdelapena/Player/formats/generic"
	_ "github.com/fdelapena/Player/formats/mod"
	_ "github.com/fdelapena/Player/formats/mp3"
	_ "github.com/fdelapena/Player/formats/opus"
	_ "github.com/fdelapena/Player/formats/vorbis"
	_ "github.com/fdelapena/Player/formats/wav"
)
