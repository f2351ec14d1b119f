// SPDX-License-Identifier: EPL-2.0

package decoder

import "fmt"

// Format is the sample format of decoded PCM. The enumeration is closed;
// passing any other value to SampleSize is a contract violation.
type Format int

const (
	FormatS8 Format = iota
	FormatU8
	FormatS16
	FormatU16
	FormatS32
	FormatU32
	FormatF32
)

func (f Format) String() string {
	switch f {
	case FormatS8:
		return "s8"
	case FormatU8:
		return "u8"
	case FormatS16:
		return "s16"
	case FormatU16:
		return "u16"
	case FormatS32:
		return "s32"
	case FormatU32:
		return "u32"
	case FormatF32:
		return "f32"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// SampleSize returns the byte width of a single sample in the given
// format. It panics on values outside the enumeration: a backend
// presenting one is buggy, not reading bad input.
func SampleSize(format Format) int {
	switch format {
	case FormatS8, FormatU8:
		return 1
	case FormatS16, FormatU16:
		return 2
	case FormatS32, FormatU32, FormatF32:
		return 4
	}
	panic(fmt.Sprintf("decoder: bad format %d", int(format)))
}
