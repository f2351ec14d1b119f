// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrBadChannelCount is returned by WriteWAV16 for a non-positive
// channel count.
var ErrBadChannelCount = errors.New("wav: channel count must be positive")

// WriteWAV16 writes interleaved 16-bit PCM samples as a canonical
// RIFF/WAVE file. The header it emits is exactly the layout the decoder
// in this package fast-paths, which makes it handy for round-trip
// fixtures as well as for saving decoded output.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels < 1 {
		return ErrBadChannelCount
	}

	dataSize := uint32(len(samples) * 2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // linear PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*channels*2))
	binary.LittleEndian.PutUint16(header[32:34], uint16(channels*2))
	binary.LittleEndian.PutUint16(header[34:36], 16)

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("wav: write header: %w", err)
	}

	// Convert and write in bounded chunks so large tracks do not buffer
	// fully in memory.
	const chunkFrames = 4096
	buf := make([]byte, 0, chunkFrames*2)

	for len(samples) > 0 {
		n := min(len(samples), chunkFrames)
		buf = buf[:n*2]
		for i, s := range samples[:n] {
			binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("wav: write samples: %w", err)
		}
		samples = samples[n:]
	}

	return nil
}
