// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fdelapena/Player/formats/wav"
	"github.com/fdelapena/Player/internal/decodertest"
)

// Example_decoding decodes an in-memory WAV file.
func Example_decoding() {
	samples := []int16{100, 200, 300, 400, 500}
	wavData := new(bytes.Buffer)
	wav.WriteWAV16(wavData, 16000, 1, samples)

	d := wav.New()
	if err := d.Open(decodertest.NewMemStream("example.wav", wavData.Bytes())); err != nil {
		fmt.Printf("open error: %v\n", err)
		return
	}

	rate, _, channels := d.GetFormat()
	fmt.Printf("Sample rate: %d Hz\n", rate)
	fmt.Printf("Channels: %d\n", channels)

	buf := make([]byte, 64)
	n := d.Decode(buf)
	fmt.Printf("Decoded %d bytes\n", n)
	// Output:
	// Sample rate: 16000 Hz
	// Channels: 1
	// Decoded 10 bytes
}

// Example_seeking seeks within the data chunk; offsets are relative to
// the PCM payload, not the file.
func Example_seeking() {
	samples := []int16{0, 1, 2, 3, 4, 5, 6, 7}
	wavData := new(bytes.Buffer)
	wav.WriteWAV16(wavData, 8000, 1, samples)

	d := wav.New()
	d.Open(decodertest.NewMemStream("example.wav", wavData.Bytes()))

	// Jump to the second half of the payload.
	if err := d.Seek(8, io.SeekStart); err != nil {
		fmt.Printf("seek error: %v\n", err)
		return
	}

	buf := make([]byte, 8)
	n := d.Decode(buf)
	fmt.Printf("Decoded %d bytes from offset %d\n", n, 8)
	// Output: Decoded 8 bytes from offset 8
}
