// SPDX-License-Identifier: EPL-2.0

// Package wav provides the minimal linear-PCM WAV decoder and a 16-bit
// PCM WAV writer.
//
// The decoder parses the RIFF chunk list by hand: it locates the fmt and
// data chunks, records the data chunk's byte range, and serves fills and
// seeks strictly within that range. The factory uses it as the fast path
// for RIFF streams whose encoding tag is linear PCM, bypassing the
// heavier generic backend.
//
// Supported layouts are 8/16/32-bit PCM, mono or stereo. Anything else
// fails Open with a descriptive sentinel error.
//
// The writer (WriteWAV16) produces canonical 44-byte-header mono WAV
// files and exists mostly for tests and tooling that need fixtures.
package wav
