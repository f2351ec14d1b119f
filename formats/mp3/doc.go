// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides the MP3 backend, built on hajimehoshi/go-mp3.
//
// MP3 has no reliable magic bytes; streams with an ID3 tag are recognized
// by the factory directly, everything else goes through Sniff, which
// attempts a real frame parse. The decoder's logical offsets are decoded
// PCM bytes (stereo 16-bit), matching go-mp3's seek space.
package mp3
