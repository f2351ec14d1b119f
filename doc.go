// SPDX-License-Identifier: EPL-2.0

// Package player turns an audio stream of unknown format into a decoder
// producing interleaved PCM.
//
// The entry point is Create, which sniffs the stream by magic bytes and
// returns a ready decoder, or nil when nothing registered claims the
// content:
//
//	file, _ := os.Open("music.ogg")
//	stream := player.NewFileStream(file, "music.ogg")
//
//	d := player.Create(stream, true)
//	if d == nil {
//		// unknown format
//	}
//	if err := d.Open(stream); err != nil {
//		log.Fatal(err)
//	}
//
//	buf := make([]byte, 8192)
//	for !d.IsFinished() {
//		n := d.Decode(buf)
//		// play buf[:n]
//	}
//
// # Supported Formats
//
// The bundled backends cover:
//   - WAV (PCM) via formats/wav, with non-PCM layouts handled by formats/generic
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - Ogg Opus via formats/opus
//   - AIFF and FLAC via formats/generic
//   - FastTracker II modules via formats/mod
//
// MIDI files are recognized but need an integrator-supplied backend
// registered under the "midi" key. WMA files produce a decoder whose Open
// explains that the format is unsupported.
//
// # Output Negotiation
//
// Passing resample=true to Create wraps the decoder so SetFormat and
// SetPitch work uniformly across backends:
//
//	d := player.Create(stream, true)
//	d.Open(stream)
//	d.SetFormat(44100, decoder.FormatS16, 2)
//	d.SetPitch(150)
//
// # Custom Backends
//
// A backend is any type satisfying the decoder contract; registering it
// makes Create aware of it:
//
//	decoder.Register("midi", decoder.Entry{New: mysynth.New})
//
// See the decoder subpackage for the contract and shared behavior every
// backend inherits: pause silence, underrun padding, gapless looping and
// the fade model.
package player
