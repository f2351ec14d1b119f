// SPDX-License-Identifier: EPL-2.0

// Package generic provides the multi-container backend: a single decoder
// covering RIFF/WAVE (go-audio/wav), FORM/AIFF (go-audio/aiff), Ogg
// Vorbis (jfreymuth/oggvorbis) and FLAC (mewkiz/flac), selected by magic
// at Open.
//
// The factory routes these four container magics here when the cheaper
// dedicated probes decline. A non-PCM WAV, for instance, falls through
// the fast path and lands in this backend.
package generic
