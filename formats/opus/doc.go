// SPDX-License-Identifier: EPL-2.0

// Package opus provides the Ogg Opus backend, built on the pure-Go
// pion/opus decoder and its Ogg page reader. The factory selects it when
// an OggS stream reads "Opus" at byte offset 28.
package opus
