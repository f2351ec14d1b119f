// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides the Ogg Vorbis backend, built on
// jfreymuth/oggvorbis. The factory selects it when an OggS stream's
// second header probe reads "vorb" at byte offset 29.
package vorbis
