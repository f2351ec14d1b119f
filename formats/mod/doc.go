// SPDX-License-Identifier: EPL-2.0

// Package mod provides the tracker backend, rendering FastTracker II
// extended modules through quasilyte/xm. Output is always 16-bit stereo
// PCM at 44.1 kHz regardless of the module's internal sample rates.
package mod
