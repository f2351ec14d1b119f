// SPDX-License-Identifier: EPL-2.0

// Package resample converts decoder output to a caller chosen sample
// rate and channel count. It is a decorator: Wrap takes any decoder and
// returns one with a working SetFormat and SetPitch, interpolating with
// a Catmull-Rom spline over a sliding four frame window.
package resample
