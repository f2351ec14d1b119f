// SPDX-License-Identifier: EPL-2.0

// Package decoder defines the polymorphic decoding contract shared by all
// codec backends, the default behaviors layered over every backend, and
// the registry through which backends become available to the factory.
//
// # The contract
//
// Every backend satisfies the Decoder interface: a pull-based byte-buffer
// decode surface with uniform pause, looping, fading and volume handling.
// Backends embed Base and implement Open, Seek, IsFinished, GetFormat and
// the FillBuffer primitive:
//
//	type myDecoder struct {
//	    decoder.Base
//	    // codec state
//	}
//
//	func New() decoder.Decoder {
//	    d := &myDecoder{}
//	    d.Init("my", d)
//	    return d
//	}
//
// Base then provides Decode (silence while paused, zero-padding on
// underrun, transparent loop-stitching), the fade interpolator, volume
// clamping and the capability defaults.
//
// # Loop-stitching
//
// When a looping decoder finishes mid-buffer, Decode rewinds and fills the
// trailing space from the start of the next pass, so a single call splices
// loop iterations without an audible gap. The recursion is bounded at
// depth 10; a stream that finishes immediately after every rewind produces
// a rate-limited warning and silence instead of unbounded recursion.
//
// # Registration
//
// Format packages register a Constructor (and optionally a Sniff probe)
// from init. Importing a format package is what makes the corresponding
// magic-byte branch of the factory live; a build that omits the import
// degrades to "format unrecognized" for that branch.
package decoder
