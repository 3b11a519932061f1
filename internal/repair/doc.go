// Package repair detects and fixes corrupted animation-timing accessors.
//
// The upstream legacy-model converter writes DBL_MAX sentinels into the
// declared bounds of every animation sampler input accessor, and usually
// into the keyframe timestamps themselves. The engine walks all samplers in
// document order, classifies each input accessor, and either recomputes the
// bounds from intact buffer data or regenerates the whole time sequence at a
// configured frame rate, patching the binary payload in place.
//
// Per-sampler problems (bad indices, unexpected encodings) are isolated and
// aggregated into the run report; a single malformed sampler never blocks
// repairing the rest.
package repair
