// Package anim computes entrance and exit style deltas for clips.
//
// Style is a pure function of (spec, clip timing, current time). It resolves
// whether the enter or exit window is active, eases the windowed progress
// with a fixed cubic in-out curve, and dispatches to one of the preset
// functions. Every preset maps progress 0 to its off-stage pose and progress
// 1 to the identity resting state, so a clip looks normal the instant its
// animation completes. Presets that scale from nothing are floored at a small
// epsilon instead of zero to avoid a degenerate draw.
package anim
