// Package style defines the sparse style delta produced by the animation and
// transition engines and consumed by the compositor.
//
// A Delta describes how a single clip's appearance deviates from its resting
// state at one instant: opacity and geometry multipliers, filter riders, an
// optional clip shape, and an optional blend mode. Deltas are pure values;
// engines return them and the compositor folds them into draw commands.
// Translate values are percentages of the canvas, clip shape coordinates are
// percentages of the clip rectangle; both are resolved to pixels at draw time.
package style
