// Package compose draws one timeline frame.
//
// The renderer turns the resolver's output into an ordered list of immutable
// draw commands (geometry, filters, clip shape, source rectangle) and hands
// the list to a backend for rasterization. The split keeps the compositing
// algorithm independent of any drawing API; GGBackend is the software
// implementation.
//
// Ordering rules: background items paint first, then ascending layer index,
// regardless of track order. Filters apply in a fixed sequence (clip
// adjustments, named preset, transition riders, animation riders) because
// blur and contrast do not commute. Transforms compose as translate, scale,
// skew, rotate, flip about the item center.
//
// Text effects are explicit multi-pass fills rather than filter stages: the
// raster API has no multi-layer text primitive, so shadows, outlines, glows,
// and echoes are built from offset refills of the string.
package compose
