// Package engine computes the geometry of the layered parallax effect.
//
// # Overview
//
// Given a pointer position in document coordinates and the bounding box of an
// effect target, [ComputeFrame] derives everything needed to draw one instant
// of the effect:
//
//   - A 3D rotation of the whole layer stack (degrees around X and Y)
//   - A 2D translation per layer, growing with layer depth
//   - The angle, opacity and offset of the light sheen overlay
//
// The package has no knowledge of any rendering surface. Frames are plain
// values; the CSS helpers in this package ([Frame.ContainerTransform],
// [Shine.Background], [Vec2.Translate]) format them as style strings for an
// adapter to write.
//
// # Geometry
//
// The normalized cursor position is measured from a 0.52 bias point rather
// than the mathematical centre, so a pointer placed exactly at the centre of
// a target yields offsets of 0.02 instead of 0:
//
//	f := engine.ComputeFrame(engine.CenterPointer(r, s), r, s, 3, params)
//	// f.Offset == engine.Vec2{X: 0.02, Y: 0.02}
//
// Per-layer translation scales with the square of the layer index, so the
// first layer never moves and deeper layers travel further.
//
// # Degenerate input
//
// Zero-width or zero-height rectangles are not guarded. The resulting
// frames carry NaN or ±Inf values which format as "NaN" and "Infinity" in
// CSS strings, the same values a browser would receive.
package engine
