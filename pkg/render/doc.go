// Package render provides output rendering for effect documents.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg, err := tree.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// Both return an UNSUPPORTED error when rsvg-convert is not installed;
// [Available] checks up front.
//
// # Layer Trees
//
// The [tree] subpackage draws the element hierarchy an effect instance
// builds under each target as a Graphviz diagram:
//
//	dot := tree.ToDOT(card, tree.Options{Prefix: "lsr"})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// [tree]: github.com/matzehuels/lsr/pkg/render/tree
package render
