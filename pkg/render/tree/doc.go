// Package tree renders an element hierarchy as a Graphviz diagram.
//
// The diagram shows every element under a root with its tag, id and
// classes. Elements generated by an effect instance are told apart by
// role when [Options.Prefix] is set: the container and layer stack are
// filled, overlays are dashed and layers carry their current transform in
// detailed mode.
//
//	dot := tree.ToDOT(card, tree.Options{Prefix: "lsr", Detailed: true})
//	svg, err := tree.RenderSVG(dot)
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG], which require
// librsvg (rsvg-convert).
package tree
