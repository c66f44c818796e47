package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/render"
)

// Options configures hierarchy rendering.
type Options struct {
	// Prefix is the effect class prefix used to recognise generated
	// elements. Empty disables role styling.
	Prefix string

	// Detailed adds inline styles to node labels.
	Detailed bool
}

// ToDOT converts the subtree under root to Graphviz DOT format. Nodes are
// named n0, n1, ... in document order with n0 being root.
func ToDOT(root dom.Element, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	next := 0
	var walk func(el dom.Element)
	walk = func(el dom.Element) {
		name := "n" + strconv.Itoa(next)
		next++
		attrs := append([]string{fmt.Sprintf("label=%q", fmtLabel(el, opts.Detailed))}, roleAttrs(el, opts.Prefix)...)
		fmt.Fprintf(&buf, "  %s [%s];\n", name, strings.Join(attrs, ", "))
		for _, c := range el.Children() {
			edges = append(edges, fmt.Sprintf("  %s -> n%d;\n", name, next))
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(el dom.Element, detailed bool) string {
	label := strings.ToLower(el.TagName())
	if id := el.ID(); id != "" {
		label += "#" + id
	}
	if class := el.ClassName(); class != "" {
		label += "." + strings.ReplaceAll(class, " ", ".")
	}
	if detailed {
		if css := el.Style().CSSText(); css != "" {
			label += "\n" + strings.ReplaceAll(css, "; ", ";\n")
		}
	}
	return label
}

func roleAttrs(el dom.Element, prefix string) []string {
	if prefix == "" {
		return nil
	}
	switch {
	case el.HasClass(prefix + "-container"):
		return []string{"fillcolor=lightblue"}
	case el.HasClass(prefix + "-layers"):
		return []string{"fillcolor=lightyellow"}
	case el.HasClass(prefix + "-shine"), el.HasClass(prefix + "-shadow"):
		return []string{"style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black"}
	case el.HasClass(prefix):
		return []string{"penwidth=2"}
	}
	return nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
