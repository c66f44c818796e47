package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/cache"
	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/render/tree"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
)

// treeCacheTTL bounds how long rendered diagrams are reused.
const treeCacheTTL = 7 * 24 * time.Hour

// validTreeFormats is the set of supported tree output formats.
var validTreeFormats = map[string]bool{formatDOT: true, formatSVG: true, formatPNG: true, formatPDF: true}

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	output   string
	format   string
	target   string  // element id to draw; the whole body when empty
	detailed bool    // include inline styles in labels
	scale    float64 // PNG scale factor
	noCache  bool
	effect   effectOpts
}

// treeCommand creates the tree command, which draws the element hierarchy
// after setup as a Graphviz diagram.
func (c *CLI) treeCommand() *cobra.Command {
	opts := treeOpts{scale: 2}

	cmd := &cobra.Command{
		Use:   "tree [scene.toml]",
		Short: "Render the layer hierarchy of a scene as a diagram",
		Long: `Render the element hierarchy the effect builds for a scene.

The output format follows --format, or the extension of --output, and
defaults to DOT on stdout. PNG and PDF require librsvg (rsvg-convert).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := treeFormat(opts.format, opts.output)
			if err != nil {
				return err
			}
			ss, err := c.setupScene(cmd, args[0], &opts.effect)
			if err != nil {
				return err
			}
			defer ss.inst.Destroy()

			var root dom.Element = ss.doc.Body()
			if opts.target != "" {
				el, ok := ss.doc.Lookup(opts.target)
				if !ok {
					return errors.New(errors.ErrCodeNotFound, "no element with id %q", opts.target)
				}
				root = el
			}

			dot := tree.ToDOT(root, tree.Options{Prefix: ss.inst.Config().Prefix, Detailed: opts.detailed})
			store := newCache(opts.noCache)
			defer store.Close()
			data, err := renderTree(cmd.Context(), cmd.ErrOrStderr(), store, dot, format, opts.scale)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), opts.output, data); err != nil {
				return err
			}
			if opts.output != "" {
				printSuccess(cmd.OutOrStdout(), "Rendered %s", format)
				printFile(cmd.OutOrStdout(), opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: dot (default), svg, png, pdf")
	cmd.Flags().StringVar(&opts.target, "target", "", "id of the element to draw (default: whole document)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include inline styles in node labels")
	cmd.Flags().Float64Var(&opts.scale, "png-scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "always re-render instead of reusing cached diagrams")
	opts.effect.register(cmd.Flags())

	return cmd
}

// treeFormat picks the output format from the flag or the output extension.
func treeFormat(format, output string) (string, error) {
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(output), ".")
	}
	if format == "" {
		format = formatDOT
	}
	if !validTreeFormats[format] {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'dot', 'svg', 'png' or 'pdf')", format)
	}
	return format, nil
}

// renderTree renders dot in format, consulting c first. Progress is drawn
// on w.
func renderTree(ctx context.Context, w io.Writer, c cache.Cache, dot, format string, scale float64) ([]byte, error) {
	if format == formatDOT {
		return []byte(dot), nil
	}
	logger := loggerFromContext(ctx)

	key := cache.Key("tree", format, scale, dot)
	if data, ok, err := c.Get(ctx, key); err != nil {
		logger.Warnf("Cache read failed: %v", err)
	} else if ok {
		logger.Debugf("Using cached %s (%d bytes)", format, len(data))
		return data, nil
	}

	sp := newSpinner(ctx, w, fmt.Sprintf("Rendering %s...", format))
	sp.Start()
	data, err := renderFormat(ctx, dot, format, scale)
	sp.Stop()
	if err != nil {
		return nil, err
	}

	if err := c.Set(ctx, key, data, treeCacheTTL); err != nil {
		logger.Warnf("Cache write failed: %v", err)
	}
	return data, nil
}

func renderFormat(ctx context.Context, dot, format string, scale float64) ([]byte, error) {
	switch format {
	case formatPNG:
		return tree.RenderPNG(ctx, dot, scale)
	case formatPDF:
		return tree.RenderPDF(ctx, dot)
	}
	return tree.RenderSVG(ctx, dot)
}
