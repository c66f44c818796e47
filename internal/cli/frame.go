package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatCSS  = "css"
)

// frameOpts holds the command-line flags for the frame command.
type frameOpts struct {
	x, y       float64 // pointer page position
	center     bool    // use the target centre instead of x/y
	rect       string  // left,top,width,height
	scrollTop  float64
	scrollLeft float64
	layers     int
	hovered    bool // include the hover scale in the container transform
	format     string
	effect     effectOpts
}

// frameCommand creates the frame command, which evaluates the transform
// engine for one pointer position.
func (c *CLI) frameCommand() *cobra.Command {
	opts := frameOpts{rect: "0,0,500,300", layers: 2, format: formatText}

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Compute the effect frame for a pointer position",
		Long: `Compute the rotation, sheen and layer translations the effect applies for a
pointer position over a target rectangle.

Example:
  lsr frame --rect 200,100,400,200 --x 450 --y 300 --layers 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rect, err := parseRect(opts.rect)
			if err != nil {
				return err
			}
			if err := validateFrameFormat(opts.format); err != nil {
				return err
			}
			cfg, err := c.resolveConfig(cmd, &opts.effect, nil)
			if err != nil {
				return err
			}

			scroll := engine.Scroll{Top: opts.scrollTop, Left: opts.scrollLeft}
			p := engine.Pointer{PageX: opts.x, PageY: opts.y}
			if opts.center {
				p = engine.CenterPointer(rect, scroll)
			}
			f := engine.ComputeFrame(p, rect, scroll, opts.layers, cfg.Params())
			loggerFromContext(cmd.Context()).Debugf("Computed frame for (%v, %v) over %+v", p.PageX, p.PageY, rect)

			return writeFrame(cmd.OutOrStdout(), f, rect, opts.hovered, opts.format)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", 0, "pointer page X")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "pointer page Y")
	cmd.Flags().BoolVar(&opts.center, "center", false, "use the centre of the rectangle as pointer")
	cmd.Flags().StringVar(&opts.rect, "rect", opts.rect, "target rectangle: left,top,width,height")
	cmd.Flags().Float64Var(&opts.scrollTop, "scroll-top", 0, "document scroll top")
	cmd.Flags().Float64Var(&opts.scrollLeft, "scroll-left", 0, "document scroll left")
	cmd.Flags().IntVarP(&opts.layers, "layers", "n", opts.layers, "number of layers")
	cmd.Flags().BoolVar(&opts.hovered, "hovered", true, "include the hover scale")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json, css")
	opts.effect.register(cmd.Flags())

	return cmd
}

// parseRect parses "left,top,width,height".
func parseRect(s string) (engine.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return engine.Rect{}, errors.New(errors.ErrCodeInvalidInput, "invalid rect %q (want left,top,width,height)", s)
	}
	var v [4]float64
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return engine.Rect{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid rect %q", s)
		}
		v[i] = f
	}
	return engine.Rect{Left: v[0], Top: v[1], Width: v[2], Height: v[3]}, nil
}

func validateFrameFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatCSS:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text', 'json' or 'css')", f)
}

// frameCSS is the set of inline styles a frame produces.
type frameCSS struct {
	Perspective     string   `json:"perspective"`
	Container       string   `json:"container"`
	ShineBackground string   `json:"shine_background,omitempty"`
	ShineTransform  string   `json:"shine_transform,omitempty"`
	Layers          []string `json:"layers"`
}

func styles(f engine.Frame, rect engine.Rect, hovered bool) frameCSS {
	out := frameCSS{
		Perspective: engine.Perspective(rect.Width),
		Container:   f.ContainerTransform(hovered),
		Layers:      make([]string, len(f.Layers)),
	}
	if f.Shine != nil {
		out.ShineBackground = f.Shine.Background()
		out.ShineTransform = f.Shine.Transform()
	}
	for i, l := range f.Layers {
		out.Layers[i] = l.Translate()
	}
	return out
}

func writeFrame(w io.Writer, f engine.Frame, rect engine.Rect, hovered bool, format string) error {
	css := styles(f, rect, hovered)
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Frame engine.Frame `json:"frame"`
			CSS   frameCSS     `json:"css"`
		}{f, css})
	case formatCSS:
		fmt.Fprintf(w, ".lsr { transform: %s; }\n", css.Perspective)
		fmt.Fprintf(w, ".lsr-container { transform: %s; }\n", css.Container)
		if f.Shine != nil {
			fmt.Fprintf(w, ".lsr-shine { background: %s; transform: %s; }\n", css.ShineBackground, css.ShineTransform)
		}
		for i, l := range css.Layers {
			fmt.Fprintf(w, ".lsr-layers > :nth-child(%d) { transform: %s; }\n", i+1, l)
		}
		return nil
	}

	num := engine.FormatNumber
	fmt.Fprintln(w, StyleTitle.Render("Frame"))
	fmt.Fprintln(w, keyValue("offset", num(f.Offset.X)+", "+num(f.Offset.Y)))
	fmt.Fprintln(w, keyValue("delta", num(f.Delta.X)+", "+num(f.Delta.Y)))
	fmt.Fprintln(w, keyValue("rotation", num(f.Rotation.X)+"°, "+num(f.Rotation.Y)+"°"))
	fmt.Fprintln(w, keyValue("scale", num(f.Scale)))
	if f.Shine != nil {
		fmt.Fprintln(w, keyValue("shine", fmt.Sprintf("%s° α=%s", num(f.Shine.AngleDeg), num(f.Shine.Alpha))))
	}
	fmt.Fprintln(w, keyValue("container", css.Container))
	if len(f.Layers) > 0 {
		fmt.Fprintln(w, layerTable(f.Layers))
	}
	return nil
}

func layerTable(layers []engine.Vec2) string {
	rows := make([][]string, len(layers))
	for i, l := range layers {
		rows[i] = []string{strconv.Itoa(i), engine.FormatNumber(l.X), engine.FormatNumber(l.Y)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Layer", "X (px)", "Y (px)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
		}).
		Render()
}
