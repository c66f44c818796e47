package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/dom/memdom"
	"github.com/matzehuels/lsr/pkg/effect"
	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
)

const (
	previewCols = 48
	previewRows = 14

	// previewHeader is the number of lines above the card border.
	previewHeader = 3
)

var (
	previewCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	previewActiveStyle = previewCardStyle.BorderForeground(colorCyan)
	previewLayerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	previewCursorStyle = lipgloss.NewStyle().Foreground(colorGreen)
	previewShadeStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
	previewShadeRunes = []string{"·", "░", "▒", "▓"}
)

// previewCommand creates the preview command, an interactive terminal view
// of one target driven by mouse motion and terminal focus.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		target string
		opts   effectOpts
	)

	cmd := &cobra.Command{
		Use:   "preview [scene.toml]",
		Short: "Preview a target interactively in the terminal",
		Long: `Preview a target interactively in the terminal.

Moving the mouse over the card drives pointer events through the effect:
entering the card activates it, motion recomputes the frame and leaving
resets it. Terminal focus changes are delivered as focus and blur. The
arrow keys move a virtual pointer; f and b send focus and blur.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := c.setupScene(cmd, args[0], &opts)
			if err != nil {
				return err
			}
			defer ss.inst.Destroy()

			m, err := newPreviewModel(ss.doc, ss.inst, target)
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(previewModel); ok {
				printInfo(cmd.OutOrStdout(), "Dispatched %d events to #%s", fm.events, fm.target.ID())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "id of the target to preview (default: first target)")
	opts.register(cmd.Flags())

	return cmd
}

// =============================================================================
// previewModel - Interactive effect preview
// =============================================================================

type previewModel struct {
	doc    *memdom.Document
	inst   *effect.Instance
	target *effect.Target
	el     *memdom.Element

	cols, rows int

	// pointer cell relative to the card content; valid while inside
	cx, cy int
	inside bool

	events int
}

func newPreviewModel(doc *memdom.Document, inst *effect.Instance, id string) (previewModel, error) {
	targets := inst.Targets()
	if len(targets) == 0 {
		return previewModel{}, errors.New(errors.ErrCodeNotFound, "scene has no targets with layers")
	}
	t := targets[0]
	if id != "" {
		var ok bool
		if t, ok = inst.Target(id); !ok {
			return previewModel{}, errors.New(errors.ErrCodeNotFound, "no target with id %q", id)
		}
	}
	el, ok := doc.Lookup(t.ID())
	if !ok {
		return previewModel{}, errors.New(errors.ErrCodeNotFound, "target %q is not attached", t.ID())
	}
	return previewModel{doc: doc, inst: inst, target: t, el: el, cols: previewCols, rows: previewRows}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.leave()
		case "up", "k":
			m.step(0, -1)
		case "down", "j":
			m.step(0, 1)
		case "left", "h":
			m.step(-1, 0)
		case "right", "l":
			m.step(1, 0)
		case "f", "tab":
			m.dispatch(dom.NewEvent(dom.EventFocus))
		case "b":
			m.dispatch(dom.NewEvent(dom.EventBlur))
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return m, nil
		}
		cx, cy := msg.X-1, msg.Y-previewHeader-1
		if cx >= 0 && cx < m.cols && cy >= 0 && cy < m.rows {
			m.moveTo(cx, cy)
		} else {
			m.leave()
		}
	case tea.FocusMsg:
		m.dispatch(dom.NewEvent(dom.EventFocus))
	case tea.BlurMsg:
		m.dispatch(dom.NewEvent(dom.EventBlur))
	}
	return m, nil
}

// step moves the virtual pointer, entering at the centre when outside.
func (m *previewModel) step(dx, dy int) {
	if !m.inside {
		m.moveTo(m.cols/2, m.rows/2)
		return
	}
	m.moveTo(clamp(m.cx+dx, 0, m.cols-1), clamp(m.cy+dy, 0, m.rows-1))
}

func (m *previewModel) moveTo(cx, cy int) {
	p := m.pagePoint(cx, cy)
	touch := m.inst.Mode() == effect.ModeTouch
	if !m.inside {
		if touch {
			m.dispatch(dom.NewTouchEvent(dom.EventTouchStart, p))
		} else {
			m.dispatch(dom.NewMouseEvent(dom.EventMouseEnter, p.PageX, p.PageY))
		}
	}
	m.cx, m.cy, m.inside = cx, cy, true
	if touch {
		m.dispatch(dom.NewTouchEvent(dom.EventTouchMove, p))
	} else {
		m.dispatch(dom.NewMouseEvent(dom.EventMouseMove, p.PageX, p.PageY))
	}
}

func (m *previewModel) leave() {
	if !m.inside {
		return
	}
	m.inside = false
	if m.inst.Mode() == effect.ModeTouch {
		m.dispatch(dom.NewTouchEvent(dom.EventTouchEnd))
		return
	}
	m.dispatch(dom.NewEvent(dom.EventMouseLeave))
}

func (m *previewModel) dispatch(ev *dom.Event) {
	m.el.Dispatch(ev)
	m.events++
}

// pagePoint maps a card cell to the page position of its centre.
func (m previewModel) pagePoint(cx, cy int) engine.Pointer {
	r := m.doc.BoundingRect(m.el)
	s := m.doc.ScrollOffsets()
	return engine.Pointer{
		PageX: r.Left + s.Left + (float64(cx)+0.5)/float64(m.cols)*r.Width,
		PageY: r.Top + s.Top + (float64(cy)+0.5)/float64(m.rows)*r.Height,
	}
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Preview #" + m.target.ID()))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s mode  mouse/←↑↓→ move  f focus  b blur  esc leave  q quit", m.inst.Mode())))
	b.WriteString("\n\n")

	card := previewCardStyle
	if m.target.Hovered() {
		card = previewActiveStyle
	}
	b.WriteString(card.Render(m.grid()))
	b.WriteString("\n")
	b.WriteString(m.status())
	return b.String()
}

// grid draws the card: shading follows the sheen gradient, digits mark the
// layer positions and the cursor cell is highlighted.
func (m previewModel) grid() string {
	f := m.target.LastFrame()
	r := m.doc.BoundingRect(m.el)

	marks := map[[2]int]string{}
	if f != nil && r.Width != 0 && r.Height != 0 {
		for i := len(f.Layers) - 1; i >= 0; i-- {
			x := m.cols/2 + int(math.Round(f.Layers[i].X/r.Width*float64(m.cols)))
			y := m.rows/2 + int(math.Round(f.Layers[i].Y/r.Height*float64(m.rows)))
			marks[[2]int{clamp(x, 0, m.cols-1), clamp(y, 0, m.rows-1)}] = fmt.Sprintf("%d", i%10)
		}
	}

	var b strings.Builder
	for y := 0; y < m.rows; y++ {
		for x := 0; x < m.cols; x++ {
			switch mark, ok := marks[[2]int{x, y}]; {
			case m.inside && x == m.cx && y == m.cy:
				b.WriteString(previewCursorStyle.Render("◉"))
			case ok:
				b.WriteString(previewLayerStyle.Render(mark))
			default:
				level := shade(f, x, y, m.cols, m.rows)
				b.WriteString(previewShadeStyles[level].Render(previewShadeRunes[level]))
			}
		}
		if y < m.rows-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// shade returns the sheen level of a cell. The gradient runs from the
// bright stop along the frame's angle and fades out at 80%.
func shade(f *engine.Frame, x, y, cols, rows int) int {
	if f == nil || f.Shine == nil {
		return 0
	}
	rad := f.Shine.AngleDeg * math.Pi / 180
	// CSS gradient angles point up at 0deg and turn clockwise.
	dx, dy := math.Sin(rad), -math.Cos(rad)
	u := (float64(x)+0.5)/float64(cols) - 0.5
	v := (float64(y)+0.5)/float64(rows) - 0.5
	t := (u*dx + v*dy) + 0.5
	intensity := f.Shine.Alpha * (1 - t/0.8)
	switch {
	case math.IsNaN(intensity) || intensity <= 0.05:
		return 0
	case intensity <= 0.15:
		return 1
	case intensity <= 0.3:
		return 2
	}
	return 3
}

func (m previewModel) status() string {
	f := m.target.LastFrame()
	if f == nil {
		return StyleDim.Render("at rest") + "\n"
	}
	num := engine.FormatNumber
	lines := []string{
		keyValue("rotation", num(f.Rotation.X)+"°, "+num(f.Rotation.Y)+"°"),
		keyValue("container", m.target.Container().Style().Get("transform")),
	}
	if f.Shine != nil {
		lines = append(lines, keyValue("shine", fmt.Sprintf("%s° α=%s", num(f.Shine.AngleDeg), num(f.Shine.Alpha))))
	}
	for i, l := range f.Layers {
		lines = append(lines, keyValue(fmt.Sprintf("layer %d", i), l.Translate()))
	}
	return strings.Join(lines, "\n") + "\n"
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
