package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/effect"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/observability"
	"github.com/matzehuels/lsr/pkg/scene"
)

// replayOpts holds the command-line flags for the replay command.
type replayOpts struct {
	format string // text or json
	html   bool   // print the final document
	effect effectOpts
}

// replayStep is the observable state of a target after one event.
type replayStep struct {
	Index     int      `json:"index"`
	Event     string   `json:"event"`
	Target    string   `json:"target"`
	Hovered   bool     `json:"hovered"`
	Prevented bool     `json:"prevented,omitempty"`
	Container string   `json:"container,omitempty"`
	Shine     string   `json:"shine,omitempty"`
	Layers    []string `json:"layers,omitempty"`
}

// replayCommand creates the replay command, which dispatches a scene's
// scripted events and reports the styles after each one.
func (c *CLI) replayCommand() *cobra.Command {
	opts := replayOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "replay [scene.toml]",
		Short: "Replay a scene's input events through the effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text' or 'json')", opts.format)
			}
			ss, err := c.setupScene(cmd, args[0], &opts.effect)
			if err != nil {
				return err
			}
			return runReplay(cmd, ss, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), json")
	cmd.Flags().BoolVar(&opts.html, "html", false, "print the document after the last event")
	opts.effect.register(cmd.Flags())

	return cmd
}

func runReplay(cmd *cobra.Command, ss *sceneSetup, opts *replayOpts) error {
	logger := loggerFromContext(cmd.Context())
	w := cmd.OutOrStdout()

	frames := &frameCounter{}
	prev := observability.Input()
	observability.SetInputHooks(frames)
	defer observability.SetInputHooks(prev)

	var enc *json.Encoder
	if opts.format == formatJSON {
		enc = json.NewEncoder(w)
	}
	var writeErr error
	err := ss.scene.Replay(ss.doc, func(st scene.Step) {
		step := observeStep(ss.inst, st)
		if enc != nil {
			if err := enc.Encode(step); err != nil && writeErr == nil {
				writeErr = err
			}
			return
		}
		writeStep(w, step)
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	if opts.html {
		fmt.Fprintln(w, ss.doc.HTML())
	}
	ss.inst.Destroy()
	logger.Infof("Replayed %d events, %d frames", len(ss.scene.Events), frames.n)
	return nil
}

func observeStep(inst *effect.Instance, st scene.Step) replayStep {
	step := replayStep{
		Index:     st.Index,
		Event:     st.Event.String(),
		Target:    st.Event.Target,
		Prevented: st.Fired.DefaultPrevented(),
	}
	t, ok := inst.Target(st.Event.Target)
	if !ok {
		return step
	}
	step.Hovered = t.Hovered()
	step.Container = t.Container().Style().Get("transform")
	if t.Shine() != nil {
		step.Shine = t.Shine().Style().CSSText()
	}
	for _, l := range t.Layers() {
		step.Layers = append(step.Layers, l.Style().Get("transform"))
	}
	return step
}

func writeStep(w io.Writer, s replayStep) {
	state := StyleDim.Render("idle")
	if s.Hovered {
		state = StyleSuccess.Render("over")
	}
	fmt.Fprintf(w, "%s %s %s\n", StyleDim.Render(fmt.Sprintf("%3d", s.Index)), StyleHighlight.Render(s.Event), state)
	if s.Prevented {
		fmt.Fprintln(w, "    "+StyleWarning.Render("scroll prevented"))
	}
	if s.Container != "" {
		fmt.Fprintln(w, "    "+keyValue("container", s.Container))
	}
	if s.Shine != "" {
		fmt.Fprintln(w, "    "+keyValue("shine", s.Shine))
	}
	for i, l := range s.Layers {
		if l != "" {
			fmt.Fprintln(w, "    "+keyValue(fmt.Sprintf("layer %d", i), l))
		}
	}
}

// frameCounter counts applied frames during a replay.
type frameCounter struct {
	observability.NoopInputHooks
	n int
}

func (f *frameCounter) OnFrame(string, int, time.Duration) { f.n++ }
