package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/dom/memdom"
	"github.com/matzehuels/lsr/pkg/effect"
	"github.com/matzehuels/lsr/pkg/scene"
)

// setupOpts holds the command-line flags for the setup command.
type setupOpts struct {
	output string // HTML output path; stdout when empty
	effect effectOpts
}

// setupCommand creates the setup command, which builds a scene document
// and prints the markup the effect leaves behind.
func (c *CLI) setupCommand() *cobra.Command {
	var opts setupOpts

	cmd := &cobra.Command{
		Use:   "setup [scene.toml]",
		Short: "Set the effect up on a scene and print the rebuilt document",
		Long: `Set the effect up on a scene and print the rebuilt document.

Every element carrying the prefix class with at least one layer child is
rebuilt into the container, overlay and layer hierarchy. Targets without
layers are left as they are.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ss, err := c.setupScene(cmd, args[0], &opts.effect)
			if err != nil {
				return err
			}
			defer ss.inst.Destroy()

			if err := writeOutput(cmd.OutOrStdout(), opts.output, []byte(ss.doc.HTML()+"\n")); err != nil {
				return err
			}
			if opts.output != "" {
				printSetup(cmd.OutOrStdout(), ss.inst)
				printFile(cmd.OutOrStdout(), opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	opts.effect.register(cmd.Flags())

	return cmd
}

// sceneSetup is a scene with its document and the effect set up on it.
type sceneSetup struct {
	scene *scene.Scene
	doc   *memdom.Document
	inst  *effect.Instance
}

// setupScene loads the scene at path, builds its document and creates the
// effect instance with the resolved configuration.
func (c *CLI) setupScene(cmd *cobra.Command, path string, o *effectOpts) (*sceneSetup, error) {
	s, err := loadScene(cmd, path)
	if err != nil {
		return nil, err
	}
	cfg, err := c.resolveConfig(cmd, o, s)
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)
	doc := s.Build()
	inst, err := effect.New(doc, cfg, effect.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Set up %d targets in %s mode", len(inst.Targets()), inst.Mode()))
	return &sceneSetup{scene: s, doc: doc, inst: inst}, nil
}

func printSetup(w io.Writer, inst *effect.Instance) {
	targets := inst.Targets()
	if len(targets) == 0 {
		printWarning(w, "No targets with layers found")
		return
	}
	printSuccess(w, "%d targets in %s mode, %d listeners", len(targets), inst.Mode(), inst.Subscriptions())
	for _, t := range targets {
		overlays := ""
		if t.Shine() != nil {
			overlays += " shine"
		}
		if t.Shadow() != nil {
			overlays += " shadow"
		}
		printDetail(w, "#%s: %d layers%s", t.ID(), len(t.Layers()), overlays)
	}
}

// =============================================================================
// Output
// =============================================================================

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
