package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/lsr/pkg/config"
	"github.com/matzehuels/lsr/pkg/scene"
)

// effectOpts holds the command-line overrides of the effect configuration.
// Only flags the user actually set take part in the merge.
type effectOpts struct {
	layerNodeName string
	parallax      float64
	debug         bool
	prefix        string
	node          string
	shine         bool
	scale         float64
	shadow        bool
	rotationX     float64
	rotationY     float64
}

// register adds the effect flags to fs with the built-in defaults shown in
// the help text.
func (o *effectOpts) register(fs *pflag.FlagSet) {
	d := config.Defaults()
	fs.StringVar(&o.layerNodeName, "layer-node", d.LayerNodeName, "tag of direct children treated as layers")
	fs.Float64Var(&o.parallax, "parallax", d.Parallax, "layer shift factor")
	fs.BoolVar(&o.debug, "debug", d.Debug, "log diagnostics for targets without layers")
	fs.StringVar(&o.prefix, "prefix", d.Prefix, "target class and generated class prefix")
	fs.StringVar(&o.node, "node", d.Node, "root selector (#id, .class or tag; empty for body)")
	fs.BoolVar(&o.shine, "shine", d.Shine, "create the shine overlay")
	fs.Float64Var(&o.scale, "scale", d.Scale, "scale applied while hovered")
	fs.BoolVar(&o.shadow, "shadow", d.Shadow, "create the shadow overlay")
	fs.Float64Var(&o.rotationX, "rotation-x", d.Rotation.X, "rotation strength around the X axis")
	fs.Float64Var(&o.rotationY, "rotation-y", d.Rotation.Y, "rotation strength around the Y axis")
}

// partial returns the overrides for the flags set on fs.
func (o *effectOpts) partial(fs *pflag.FlagSet) config.Partial {
	var p config.Partial
	if fs.Changed("layer-node") {
		p.LayerNodeName = config.String(o.layerNodeName)
	}
	if fs.Changed("parallax") {
		p.Parallax = config.Float(o.parallax)
	}
	if fs.Changed("debug") {
		p.Debug = config.Bool(o.debug)
	}
	if fs.Changed("prefix") {
		p.Prefix = config.String(o.prefix)
	}
	if fs.Changed("node") {
		p.Node = config.String(o.node)
	}
	if fs.Changed("shine") {
		p.Shine = config.Bool(o.shine)
	}
	if fs.Changed("scale") {
		p.Scale = config.Float(o.scale)
	}
	if fs.Changed("shadow") {
		p.Shadow = config.Bool(o.shadow)
	}
	if fs.Changed("rotation-x") || fs.Changed("rotation-y") {
		p.Rotation = &config.PartialRotation{}
		if fs.Changed("rotation-x") {
			p.Rotation.X = config.Float(o.rotationX)
		}
		if fs.Changed("rotation-y") {
			p.Rotation.Y = config.Float(o.rotationY)
		}
	}
	return p
}

// resolveConfig merges, from lowest to highest precedence, the defaults,
// the --config file, the scene's effect table and the command-line flags.
func (c *CLI) resolveConfig(cmd *cobra.Command, o *effectOpts, s *scene.Scene) (config.Config, error) {
	var p config.Partial
	if c.configPath != "" {
		file, err := config.Load(c.configPath)
		if err != nil {
			return config.Config{}, err
		}
		p = file
	}
	if s != nil {
		p = p.Overlay(s.Effect)
	}
	p = p.Overlay(o.partial(cmd.Flags()))

	cfg := config.Merge(config.Defaults(), p)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// loadScene reads the scene at path and reports it to the logger.
func loadScene(cmd *cobra.Command, path string) (*scene.Scene, error) {
	logger := loggerFromContext(cmd.Context())
	s, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Loaded scene %s: %d elements, %d events", path, len(s.Elements), len(s.Events))
	return s, nil
}
