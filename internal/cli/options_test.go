package cli

import (
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lsr/pkg/config"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/scene"
)

func newOptsCommand(o *effectOpts) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	cmd.SetOut(io.Discard)
	o.register(cmd.Flags())
	return cmd
}

func TestEffectOptsPartialOnlyChanged(t *testing.T) {
	var o effectOpts
	cmd := newOptsCommand(&o)
	if err := cmd.ParseFlags([]string{"--scale", "1.2", "--rotation-x", "0.2", "--shine=false"}); err != nil {
		t.Fatal(err)
	}

	p := o.partial(cmd.Flags())
	if p.Scale == nil || *p.Scale != 1.2 {
		t.Errorf("Scale = %v", p.Scale)
	}
	if p.Shine == nil || *p.Shine {
		t.Errorf("Shine = %v", p.Shine)
	}
	if p.Rotation == nil || p.Rotation.X == nil || *p.Rotation.X != 0.2 || p.Rotation.Y != nil {
		t.Errorf("Rotation = %+v", p.Rotation)
	}
	if p.Prefix != nil || p.Parallax != nil || p.Node != nil || p.Debug != nil || p.Shadow != nil || p.LayerNodeName != nil {
		t.Errorf("unset flags leaked into partial: %+v", p)
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.configPath = writeTemp(t, "lsr.toml", "prefix = \"file\"\nparallax = 0.9\nscale = 1.5\n[rotation]\ny = 0.3\n")

	s := &scene.Scene{Effect: config.Partial{Parallax: config.Float(0.7), Scale: config.Float(1.4)}}

	var o effectOpts
	cmd := newOptsCommand(&o)
	if err := cmd.ParseFlags([]string{"--scale", "1.1"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := c.resolveConfig(cmd, &o, s)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prefix != "file" {
		t.Errorf("Prefix = %q, want file value", cfg.Prefix)
	}
	if cfg.Parallax != 0.7 {
		t.Errorf("Parallax = %v, want scene value", cfg.Parallax)
	}
	if cfg.Scale != 1.1 {
		t.Errorf("Scale = %v, want flag value", cfg.Scale)
	}
	if cfg.Rotation.X != config.DefaultRotationX || cfg.Rotation.Y != 0.3 {
		t.Errorf("Rotation = %+v", cfg.Rotation)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.configPath = "/nonexistent/lsr.toml"
	var o effectOpts
	cmd := newOptsCommand(&o)

	if _, err := c.resolveConfig(cmd, &o, nil); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v", err)
	}

	c.configPath = ""
	if err := cmd.ParseFlags([]string{"--prefix", "a b"}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.resolveConfig(cmd, &o, nil); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid prefix error = %v", err)
	}
}
