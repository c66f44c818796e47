// Package config defines the effect configuration and its default-filling
// merge.
//
// A [Config] is fully populated and immutable once an effect instance is
// created. Callers usually start from a [Partial], where every key is
// optional, and merge it over [Defaults]:
//
//	cfg := config.Merge(config.Defaults(), config.Partial{
//	    Rotation: &config.PartialRotation{X: config.Float(0.1)},
//	})
//	// cfg.Rotation.Y == 0.05, the default, even though Rotation was given
//
// Partials decode from TOML with [Parse] and [Load]:
//
//	prefix = "card"
//	parallax = 0.8
//
//	[rotation]
//	x = 0.1
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLayerNodeName is the tag of direct children treated as layers.
	DefaultLayerNodeName = "DIV"

	// DefaultParallax is the default layer shift factor.
	DefaultParallax = 0.5

	// DefaultDebug enables diagnostics for targets without layers.
	DefaultDebug = true

	// DefaultPrefix is the class marking effect targets and prefixing
	// generated element classes.
	DefaultPrefix = "lsr"

	// DefaultShine enables the sheen overlay.
	DefaultShine = true

	// DefaultScale is the uniform scale applied while hovered.
	DefaultScale = 1.0

	// DefaultShadow enables the shadow overlay.
	DefaultShadow = true

	// DefaultRotationX is the default rotation strength around the X axis.
	DefaultRotationX = 0.05

	// DefaultRotationY is the default rotation strength around the Y axis.
	DefaultRotationY = 0.05
)

// =============================================================================
// Config
// =============================================================================

// Rotation holds the rotation strength per axis.
type Rotation struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Config is the complete effect configuration.
type Config struct {
	LayerNodeName string   `toml:"layer_node_name" json:"layer_node_name"`
	Parallax      float64  `toml:"parallax" json:"parallax"`
	Debug         bool     `toml:"debug" json:"debug"`
	Prefix        string   `toml:"prefix" json:"prefix"`
	Node          string   `toml:"node" json:"node"` // root selector; empty selects the document body
	Shine         bool     `toml:"shine" json:"shine"`
	Scale         float64  `toml:"scale" json:"scale"`
	Shadow        bool     `toml:"shadow" json:"shadow"`
	Rotation      Rotation `toml:"rotation" json:"rotation"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LayerNodeName: DefaultLayerNodeName,
		Parallax:      DefaultParallax,
		Debug:         DefaultDebug,
		Prefix:        DefaultPrefix,
		Shine:         DefaultShine,
		Scale:         DefaultScale,
		Shadow:        DefaultShadow,
		Rotation: Rotation{
			X: DefaultRotationX,
			Y: DefaultRotationY,
		},
	}
}

// Validate checks that the generated class names will be well formed.
func (c Config) Validate() error {
	if err := errors.ValidateClassName(c.Prefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid prefix")
	}
	if c.LayerNodeName != "" {
		if err := errors.ValidateTagName(c.LayerNodeName); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid layer node name")
		}
	}
	return nil
}

// Params returns the values the transform engine needs.
func (c Config) Params() engine.Params {
	return engine.Params{
		RotationX: c.Rotation.X,
		RotationY: c.Rotation.Y,
		Parallax:  c.Parallax,
		Scale:     c.Scale,
		Shine:     c.Shine,
	}
}

// ClassName returns the generated class for the given element role, e.g.
// "lsr-container".
func (c Config) ClassName(role string) string {
	return c.Prefix + "-" + role
}

// =============================================================================
// Partial - caller-supplied overrides
// =============================================================================

// PartialRotation holds optional per-axis rotation overrides.
type PartialRotation struct {
	X *float64 `toml:"x" json:"x,omitempty"`
	Y *float64 `toml:"y" json:"y,omitempty"`
}

// Partial is a configuration where every key is optional.
type Partial struct {
	LayerNodeName *string          `toml:"layer_node_name" json:"layer_node_name,omitempty"`
	Parallax      *float64         `toml:"parallax" json:"parallax,omitempty"`
	Debug         *bool            `toml:"debug" json:"debug,omitempty"`
	Prefix        *string          `toml:"prefix" json:"prefix,omitempty"`
	Node          *string          `toml:"node" json:"node,omitempty"`
	Shine         *bool            `toml:"shine" json:"shine,omitempty"`
	Scale         *float64         `toml:"scale" json:"scale,omitempty"`
	Shadow        *bool            `toml:"shadow" json:"shadow,omitempty"`
	Rotation      *PartialRotation `toml:"rotation" json:"rotation,omitempty"`
}

// Merge overlays p onto base. Each key present in p wins; rotation axes are
// merged individually so a partial rotation keeps the base value of the
// missing axis.
func Merge(base Config, p Partial) Config {
	out := base
	setString(&out.LayerNodeName, p.LayerNodeName)
	setFloat(&out.Parallax, p.Parallax)
	setBool(&out.Debug, p.Debug)
	setString(&out.Prefix, p.Prefix)
	setString(&out.Node, p.Node)
	setBool(&out.Shine, p.Shine)
	setFloat(&out.Scale, p.Scale)
	setBool(&out.Shadow, p.Shadow)
	if p.Rotation != nil {
		setFloat(&out.Rotation.X, p.Rotation.X)
		setFloat(&out.Rotation.Y, p.Rotation.Y)
	}
	return out
}

// Overlay merges q onto p, keeping p's keys that q leaves unset.
func (p Partial) Overlay(q Partial) Partial {
	out := p
	if q.LayerNodeName != nil {
		out.LayerNodeName = q.LayerNodeName
	}
	if q.Parallax != nil {
		out.Parallax = q.Parallax
	}
	if q.Debug != nil {
		out.Debug = q.Debug
	}
	if q.Prefix != nil {
		out.Prefix = q.Prefix
	}
	if q.Node != nil {
		out.Node = q.Node
	}
	if q.Shine != nil {
		out.Shine = q.Shine
	}
	if q.Scale != nil {
		out.Scale = q.Scale
	}
	if q.Shadow != nil {
		out.Shadow = q.Shadow
	}
	if q.Rotation != nil {
		r := PartialRotation{}
		if p.Rotation != nil {
			r = *p.Rotation
		}
		if q.Rotation.X != nil {
			r.X = q.Rotation.X
		}
		if q.Rotation.Y != nil {
			r.Y = q.Rotation.Y
		}
		out.Rotation = &r
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Float returns a pointer to v, for building partials.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for building partials.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for building partials.
func String(v string) *string { return &v }

// =============================================================================
// TOML
// =============================================================================

// Parse decodes a TOML document into a partial configuration.
func Parse(data []byte) (Partial, error) {
	var p Partial
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return Partial{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Partial{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return p, nil
}

// Load reads and decodes a TOML configuration file.
func Load(path string) (Partial, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Partial{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Partial{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(data)
}
