package effect

import (
	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/engine"
)

// hoverClass marks the container of an active target.
const hoverClass = "over"

// Element roles, suffixed to the configured prefix.
const (
	roleContainer = "container"
	roleShine     = "shine"
	roleShadow    = "shadow"
	roleLayers    = "layers"
)

// Target is one effect root and the layer hierarchy built under it.
type Target struct {
	id        string
	root      dom.Element
	container dom.Element
	shine     dom.Element // nil when shine is disabled
	shadow    dom.Element // nil when shadow is disabled
	layers    []dom.Element
	hovered   bool
	frame     *engine.Frame
}

// ID returns the target's element id.
func (t *Target) ID() string { return t.id }

// Root returns the target element.
func (t *Target) Root() dom.Element { return t.root }

// Container returns the generated container element.
func (t *Target) Container() dom.Element { return t.container }

// Shine returns the shine overlay, or nil when disabled.
func (t *Target) Shine() dom.Element { return t.shine }

// Shadow returns the shadow overlay, or nil when disabled.
func (t *Target) Shadow() dom.Element { return t.shadow }

// Layers returns the generated layer elements in depth order.
func (t *Target) Layers() []dom.Element { return t.layers }

// Hovered reports whether the target is active.
func (t *Target) Hovered() bool { return t.hovered }

// LastFrame returns the most recently applied frame, or nil when the target
// is at rest.
func (t *Target) LastFrame() *engine.Frame { return t.frame }

func (t *Target) enter() {
	t.hovered = true
	t.container.AddClass(hoverClass)
}

func (t *Target) exit() {
	t.hovered = false
	t.frame = nil
	t.container.RemoveClass(hoverClass)
	t.container.Style().Set("transform", "")
	if t.shine != nil {
		t.shine.Style().Clear()
	}
	for _, l := range t.layers {
		l.Style().Set("transform", "")
	}
}

func (t *Target) apply(f engine.Frame) {
	t.frame = &f
	t.container.Style().Set("transform", f.ContainerTransform(t.hovered))
	if t.shine != nil && f.Shine != nil {
		st := t.shine.Style()
		st.Set("background", f.Shine.Background())
		st.Set("transform", f.Shine.Transform())
	}
	for i, l := range t.layers {
		if i < len(f.Layers) {
			l.Style().Set("transform", f.Layers[i].Translate())
		}
	}
}
