package effect

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lsr/pkg/config"
	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
	"github.com/matzehuels/lsr/pkg/observability"
)

// Mode is the input modality of an instance.
type Mode int

const (
	// ModePointer handles mouse and focus events.
	ModePointer Mode = iota
	// ModeTouch handles touch events.
	ModeTouch
)

func (m Mode) String() string {
	if m == ModeTouch {
		return "touch"
	}
	return "pointer"
}

// Events returns the event names subscribed in this mode, in registration
// order.
func (m Mode) Events() []string {
	if m == ModeTouch {
		return []string{dom.EventTouchMove, dom.EventTouchStart, dom.EventTouchEnd}
	}
	return []string{dom.EventMouseMove, dom.EventFocus, dom.EventMouseEnter, dom.EventMouseLeave, dom.EventBlur}
}

// ScrollGuard holds the prevent-scroll flag of touch interactions.
type ScrollGuard struct {
	prevent bool
}

// NewScrollGuard returns a cleared guard.
func NewScrollGuard() *ScrollGuard { return &ScrollGuard{} }

// Preventing reports whether touchmove should suppress scrolling.
func (g *ScrollGuard) Preventing() bool { return g.prevent }

func (g *ScrollGuard) set(v bool) { g.prevent = v }

// Instance is a set of targets sharing one configuration.
type Instance struct {
	adapter   dom.Adapter
	cfg       config.Config
	params    engine.Params
	mode      Mode
	guard     *ScrollGuard
	logger    *log.Logger
	targets   []*Target
	listeners map[string]map[string]*dom.Listener
}

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(i *Instance) {
		if l != nil {
			i.logger = l
		}
	}
}

// WithScrollGuard shares g between instances.
func WithScrollGuard(g *ScrollGuard) Option {
	return func(i *Instance) {
		if g != nil {
			i.guard = g
		}
	}
}

// New resolves cfg.Node through adapter, builds every qualifying target
// and subscribes to input events.
//
// An unresolvable root or an invalid configuration is returned as an
// error before any element is modified. Finding no qualifying target is not
// an error; the instance is simply empty.
func New(adapter dom.Adapter, cfg config.Config, opts ...Option) (*Instance, error) {
	inst := &Instance{
		adapter:   adapter,
		cfg:       cfg,
		params:    cfg.Params(),
		logger:    log.Default(),
		listeners: map[string]map[string]*dom.Listener{},
	}
	for _, opt := range opts {
		opt(inst)
	}
	if inst.guard == nil {
		inst.guard = NewScrollGuard()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root, err := adapter.ResolveRoot(cfg.Node)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRoot, err, "invalid root %q", cfg.Node)
	}
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidRoot, "invalid root %q", cfg.Node)
	}

	candidates := adapter.FindDescendants(root, cfg.Prefix)
	if root.HasClass(cfg.Prefix) {
		candidates = append(candidates, root)
	}
	if len(candidates) == 0 {
		inst.debug("No layers", "prefix", cfg.Prefix, "root", cfg.Node)
		observability.Lifecycle().OnTargetSkipped("no_targets")
		return inst, nil
	}

	inst.mode = ModePointer
	if adapter.TouchCapability() {
		inst.mode = ModeTouch
		inst.guard.set(false)
	}

	for _, el := range candidates {
		t := inst.build(el)
		if t == nil {
			continue
		}
		inst.targets = append(inst.targets, t)
		inst.subscribe(t)
		observability.Lifecycle().OnTargetSetup(t.id, len(t.layers), inst.mode.String())
		inst.logger.Debug("target ready", "id", t.id, "layers", len(t.layers), "mode", inst.mode)
	}
	return inst, nil
}

// build rebuilds el into the layer hierarchy. It returns nil and leaves el
// untouched when el has no layer children.
func (i *Instance) build(el dom.Element) *Target {
	var sources []dom.Element
	for _, c := range el.Children() {
		if strings.EqualFold(c.TagName(), i.cfg.LayerNodeName) {
			sources = append(sources, c)
		}
	}
	if len(sources) == 0 {
		i.debug("target has no layers", "id", el.ID(), "layer_node_name", i.cfg.LayerNodeName)
		observability.Lifecycle().OnTargetSkipped("no_layers")
		return nil
	}

	if el.ID() == "" {
		el.SetID(i.adapter.GenerateUniqueID())
	}

	// copy layer content before the children are dropped
	type layerSource struct{ class, html string }
	copies := make([]layerSource, len(sources))
	for n, s := range sources {
		copies[n] = layerSource{class: s.ClassName(), html: s.InnerHTML()}
	}
	el.RemoveChildren()

	t := &Target{id: el.ID(), root: el}
	t.container = i.newElement(roleContainer)
	if i.cfg.Shine {
		t.shine = i.newElement(roleShine)
		t.container.AppendChild(t.shine)
	}
	if i.cfg.Shadow {
		t.shadow = i.newElement(roleShadow)
		t.container.AppendChild(t.shadow)
	}

	stack := i.newElement(roleLayers)
	for _, s := range copies {
		layer := i.adapter.CreateElement("div")
		layer.SetClassName(s.class)
		layer.SetInnerHTML(s.html)
		stack.AppendChild(layer)
		t.layers = append(t.layers, layer)
	}
	t.container.AppendChild(stack)
	el.AppendChild(t.container)

	el.Style().Set("transform", engine.Perspective(i.adapter.BoundingRect(el).Width))
	return t
}

func (i *Instance) newElement(role string) dom.Element {
	el := i.adapter.CreateElement("div")
	el.SetClassName(i.cfg.ClassName(role))
	return el
}

// subscribe registers the mode's handlers on t and records them for
// teardown.
func (i *Instance) subscribe(t *Target) {
	var handlers map[string]dom.HandlerFunc
	if i.mode == ModeTouch {
		handlers = map[string]dom.HandlerFunc{
			dom.EventTouchMove: func(ev *dom.Event) {
				if i.guard.Preventing() {
					ev.PreventDefault()
				}
				i.move(t, ev)
			},
			dom.EventTouchStart: func(*dom.Event) {
				i.guard.set(true)
				i.enter(t)
			},
			dom.EventTouchEnd: func(*dom.Event) {
				i.guard.set(false)
				i.exit(t)
			},
		}
	} else {
		handlers = map[string]dom.HandlerFunc{
			dom.EventMouseMove: func(ev *dom.Event) { i.move(t, ev) },
			dom.EventFocus: func(*dom.Event) {
				i.enter(t)
				i.move(t, nil)
			},
			dom.EventMouseEnter: func(*dom.Event) { i.enter(t) },
			dom.EventMouseLeave: func(*dom.Event) { i.exit(t) },
			dom.EventBlur:       func(*dom.Event) { i.exit(t) },
		}
	}

	set := make(map[string]*dom.Listener, len(handlers))
	for _, name := range i.mode.Events() {
		l := dom.NewListener(handlers[name])
		t.root.AddEventListener(name, l)
		set[name] = l
	}
	i.listeners[t.id] = set
}

func (i *Instance) enter(t *Target) {
	t.enter()
	observability.Input().OnEnter(t.id)
}

func (i *Instance) exit(t *Target) {
	t.exit()
	observability.Input().OnExit(t.id)
}

// move computes and applies the frame for ev. Events without coordinates
// use the centre of the target.
func (i *Instance) move(t *Target, ev *dom.Event) {
	start := time.Now()
	f := i.Frame(t, i.pointer(t, ev))
	t.apply(f)
	observability.Input().OnFrame(t.id, len(t.layers), time.Since(start))
}

func (i *Instance) pointer(t *Target, ev *dom.Event) *engine.Pointer {
	if ev == nil {
		return nil
	}
	if i.mode == ModeTouch {
		if len(ev.Touches) == 0 {
			return nil
		}
		p := ev.Touches[0]
		return &p
	}
	return ev.Position
}

// Frame computes the frame of t for pointer p without applying it. A nil
// pointer selects the centre of the target.
func (i *Instance) Frame(t *Target, p *engine.Pointer) engine.Frame {
	rect := i.adapter.BoundingRect(t.root)
	scroll := i.adapter.ScrollOffsets()
	at := engine.CenterPointer(rect, scroll)
	if p != nil {
		at = *p
	}
	return engine.ComputeFrame(at, rect, scroll, len(t.layers), i.params)
}

// Destroy detaches every registered listener. Targets no longer present in
// the document are skipped. Calling Destroy again does nothing.
func (i *Instance) Destroy() {
	if len(i.listeners) == 0 {
		return
	}
	ids := make([]string, 0, len(i.listeners))
	for id := range i.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	detached := 0
	for _, id := range ids {
		el, ok := i.adapter.ElementByID(id)
		if !ok || el == nil {
			i.logger.Debug("target gone before teardown", "id", id)
			continue
		}
		for name, l := range i.listeners[id] {
			if el.RemoveEventListener(name, l) {
				detached++
			}
		}
	}
	observability.Lifecycle().OnTeardown(len(ids), detached)
	i.logger.Debug("teardown", "targets", len(ids), "listeners", detached)
	clear(i.listeners)
}

// Targets returns the built targets in discovery order.
func (i *Instance) Targets() []*Target { return slices.Clone(i.targets) }

// Target returns the target with the given id.
func (i *Instance) Target(id string) (*Target, bool) {
	for _, t := range i.targets {
		if t.id == id {
			return t, true
		}
	}
	return nil, false
}

// Mode returns the input modality chosen at setup.
func (i *Instance) Mode() Mode { return i.mode }

// Config returns the instance configuration.
func (i *Instance) Config() config.Config { return i.cfg }

// ScrollGuard returns the guard consulted by touchmove handlers.
func (i *Instance) ScrollGuard() *ScrollGuard { return i.guard }

// Subscriptions returns the number of listeners awaiting teardown.
func (i *Instance) Subscriptions() int {
	n := 0
	for _, set := range i.listeners {
		n += len(set)
	}
	return n
}

func (i *Instance) debug(msg string, keyvals ...any) {
	if i.cfg.Debug {
		i.logger.Debug(msg, keyvals...)
	}
}
