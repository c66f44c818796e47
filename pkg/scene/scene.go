package scene

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/lsr/pkg/config"
	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/dom/memdom"
	"github.com/matzehuels/lsr/pkg/engine"
	"github.com/matzehuels/lsr/pkg/errors"
)

const defaultTag = "div"

// Scene is a decoded scene file.
type Scene struct {
	Touch    bool           `toml:"touch"`
	Scroll   Scroll         `toml:"scroll"`
	Effect   config.Partial `toml:"effect"`
	Elements []Element      `toml:"element"`
	Events   []Event        `toml:"event"`
}

// Scroll is the document scroll position.
type Scroll struct {
	Top  float64 `toml:"top"`
	Left float64 `toml:"left"`
}

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Left   float64 `toml:"left"`
	Top    float64 `toml:"top"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Element describes one element and its children.
type Element struct {
	Tag      string    `toml:"tag,omitempty"`
	ID       string    `toml:"id,omitempty"`
	Class    string    `toml:"class,omitempty"`
	HTML     string    `toml:"html,omitempty"`
	Rect     *Rect     `toml:"rect,omitempty"`
	Children []Element `toml:"child,omitempty"`
}

// Event is one scripted input event.
type Event struct {
	Target string   `toml:"target"`
	Type   string   `toml:"type"`
	X      *float64 `toml:"x,omitempty"`
	Y      *float64 `toml:"y,omitempty"`
}

// Point returns the event position, or false when x or y is missing.
func (e Event) Point() (engine.Pointer, bool) {
	if e.X == nil || e.Y == nil {
		return engine.Pointer{}, false
	}
	return engine.Pointer{PageX: *e.X, PageY: *e.Y}, true
}

// DOMEvent converts e to the event delivered to listeners.
func (e Event) DOMEvent() *dom.Event {
	p, ok := e.Point()
	switch {
	case dom.IsTouch(e.Type) && ok:
		return dom.NewTouchEvent(e.Type, p)
	case dom.IsTouch(e.Type):
		return dom.NewTouchEvent(e.Type)
	case ok:
		return dom.NewMouseEvent(e.Type, p.PageX, p.PageY)
	}
	return dom.NewEvent(e.Type)
}

func (e Event) String() string {
	if p, ok := e.Point(); ok {
		return fmt.Sprintf("%s@%s(%s,%s)", e.Type, e.Target, engine.FormatNumber(p.PageX), engine.FormatNumber(p.PageY))
	}
	return e.Type + "@" + e.Target
}

// =============================================================================
// Decoding
// =============================================================================

// Read decodes a scene from r and validates it. Read does not close r.
func Read(r io.Reader) (*Scene, error) {
	var s Scene
	md, err := toml.NewDecoder(r).Decode(&s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidScene, "unknown scene key %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Parse decodes and validates a scene held in memory.
func Parse(data []byte) (*Scene, error) {
	return Read(strings.NewReader(string(data)))
}

// Load reads the scene file at path.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes s as TOML to w.
func Write(w io.Writer, s *Scene) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return nil
}

// Validate checks element tags, id uniqueness, event types and event
// targets.
func (s *Scene) Validate() error {
	ids := map[string]bool{}
	var walk func(path string, els []Element) error
	walk = func(path string, els []Element) error {
		for n, el := range els {
			at := fmt.Sprintf("%s[%d]", path, n)
			if el.Tag != "" {
				if err := errors.ValidateTagName(el.Tag); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidScene, err, "%s", at)
				}
			}
			if el.ID != "" {
				if ids[el.ID] {
					return errors.New(errors.ErrCodeInvalidScene, "%s: duplicate id %q", at, el.ID)
				}
				ids[el.ID] = true
			}
			if err := walk(at+".child", el.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk("element", s.Elements); err != nil {
		return err
	}

	for n, ev := range s.Events {
		if !dom.IsKnown(ev.Type) {
			return errors.New(errors.ErrCodeInvalidEvent, "event[%d]: unknown type %q", n, ev.Type)
		}
		if ev.Target == "" {
			return errors.New(errors.ErrCodeInvalidEvent, "event[%d]: missing target", n)
		}
		if !ids[ev.Target] {
			return errors.New(errors.ErrCodeNotFound, "event[%d]: no element with id %q", n, ev.Target)
		}
		if (ev.X == nil) != (ev.Y == nil) {
			return errors.New(errors.ErrCodeInvalidEvent, "event[%d]: x and y must be given together", n)
		}
	}
	return nil
}

// Config merges the scene's effect table over base.
func (s *Scene) Config(base config.Config) config.Config {
	return config.Merge(base, s.Effect)
}

// =============================================================================
// Document
// =============================================================================

// Build creates the scene's document. Extra options are applied after the
// scene's own touch and scroll settings.
func (s *Scene) Build(opts ...memdom.Option) *memdom.Document {
	base := []memdom.Option{
		memdom.WithTouch(s.Touch),
		memdom.WithScroll(engine.Scroll{Top: s.Scroll.Top, Left: s.Scroll.Left}),
	}
	doc := memdom.New(append(base, opts...)...)
	for _, el := range s.Elements {
		doc.Body().AppendChild(build(doc, el))
	}
	return doc
}

func build(doc *memdom.Document, def Element) *memdom.Element {
	tag := def.Tag
	if tag == "" {
		tag = defaultTag
	}
	el := doc.NewElement(tag)
	el.SetID(def.ID)
	el.SetClassName(def.Class)
	if def.Rect != nil {
		el.SetRect(engine.Rect{Left: def.Rect.Left, Top: def.Rect.Top, Width: def.Rect.Width, Height: def.Rect.Height})
	}
	if len(def.Children) == 0 {
		el.SetInnerHTML(def.HTML)
		return el
	}
	for _, c := range def.Children {
		el.AppendChild(build(doc, c))
	}
	return el
}

// =============================================================================
// Replay
// =============================================================================

// Step is one dispatched event.
type Step struct {
	Index  int
	Event  Event
	Target *memdom.Element
	Fired  *dom.Event
}

// Replay dispatches the scripted events on doc in order and calls observe,
// when non-nil, after each dispatch. A target missing from doc stops the
// replay with a NOT_FOUND error.
func (s *Scene) Replay(doc *memdom.Document, observe func(Step)) error {
	for n, ev := range s.Events {
		el, ok := doc.Lookup(ev.Target)
		if !ok {
			return errors.New(errors.ErrCodeNotFound, "event[%d]: no element with id %q", n, ev.Target)
		}
		fired := ev.DOMEvent()
		el.Dispatch(fired)
		if observe != nil {
			observe(Step{Index: n, Event: ev, Target: el, Fired: fired})
		}
	}
	return nil
}
