// Package memdom is an in-memory document implementing [dom.Adapter].
//
// It models just enough of a browser document for the effect: a tree of
// elements with ids, classes, inner HTML, inline styles, assigned bounding
// rectangles and synchronous event dispatch. Documents serialize back to
// HTML with [Element.OuterHTML].
//
//	doc := memdom.New(memdom.WithScroll(engine.Scroll{Top: 120}))
//	card := doc.CreateElement("div").(*memdom.Element)
//	card.SetClassName("lsr")
//	card.SetRect(engine.Rect{Left: 0, Top: 0, Width: 400, Height: 240})
//	doc.Body().AppendChild(card)
//
// Selectors understood by [Document.ResolveRoot] and [Document.Query] are a
// single "#id", ".class" or tag name.
package memdom

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/engine"
)

// Document is an in-memory element tree rooted at a body element.
type Document struct {
	body   *Element
	touch  bool
	scroll engine.Scroll
	newID  func() string
}

// Option configures a Document.
type Option func(*Document)

// WithTouch sets the reported touch capability.
func WithTouch(touch bool) Option { return func(d *Document) { d.touch = touch } }

// WithScroll sets the document scroll offsets.
func WithScroll(s engine.Scroll) Option { return func(d *Document) { d.scroll = s } }

// WithIDGenerator replaces the uuid-based id source. Generated ids that
// collide with an attached element are retried.
func WithIDGenerator(fn func() string) Option { return func(d *Document) { d.newID = fn } }

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{newID: uuid.NewString}
	for _, opt := range opts {
		opt(d)
	}
	d.body = d.newElement("body")
	return d
}

// Body returns the document body.
func (d *Document) Body() *Element { return d.body }

// SetScroll updates the document scroll offsets.
func (d *Document) SetScroll(s engine.Scroll) { d.scroll = s }

// SetTouch updates the reported touch capability.
func (d *Document) SetTouch(touch bool) { d.touch = touch }

// ResolveRoot implements [dom.Adapter].
func (d *Document) ResolveRoot(selector string) (dom.Element, error) {
	if strings.TrimSpace(selector) == "" {
		return d.body, nil
	}
	el, ok := d.Query(selector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", dom.ErrNoMatch, selector)
	}
	return el, nil
}

// Query returns the first element in document order matching selector,
// including the body.
func (d *Document) Query(selector string) (*Element, bool) {
	match, err := compile(selector)
	if err != nil {
		return nil, false
	}
	var found *Element
	d.body.walk(func(e *Element) bool {
		if match(e) {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// FindDescendants implements [dom.Adapter].
func (d *Document) FindDescendants(root dom.Element, className string) []dom.Element {
	r, ok := root.(*Element)
	if !ok {
		return nil
	}
	var out []dom.Element
	for _, c := range r.children {
		c.walk(func(e *Element) bool {
			if e.HasClass(className) {
				out = append(out, e)
			}
			return true
		})
	}
	return out
}

// CreateElement implements [dom.Adapter].
func (d *Document) CreateElement(tag string) dom.Element {
	return d.newElement(tag)
}

// NewElement is CreateElement returning the concrete type.
func (d *Document) NewElement(tag string) *Element {
	return d.newElement(tag)
}

// BoundingRect implements [dom.Adapter]. Elements of other documents
// report an empty rectangle.
func (d *Document) BoundingRect(el dom.Element) engine.Rect {
	if e, ok := el.(*Element); ok {
		return e.rect
	}
	return engine.Rect{}
}

// ScrollOffsets implements [dom.Adapter].
func (d *Document) ScrollOffsets() engine.Scroll { return d.scroll }

// TouchCapability implements [dom.Adapter].
func (d *Document) TouchCapability() bool { return d.touch }

// GenerateUniqueID implements [dom.Adapter].
func (d *Document) GenerateUniqueID() string {
	for {
		id := d.newID()
		if _, taken := d.ElementByID(id); !taken && id != "" {
			return id
		}
	}
}

// ElementByID implements [dom.Adapter]. Only elements attached to the body
// are found.
func (d *Document) ElementByID(id string) (dom.Element, bool) {
	e, ok := d.byID(id)
	if !ok {
		return nil, false
	}
	return e, true
}

// Lookup is ElementByID returning the concrete type.
func (d *Document) Lookup(id string) (*Element, bool) {
	return d.byID(id)
}

func (d *Document) byID(id string) (*Element, bool) {
	if id == "" {
		return nil, false
	}
	var found *Element
	d.body.walk(func(e *Element) bool {
		if e.id == id {
			found = e
			return false
		}
		return true
	})
	return found, found != nil
}

// HTML serializes the body's children.
func (d *Document) HTML() string {
	return d.body.InnerHTML()
}

func (d *Document) newElement(tag string) *Element {
	return &Element{
		doc:       d,
		tag:       strings.ToUpper(tag),
		style:     &Style{},
		listeners: map[string][]*dom.Listener{},
	}
}

// Ensure Document implements dom.Adapter.
var _ dom.Adapter = (*Document)(nil)

// compile turns a simple selector into a predicate.
func compile(selector string) (func(*Element) bool, error) {
	sel := strings.TrimSpace(selector)
	if sel == "" || strings.ContainsAny(sel, " >+~,[]:") {
		return nil, fmt.Errorf("unsupported selector %q", selector)
	}
	switch sel[0] {
	case '#':
		id := sel[1:]
		return func(e *Element) bool { return e.id == id }, nil
	case '.':
		class := sel[1:]
		return func(e *Element) bool { return e.HasClass(class) }, nil
	}
	tag := strings.ToUpper(sel)
	return func(e *Element) bool { return e.tag == tag }, nil
}
