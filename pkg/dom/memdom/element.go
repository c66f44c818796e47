package memdom

import (
	"fmt"
	"html"
	"slices"
	"strings"

	"github.com/matzehuels/lsr/pkg/dom"
	"github.com/matzehuels/lsr/pkg/engine"
)

// Element is a node of a [Document].
type Element struct {
	doc       *Document
	parent    *Element
	children  []*Element
	tag       string
	id        string
	classes   []string
	innerHTML string
	style     *Style
	rect      engine.Rect
	listeners map[string][]*dom.Listener
}

// ID implements [dom.Element].
func (e *Element) ID() string { return e.id }

// SetID implements [dom.Element].
func (e *Element) SetID(id string) { e.id = id }

// TagName implements [dom.Element].
func (e *Element) TagName() string { return e.tag }

// ClassName implements [dom.Element].
func (e *Element) ClassName() string { return strings.Join(e.classes, " ") }

// SetClassName implements [dom.Element].
func (e *Element) SetClassName(name string) {
	e.classes = e.classes[:0]
	for _, c := range strings.Fields(name) {
		e.AddClass(c)
	}
}

// HasClass implements [dom.Element].
func (e *Element) HasClass(name string) bool {
	return name != "" && slices.Contains(e.classes, name)
}

// AddClass implements [dom.Element].
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass implements [dom.Element].
func (e *Element) RemoveClass(name string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool { return c == name })
}

// InnerHTML implements [dom.Element]. Elements with children serialize
// them; leaf elements return the markup last assigned with SetInnerHTML.
func (e *Element) InnerHTML() string {
	if len(e.children) == 0 {
		return e.innerHTML
	}
	var b strings.Builder
	for _, c := range e.children {
		c.writeHTML(&b)
	}
	return b.String()
}

// SetInnerHTML implements [dom.Element]. The markup is stored opaquely and
// replaces all children.
func (e *Element) SetInnerHTML(markup string) {
	e.RemoveChildren()
	e.innerHTML = markup
}

// Children implements [dom.Element].
func (e *Element) Children() []dom.Element {
	out := make([]dom.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// ChildElements returns the children as concrete elements.
func (e *Element) ChildElements() []*Element {
	return slices.Clone(e.children)
}

// FirstChild implements [dom.Element]. It returns nil for leaf elements.
func (e *Element) FirstChild() dom.Element {
	if len(e.children) == 0 {
		return nil
	}
	return e.children[0]
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// AppendChild implements [dom.Element]. Appending an attached element moves
// it. It panics when child belongs to another document implementation.
func (e *Element) AppendChild(child dom.Element) {
	c, ok := child.(*Element)
	if !ok {
		panic(fmt.Sprintf("memdom: cannot append %T", child))
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	e.innerHTML = ""
	c.parent = e
	e.children = append(e.children, c)
}

// RemoveChildren implements [dom.Element].
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.innerHTML = ""
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.removeChild(e)
	}
}

func (e *Element) removeChild(c *Element) {
	e.children = slices.DeleteFunc(e.children, func(x *Element) bool { return x == c })
	c.parent = nil
}

// Style implements [dom.Element].
func (e *Element) Style() dom.Style { return e.style }

// Rect returns the assigned bounding rectangle.
func (e *Element) Rect() engine.Rect { return e.rect }

// SetRect assigns the bounding rectangle reported by the document.
func (e *Element) SetRect(r engine.Rect) { e.rect = r }

// AddEventListener implements [dom.Element].
func (e *Element) AddEventListener(event string, l *dom.Listener) {
	if l == nil || slices.Contains(e.listeners[event], l) {
		return
	}
	e.listeners[event] = append(e.listeners[event], l)
}

// RemoveEventListener implements [dom.Element].
func (e *Element) RemoveEventListener(event string, l *dom.Listener) bool {
	ls := e.listeners[event]
	i := slices.Index(ls, l)
	if i < 0 {
		return false
	}
	ls = slices.Delete(slices.Clone(ls), i, i+1)
	if len(ls) == 0 {
		delete(e.listeners, event)
	} else {
		e.listeners[event] = ls
	}
	return true
}

// ListenerCount returns the number of listeners subscribed to event.
func (e *Element) ListenerCount(event string) int {
	return len(e.listeners[event])
}

// Events returns the names of events with at least one listener, sorted.
func (e *Element) Events() []string {
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch delivers ev to the listeners of ev.Type in subscription order.
// Listeners added or removed during dispatch take effect on the next event.
func (e *Element) Dispatch(ev *dom.Event) {
	for _, l := range slices.Clone(e.listeners[ev.Type]) {
		l.Handle(ev)
	}
}

// OuterHTML serializes e and its subtree.
func (e *Element) OuterHTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

func (e *Element) writeHTML(b *strings.Builder) {
	tag := strings.ToLower(e.tag)
	b.WriteString("<" + tag)
	if e.id != "" {
		fmt.Fprintf(b, ` id="%s"`, html.EscapeString(e.id))
	}
	if len(e.classes) > 0 {
		fmt.Fprintf(b, ` class="%s"`, html.EscapeString(e.ClassName()))
	}
	if css := e.style.CSSText(); css != "" {
		fmt.Fprintf(b, ` style="%s"`, html.EscapeString(css))
	}
	b.WriteString(">")
	b.WriteString(e.InnerHTML())
	b.WriteString("</" + tag + ">")
}

// walk visits e and its descendants in document order until fn returns
// false. It reports whether the walk ran to completion.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// Ensure Element implements dom.Element.
var _ dom.Element = (*Element)(nil)
