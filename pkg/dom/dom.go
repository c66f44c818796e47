// Package dom defines the document adapter the effect runs against.
//
// The effect never touches a concrete document. Root lookup, descendant
// discovery, element creation, geometry, scroll offsets, id generation and
// touch capability all go through an [Adapter]. The
// in-memory implementation in package memdom backs the tests and the CLI;
// other implementations can bind a real browser document.
//
// Event subscriptions are represented by [Listener] handles. Removing a
// listener is done by handle identity, so a subscription table can detach
// exactly what it attached without re-deriving handlers.
package dom

import (
	"errors"

	"github.com/matzehuels/lsr/pkg/engine"
)

// ErrNoMatch is returned by adapters when a selector matches no element.
var ErrNoMatch = errors.New("no element matches selector")

// Adapter is the document collaborator of an effect instance.
type Adapter interface {
	// ResolveRoot returns the element selected by selector. An empty
	// selector selects the document body.
	ResolveRoot(selector string) (Element, error)

	// FindDescendants returns the descendants of root carrying className,
	// in document order. root itself is not included.
	FindDescendants(root Element, className string) []Element

	// CreateElement returns a new, detached element.
	CreateElement(tag string) Element

	// BoundingRect returns el's rectangle in viewport coordinates.
	BoundingRect(el Element) engine.Rect

	// ScrollOffsets returns the document scroll position.
	ScrollOffsets() engine.Scroll

	// GenerateUniqueID returns an id unused within the document.
	GenerateUniqueID() string

	// TouchCapability reports whether the environment delivers touch input.
	TouchCapability() bool

	// ElementByID finds an attached element by id.
	ElementByID(id string) (Element, bool)
}

// Element is a node the effect reads and writes.
type Element interface {
	ID() string
	SetID(id string)

	// TagName returns the upper-case tag name.
	TagName() string

	ClassName() string
	SetClassName(name string)
	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)

	InnerHTML() string
	SetInnerHTML(html string)

	Children() []Element
	FirstChild() Element
	AppendChild(child Element)
	RemoveChildren()

	Style() Style

	// AddEventListener subscribes l to event. Adding the same handle twice
	// for one event has no effect.
	AddEventListener(event string, l *Listener)

	// RemoveEventListener detaches l and reports whether it was attached.
	RemoveEventListener(event string, l *Listener) bool
}

// Style is an element's inline style declaration.
type Style interface {
	Get(property string) string

	// Set assigns a property; an empty value removes it.
	Set(property, value string)

	// CSSText returns the serialized declaration block.
	CSSText() string

	// Clear removes every property.
	Clear()
}
