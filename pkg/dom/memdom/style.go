package memdom

import (
	"slices"
	"strings"

	"github.com/matzehuels/lsr/pkg/dom"
)

// Style is an ordered inline style declaration.
type Style struct {
	props  []string
	values map[string]string
}

// Get implements [dom.Style].
func (s *Style) Get(property string) string {
	return s.values[property]
}

// Set implements [dom.Style]. Reassigning a property keeps its position.
func (s *Style) Set(property, value string) {
	if value == "" {
		s.remove(property)
		return
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	if _, ok := s.values[property]; !ok {
		s.props = append(s.props, property)
	}
	s.values[property] = value
}

func (s *Style) remove(property string) {
	if _, ok := s.values[property]; !ok {
		return
	}
	delete(s.values, property)
	s.props = slices.DeleteFunc(s.props, func(p string) bool { return p == property })
}

// CSSText implements [dom.Style].
func (s *Style) CSSText() string {
	parts := make([]string, len(s.props))
	for i, p := range s.props {
		parts[i] = p + ": " + s.values[p] + ";"
	}
	return strings.Join(parts, " ")
}

// Clear implements [dom.Style].
func (s *Style) Clear() {
	s.props = nil
	s.values = nil
}

// Len returns the number of assigned properties.
func (s *Style) Len() int { return len(s.props) }

// Ensure Style implements dom.Style.
var _ dom.Style = (*Style)(nil)
