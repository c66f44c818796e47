package engine

import (
	"math"
	"strconv"
)

// ContainerTransform formats the stack rotation as a CSS transform. The
// hover scale is appended only when hovered is set.
func (f Frame) ContainerTransform(hovered bool) string {
	s := "rotateX(" + FormatNumber(f.Rotation.X) + "deg) rotateY(" + FormatNumber(f.Rotation.Y) + "deg)"
	if hovered {
		scale := FormatNumber(f.Scale)
		s += " scale3d(" + scale + "," + scale + "," + scale + ")"
	}
	return s
}

// Background formats the sheen as a CSS linear-gradient.
func (s Shine) Background() string {
	return "linear-gradient(" + FormatNumber(s.AngleDeg) + "deg, rgba(255,255,255," +
		FormatNumber(s.Alpha) + ") 0%,rgba(255,255,255,0) 80%)"
}

// Transform formats the sheen offset as a CSS transform.
func (s Shine) Transform() string {
	return Vec2{X: s.OffsetX, Y: s.OffsetY}.Translate()
}

// Translate formats v as a CSS pixel translation.
func (v Vec2) Translate() string {
	return "translateX(" + FormatNumber(v.X) + "px) translateY(" + FormatNumber(v.Y) + "px)"
}

// Perspective formats the static perspective transform for a target of the
// given width.
func Perspective(width float64) string {
	return "perspective(" + FormatNumber(width*PerspectiveMultiple) + "px)"
}

// FormatNumber prints v in its shortest decimal form. Non-finite values use
// the spellings CSS engines receive from script: NaN, Infinity, -Infinity.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
