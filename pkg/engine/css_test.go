package engine

import (
	"math"
	"testing"
)

func TestContainerTransform(t *testing.T) {
	f := Frame{Rotation: Vec2{X: 1.5, Y: -2}, Scale: 1.1}

	tests := []struct {
		name    string
		hovered bool
		want    string
	}{
		{"idle", false, "rotateX(1.5deg) rotateY(-2deg)"},
		{"hovered", true, "rotateX(1.5deg) rotateY(-2deg) scale3d(1.1,1.1,1.1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainerTransform(tt.hovered); got != tt.want {
				t.Errorf("ContainerTransform(%v) = %q, want %q", tt.hovered, got, tt.want)
			}
		})
	}
}

func TestShineStrings(t *testing.T) {
	s := Shine{AngleDeg: 90, Alpha: 0.2, OffsetX: -0.25, OffsetY: 1}

	wantBg := "linear-gradient(90deg, rgba(255,255,255,0.2) 0%,rgba(255,255,255,0) 80%)"
	if got := s.Background(); got != wantBg {
		t.Errorf("Background() = %q, want %q", got, wantBg)
	}

	wantTransform := "translateX(-0.25px) translateY(1px)"
	if got := s.Transform(); got != wantTransform {
		t.Errorf("Transform() = %q, want %q", got, wantTransform)
	}
}

func TestPerspective(t *testing.T) {
	if got := Perspective(400); got != "perspective(1200px)" {
		t.Errorf("Perspective(400) = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{1, "1"},
		{-16.8, "-16.8"},
		{0.0625, "0.0625"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Layer translations keep the full float64 result, as a browser would print
// it, rather than rounding to a tidy decimal.
func TestLayerTranslateKeepsFloatResult(t *testing.T) {
	rect := Rect{Left: 200, Top: 100, Width: 400, Height: 200}
	params := Params{RotationX: 0.05, RotationY: 0.05, Parallax: 0.5, Scale: 1}
	f := ComputeFrame(Pointer{PageX: 450, PageY: 300}, rect, Scroll{}, 3, params)

	want := []string{
		"translateX(0px) translateY(0px)",
		"translateX(-4.199999999999999px) translateY(-19.2px)",
		"translateX(-16.799999999999997px) translateY(-76.8px)",
	}
	for i, l := range f.Layers {
		if got := l.Translate(); got != want[i] {
			t.Errorf("layer %d = %q, want %q", i, got, want[i])
		}
	}
}
