package engine

import "math"

const (
	// ReferenceWidth is the element width at which rotation and translation
	// factors are applied unscaled.
	ReferenceWidth = 500.0

	// CenterBias is the normalized position treated as the resting point.
	CenterBias = 0.52

	// ShineAlphaScale is the sheen opacity at the bottom edge of a target.
	ShineAlphaScale = 0.4

	// PerspectiveMultiple sets the perspective distance relative to width.
	PerspectiveMultiple = 3.0

	// parallaxUnit converts the configured parallax factor to pixels.
	parallaxUnit = 100.0
)

// Pointer is a pointer position in document (page) coordinates.
type Pointer struct {
	PageX float64
	PageY float64
}

// Rect is an element's bounding box in viewport coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Scroll holds the document scroll offsets.
type Scroll struct {
	Top  float64
	Left float64
}

// Vec2 is a pair of values along the X and Y axes.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Params are the configuration values the geometry depends on.
type Params struct {
	RotationX float64 // rotation strength around the X axis
	RotationY float64 // rotation strength around the Y axis
	Parallax  float64 // layer shift factor
	Scale     float64 // uniform scale while hovered
	Shine     bool    // compute the sheen overlay
}

// Shine describes the light gradient overlay for one frame.
type Shine struct {
	AngleDeg float64 `json:"angle_deg"` // gradient direction in [0, 360)
	Alpha    float64 `json:"alpha"`     // opacity of the bright stop; not clamped
	OffsetX  float64 `json:"offset_x"`
	OffsetY  float64 `json:"offset_y"`
}

// Frame is the complete visual state computed for one pointer sample.
type Frame struct {
	// Offset is the normalized cursor position, CenterBias minus the
	// fraction of the element crossed on each axis.
	Offset Vec2 `json:"offset"`

	// Delta is the pixel distance of the cursor from the element centre.
	Delta Vec2 `json:"delta"`

	// Rotation of the layer stack in degrees.
	Rotation Vec2 `json:"rotation"`

	// Scale applied to the stack while the target is hovered.
	Scale float64 `json:"scale"`

	// Shine is nil when the sheen overlay is disabled.
	Shine *Shine `json:"shine,omitempty"`

	// Layers holds one translation per layer, in discovery order.
	Layers []Vec2 `json:"layers"`
}

// ComputeFrame maps a pointer sample onto the frame for a target with the
// given bounding box and number of layers. It has no side effects.
func ComputeFrame(p Pointer, r Rect, s Scroll, totalLayers int, params Params) Frame {
	w, h := r.Width, r.Height
	widthMultiple := ReferenceWidth / w

	localX := p.PageX - r.Left - s.Left
	localY := p.PageY - r.Top - s.Top

	offset := Vec2{
		X: CenterBias - localX/w,
		Y: CenterBias - localY/h,
	}
	delta := Vec2{
		X: localX - w/2,
		Y: localY - h/2,
	}

	f := Frame{
		Offset: offset,
		Delta:  delta,
		Rotation: Vec2{
			X: (delta.Y - offset.Y) * (params.RotationX * widthMultiple),
			Y: (offset.X - delta.X) * (params.RotationY * widthMultiple),
		},
		Scale:  params.Scale,
		Layers: LayerTranslations(offset, totalLayers, params.Parallax, widthMultiple),
	}

	if params.Shine {
		n := float64(max(totalLayers, 0))
		f.Shine = &Shine{
			AngleDeg: Angle(delta),
			Alpha:    localY / h * ShineAlphaScale,
			OffsetX:  offset.X * n,
			OffsetY:  offset.Y * n,
		}
	}
	return f
}

// LayerTranslations returns the translation of each layer for the given
// normalized offset. Layer i moves by offset * i * i * factor / widthMultiple,
// so layer 0 always stays in place.
func LayerTranslations(offset Vec2, totalLayers int, parallax, widthMultiple float64) []Vec2 {
	if totalLayers <= 0 {
		return []Vec2{}
	}

	factor := parallax * parallaxUnit
	layers := make([]Vec2, totalLayers)
	for i := 1; i < totalLayers; i++ {
		depth := float64(i)
		shift := depth * factor / widthMultiple
		layers[i] = Vec2{
			X: (offset.X * depth) * shift,
			Y: (offset.Y * depth) * shift,
		}
	}
	return layers
}

// Angle returns the direction of delta in degrees, rotated so that 0 points
// up, normalized to [0, 360).
func Angle(delta Vec2) float64 {
	angle := math.Atan2(delta.Y, delta.X)*180/math.Pi - 90
	if angle < 0 {
		angle += 360
	}
	// tiny negative angles round up to 360 after the shift
	if angle >= 360 {
		angle -= 360
	}
	return angle
}

// CenterPointer synthesizes a pointer at the geometric centre of r, for
// events that carry no coordinates such as keyboard focus.
func CenterPointer(r Rect, s Scroll) Pointer {
	return Pointer{
		PageX: r.Left + s.Left + r.Width/2,
		PageY: r.Top + s.Top + r.Height/2,
	}
}
