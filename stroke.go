package ink

// Stroke bundles the style applied when a path is stroked. Backends
// read it from a state snapshot; the core only records it.
type Stroke struct {
	// Width is the line width in user-space units.
	Width float64

	// Hairline requests the thinnest renderable line regardless of the
	// transformation. While set, Width reads as 0.
	Hairline bool

	Cap        LineCap
	Join       LineJoin
	MiterLimit float64

	// Dash is nil for a solid line.
	Dash *Dash

	// preHairline remembers the width to restore when hairline mode is
	// switched off again.
	preHairline float64
}

// DefaultStroke returns the stroke style of a fresh graphics state.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      2.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
		MiterLimit: 10.0,
	}
}

// WithWidth returns a copy with the given line width.
func (s Stroke) WithWidth(w float64) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy with the given line cap.
func (s Stroke) WithCap(c LineCap) Stroke {
	s.Cap = c
	return s
}

// WithJoin returns a copy with the given line join.
func (s Stroke) WithJoin(j LineJoin) Stroke {
	s.Join = j
	return s
}

// WithDash returns a copy with the given dash pattern.
func (s Stroke) WithDash(d *Dash) Stroke {
	s.Dash = d
	return s
}

// IsDashed reports whether the stroke uses a dash pattern.
func (s Stroke) IsDashed() bool {
	return s.Dash.Count() > 0
}

// clone deep-copies the stroke, detaching the dash array so that a
// saved state cannot observe later dash changes.
func (s Stroke) clone() Stroke {
	s.Dash = s.Dash.Clone()
	return s
}
