package clip

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink/internal/fixedpoint"
)

// Verb is one path construction step in a clip path component.
type Verb uint8

const (
	VerbMoveTo Verb = iota
	VerbLineTo
	VerbCurveTo // consumes three points
	VerbClose
)

// Path is the clip package's own copy of a fixed-point path. Clip
// components outlive the context path they were built from, so the
// context hands over detached verb/point slices rather than a live
// reference.
type Path struct {
	Verbs  []Verb
	Points []fixed.Point26_6
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool { return len(p.Verbs) == 0 }

// Extents returns the fixed-point bounding box of all path points.
// Control points of curves are included, which can only over-estimate.
func (p Path) Extents() fixedpoint.Box {
	if len(p.Points) == 0 {
		return fixedpoint.Box{}
	}
	ext := fixedpoint.Box{P0: p.Points[0], P1: p.Points[0]}
	for _, pt := range p.Points[1:] {
		if pt.X < ext.P0.X {
			ext.P0.X = pt.X
		}
		if pt.Y < ext.P0.Y {
			ext.P0.Y = pt.Y
		}
		if pt.X > ext.P1.X {
			ext.P1.X = pt.X
		}
		if pt.Y > ext.P1.Y {
			ext.P1.Y = pt.Y
		}
	}
	return ext
}

// AsBox reports whether the path is a single rectilinear quadrilateral
// (in either winding) and returns it as a box. Such paths take the
// rectangle fast path through the clip instead of becoming residual
// components.
func (p Path) AsBox() (fixedpoint.Box, bool) {
	// move, line, line, line [, close] tracing an axis-aligned rectangle.
	n := len(p.Verbs)
	if n != 4 && n != 5 {
		return fixedpoint.Box{}, false
	}
	if p.Verbs[0] != VerbMoveTo || p.Verbs[1] != VerbLineTo ||
		p.Verbs[2] != VerbLineTo || p.Verbs[3] != VerbLineTo {
		return fixedpoint.Box{}, false
	}
	if n == 5 && p.Verbs[4] != VerbClose {
		return fixedpoint.Box{}, false
	}
	if len(p.Points) != 4 {
		return fixedpoint.Box{}, false
	}

	a, b, c, d := p.Points[0], p.Points[1], p.Points[2], p.Points[3]
	// Consecutive edges must alternate horizontal/vertical.
	hvhv := a.Y == b.Y && b.X == c.X && c.Y == d.Y && d.X == a.X
	vhvh := a.X == b.X && b.Y == c.Y && c.X == d.X && d.Y == a.Y
	if !hvhv && !vhvh {
		return fixedpoint.Box{}, false
	}

	box := fixedpoint.Box{P0: a, P1: a}
	for _, pt := range p.Points[1:] {
		if pt.X < box.P0.X {
			box.P0.X = pt.X
		}
		if pt.Y < box.P0.Y {
			box.P0.Y = pt.Y
		}
		if pt.X > box.P1.X {
			box.P1.X = pt.X
		}
		if pt.Y > box.P1.Y {
			box.P1.Y = pt.Y
		}
	}
	return box, true
}
