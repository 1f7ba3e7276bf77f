package ink

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink/internal/fixedpoint"
)

// PathVerb identifies one path construction step.
type PathVerb uint8

const (
	// PathMoveTo starts a new subpath at a point.
	PathMoveTo PathVerb = iota
	// PathLineTo adds a line segment.
	PathLineTo
	// PathCurveTo adds a cubic Bezier segment (three points).
	PathCurveTo
	// PathClose closes the current subpath.
	PathClose
)

// pointCount returns the number of points the verb consumes.
func (v PathVerb) pointCount() int {
	switch v {
	case PathMoveTo, PathLineTo:
		return 1
	case PathCurveTo:
		return 3
	default:
		return 0
	}
}

// Path is an ordered sequence of subpaths in fixed-point device
// coordinates. It is mutated only by its owning Context's path
// construction calls and by group redirection, which translates the
// whole path when the current target's device offset changes.
type Path struct {
	verbs  []PathVerb
	points []fixed.Point26_6

	hasCurrent bool
	current    fixed.Point26_6
	lastMove   fixed.Point26_6
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]PathVerb, 0, 16),
		points: make([]fixed.Point26_6, 0, 16),
	}
}

// MoveTo starts a new subpath at the given device point.
func (p *Path) MoveTo(pt fixed.Point26_6) {
	p.verbs = append(p.verbs, PathMoveTo)
	p.points = append(p.points, pt)
	p.current = pt
	p.lastMove = pt
	p.hasCurrent = true
}

// LineTo adds a line segment to the given device point. With no open
// subpath it degenerates to a MoveTo, opening one.
func (p *Path) LineTo(pt fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveTo(pt)
		return
	}
	p.verbs = append(p.verbs, PathLineTo)
	p.points = append(p.points, pt)
	p.current = pt
}

// CurveTo adds a cubic Bezier segment. With no open subpath, an implicit
// MoveTo to the first control point opens one.
func (p *Path) CurveTo(c1, c2, pt fixed.Point26_6) {
	if !p.hasCurrent {
		p.MoveTo(c1)
	}
	p.verbs = append(p.verbs, PathCurveTo)
	p.points = append(p.points, c1, c2, pt)
	p.current = pt
}

// ClosePath closes the current subpath, making its starting point the
// new current point. Without an open subpath it does nothing.
func (p *Path) ClosePath() {
	if !p.hasCurrent {
		return
	}
	p.verbs = append(p.verbs, PathClose)
	p.current = p.lastMove
}

// NewSubPath ends the current subpath without closing it. The next
// line or curve opens a fresh subpath at its own starting point.
func (p *Path) NewSubPath() {
	p.hasCurrent = false
}

// Clear removes all segments, keeping the allocated storage.
func (p *Path) Clear() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.hasCurrent = false
	p.current = fixed.Point26_6{}
	p.lastMove = fixed.Point26_6{}
}

// Empty reports whether the path has no segments.
func (p *Path) Empty() bool { return len(p.verbs) == 0 }

// HasCurrentPoint reports whether a subpath is open.
func (p *Path) HasCurrentPoint() bool { return p.hasCurrent }

// CurrentPoint returns the current device point, if any.
func (p *Path) CurrentPoint() (fixed.Point26_6, bool) {
	if !p.hasCurrent {
		return fixed.Point26_6{}, false
	}
	return p.current, true
}

// LastMovePoint returns the starting point of the current subpath.
func (p *Path) LastMovePoint() (fixed.Point26_6, bool) {
	if !p.hasCurrent {
		return fixed.Point26_6{}, false
	}
	return p.lastMove, true
}

// Verbs returns the verb sequence. Callers must not modify it.
func (p *Path) Verbs() []PathVerb { return p.verbs }

// Points returns the point sequence. Callers must not modify it.
func (p *Path) Points() []fixed.Point26_6 { return p.points }

// Translate offsets every point of the path, including the current and
// subpath-start bookkeeping, by (dx, dy). Used when a group redirection
// changes the device offset of the current target.
func (p *Path) Translate(dx, dy fixed.Int26_6) {
	if dx == 0 && dy == 0 {
		return
	}
	for i := range p.points {
		p.points[i].X += dx
		p.points[i].Y += dy
	}
	p.current.X += dx
	p.current.Y += dy
	p.lastMove.X += dx
	p.lastMove.Y += dy
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	c := &Path{
		verbs:      make([]PathVerb, len(p.verbs)),
		points:     make([]fixed.Point26_6, len(p.points)),
		hasCurrent: p.hasCurrent,
		current:    p.current,
		lastMove:   p.lastMove,
	}
	copy(c.verbs, p.verbs)
	copy(c.points, p.points)
	return c
}

// Extents returns the fixed-point bounding box of the path, including
// curve control points (an over-estimate for curves), and whether the
// path has any points at all.
func (p *Path) Extents() (fixedpoint.Box, bool) {
	if len(p.points) == 0 {
		return fixedpoint.Box{}, false
	}
	ext := fixedpoint.Box{P0: p.points[0], P1: p.points[0]}
	for _, pt := range p.points[1:] {
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
	return ext, true
}

// PathWalker receives path segments in order. Backends implement it to
// consume a finished path.
type PathWalker interface {
	MoveTo(p fixed.Point26_6)
	LineTo(p fixed.Point26_6)
	CurveTo(c1, c2, p fixed.Point26_6)
	ClosePath()
}

// Walk replays the path into w in construction order.
func (p *Path) Walk(w PathWalker) {
	i := 0
	for _, v := range p.verbs {
		switch v {
		case PathMoveTo:
			w.MoveTo(p.points[i])
		case PathLineTo:
			w.LineTo(p.points[i])
		case PathCurveTo:
			w.CurveTo(p.points[i], p.points[i+1], p.points[i+2])
		case PathClose:
			w.ClosePath()
		}
		i += v.pointCount()
	}
}
