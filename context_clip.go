package ink

import (
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink/internal/clip"
	"github.com/gogpu/ink/internal/fixedpoint"
)

// Clip is the immutable-when-shared clip model. Backends receive it via
// Context.CurrentClip and consult its box list, residual path components
// and optional region form.
type Clip = clip.Clip

// Region is a set of disjoint integer rectangles in y-banded canonical
// order, produced from pixel-aligned clips.
type Region = clip.Region

// clipPath converts the path under construction to the clip package's
// representation. The copy detaches the clip from later path edits.
func clipPath(p *Path) clip.Path {
	verbs := p.Verbs()
	points := p.Points()
	cp := clip.Path{
		Verbs:  make([]clip.Verb, len(verbs)),
		Points: make([]fixed.Point26_6, len(points)),
	}
	for i, v := range verbs {
		switch v {
		case PathMoveTo:
			cp.Verbs[i] = clip.VerbMoveTo
		case PathLineTo:
			cp.Verbs[i] = clip.VerbLineTo
		case PathCurveTo:
			cp.Verbs[i] = clip.VerbCurveTo
		case PathClose:
			cp.Verbs[i] = clip.VerbClose
		}
	}
	copy(cp.Points, points)
	return cp
}

func (c *Context) clipIntersect() error {
	g := c.top()
	if c.path.Empty() {
		// Clipping against nothing leaves no visible area.
		next, err := g.clip.IntersectBox(fixedpoint.Box{})
		if err != nil {
			return c.setErr(err)
		}
		g.clip = next
		return nil
	}
	cp := clipPath(c.path)
	next, err := g.clip.IntersectPath(
		&cp,
		clip.FillRule(g.fillRule),
		g.tolerance,
		clip.Antialias(g.antialias),
	)
	if err != nil {
		return c.setErr(err)
	}
	g.clip = next
	if next.IsEmpty() {
		Logger().Debug("ink: clip covers no area")
	}
	return nil
}

// Clip intersects the current clip with the filled interior of the path
// under construction, then clears the path. The clip can only shrink;
// use Save/Restore to get back a larger clip.
func (c *Context) Clip() error {
	if c.err != nil {
		return c.err
	}
	if err := c.clipIntersect(); err != nil {
		return err
	}
	c.path.Clear()
	return nil
}

// ClipPreserve is Clip without clearing the path.
func (c *Context) ClipPreserve() error {
	if c.err != nil {
		return c.err
	}
	return c.clipIntersect()
}

// ResetClip removes all clipping, restoring the unclipped state of the
// target. Unlike Restore it does not touch any other state.
func (c *Context) ResetClip() error {
	if c.err != nil {
		return c.err
	}
	g := c.top()
	g.clip.Unref()
	g.clip = nil
	return nil
}

// CurrentClip exposes the clip of the current state. A nil clip means
// unclipped. Backends must treat it as read-only.
func (c *Context) CurrentClip() *Clip { return c.top().clip }

// ClipExtents reports a user-space bounding box of the clipped area.
// With no clip set, the target surface extents are used; an unbounded
// target yields an unbounded box.
func (c *Context) ClipExtents() (x0, y0, x1, y1 float64) {
	g := c.top()
	if g.clip.IsEmpty() {
		return 0, 0, 0, 0
	}
	if ext, ok := g.clip.Extents(); ok {
		return c.boxToUser(fixedpoint.BoxFromRect(ext))
	}
	if g.target != nil {
		if ext, ok := g.target.Extents(); ok {
			return c.boxToUser(fixedpoint.BoxFromRect(ext))
		}
	}
	return fixedpoint.MinFloat, fixedpoint.MinFloat,
		fixedpoint.MaxFloat, fixedpoint.MaxFloat
}

// InClip reports whether the given user-space point would be visible
// under the current clip. Residual path components are tested against
// their bounding boxes, so the answer errs toward visibility.
func (c *Context) InClip(x, y float64) bool {
	g := c.top()
	if g.clip == nil {
		return true
	}
	if g.clip.IsEmpty() {
		return false
	}
	dx, dy := c.UserToDevice(x, y)
	pt := fixedpoint.Box{
		P0: fixed.Point26_6{X: fixedpoint.FromFloat64(dx), Y: fixedpoint.FromFloat64(dy)},
	}
	pt.P1 = pt.P0
	for _, b := range g.clip.Boxes() {
		if b.Contains(pt) {
			return true
		}
	}
	return false
}
