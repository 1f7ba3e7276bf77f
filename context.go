package ink

import (
	"sync"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink/internal/fixedpoint"
	"github.com/gogpu/ink/text"
)

// Context is the main drawing context. It owns a stack of graphics
// states, the path under construction, and the first error it observed.
//
// Coordinates passed to path operations are in user space; they are
// transformed through the current matrix and stored as fixed-point
// device coordinates. A Context is not safe for concurrent use.
type Context struct {
	// states[0] is the root state and is never popped. Save appends,
	// Restore and PopGroup truncate.
	states []gstate

	// path is the device-space path under construction.
	path *Path

	// err is the first error observed. Once set, every operation
	// short-circuits and returns it.
	err error

	closed bool
}

var contextPool = sync.Pool{
	New: func() any { return &Context{} },
}

// NewContext creates a drawing context targeting the given surface.
func NewContext(target Surface, opts ...ContextOption) *Context {
	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := contextPool.Get().(*Context)
	c.states = append(c.states[:0], newGState(target))
	if c.path == nil {
		c.path = NewPath()
	} else {
		c.path.Clear()
	}
	c.err = nil
	c.closed = false

	top := c.top()
	top.tolerance = clampTolerance(o.tolerance)
	top.antialias = o.antialias
	if target != nil && target.Finished() {
		c.setErr(ErrSurfaceFinished)
	}
	return c
}

// Close releases the context. Any unmatched saves and groups are
// unwound. The context must not be used afterwards.
func (c *Context) Close() error {
	if c.closed {
		return c.err
	}
	c.closed = true
	for len(c.states) > 1 {
		c.top().release()
		c.states = c.states[:len(c.states)-1]
	}
	c.top().release()
	c.states = c.states[:0]
	c.path.Clear()
	err := c.err
	contextPool.Put(c)
	return err
}

// Err reports the first error observed by the context. Once an operation
// fails, the context is poisoned: all further operations return the same
// error until the context is closed.
func (c *Context) Err() error { return c.err }

func (c *Context) setErr(err error) error {
	if err != nil && c.err == nil {
		c.err = err
		Logger().Warn("ink: context poisoned", "error", err)
	}
	return c.err
}

func (c *Context) top() *gstate {
	return &c.states[len(c.states)-1]
}

// Target reports the destination surface of the current state. Inside a
// group this is the intermediate group surface.
func (c *Context) Target() Surface { return c.top().target }

// Depth reports the current nesting depth of saves and groups. A freshly
// created context has depth 1.
func (c *Context) Depth() int { return len(c.states) }

// Save pushes a copy of the current graphics state. The path is not part
// of the saved state.
func (c *Context) Save() error {
	if c.err != nil {
		return c.err
	}
	s := c.top().save()
	c.states = append(c.states, s)
	return nil
}

// Restore pops the state pushed by the matching Save. Restoring past the
// root state, or across a group boundary, fails with ErrInvalidRestore
// and leaves the state stack untouched.
func (c *Context) Restore() error {
	if c.err != nil {
		return c.err
	}
	if len(c.states) == 1 || c.top().isGroup {
		return c.setErr(ErrInvalidRestore)
	}
	c.top().release()
	c.states = c.states[:len(c.states)-1]
	return nil
}

// Path construction.

// toDevice transforms a user-space coordinate pair to a fixed-point
// device point. Out-of-range coordinates are clamped inward by the
// current line width so that subsequent stroking cannot overflow.
func (c *Context) toDevice(x, y float64) fixed.Point26_6 {
	p := c.top().matrix.TransformPoint(Pt(x, y))
	slack := c.top().stroke.Width
	return fixed.Point26_6{
		X: fixedpoint.FromFloat64Clamped(p.X, slack),
		Y: fixedpoint.FromFloat64Clamped(p.Y, slack),
	}
}

// toDeviceDistance transforms a user-space distance to a fixed-point
// device delta, ignoring translation.
func (c *Context) toDeviceDistance(dx, dy float64) fixed.Point26_6 {
	d := c.top().matrix.TransformVector(Pt(dx, dy))
	return fixed.Point26_6{
		X: fixedpoint.FromFloat64(d.X),
		Y: fixedpoint.FromFloat64(d.Y),
	}
}

// NewPath clears the path under construction.
func (c *Context) NewPath() error {
	if c.err != nil {
		return c.err
	}
	c.path.Clear()
	return nil
}

// NewSubPath forgets the current point without emitting anything, so the
// next LineTo or CurveTo starts a fresh subpath. Arc after NewSubPath
// omits its initial join segment.
func (c *Context) NewSubPath() error {
	if c.err != nil {
		return c.err
	}
	c.path.NewSubPath()
	return nil
}

// MoveTo begins a new subpath at (x, y).
func (c *Context) MoveTo(x, y float64) error {
	if c.err != nil {
		return c.err
	}
	c.path.MoveTo(c.toDevice(x, y))
	return nil
}

// LineTo adds a line from the current point to (x, y). With no current
// point it behaves like MoveTo.
func (c *Context) LineTo(x, y float64) error {
	if c.err != nil {
		return c.err
	}
	c.path.LineTo(c.toDevice(x, y))
	return nil
}

// CurveTo adds a cubic Bézier from the current point through the control
// points (x1, y1) and (x2, y2) to (x3, y3). With no current point a
// MoveTo to the first control point is implied.
func (c *Context) CurveTo(x1, y1, x2, y2, x3, y3 float64) error {
	if c.err != nil {
		return c.err
	}
	c.path.CurveTo(c.toDevice(x1, y1), c.toDevice(x2, y2), c.toDevice(x3, y3))
	return nil
}

// ClosePath closes the current subpath with a line back to its starting
// point. Without a current point this is a no-op.
func (c *Context) ClosePath() error {
	if c.err != nil {
		return c.err
	}
	c.path.ClosePath()
	return nil
}

// RelMoveTo begins a new subpath offset (dx, dy) from the current point.
func (c *Context) RelMoveTo(dx, dy float64) error {
	if c.err != nil {
		return c.err
	}
	cur, ok := c.path.CurrentPoint()
	if !ok {
		return c.setErr(ErrNoCurrentPoint)
	}
	d := c.toDeviceDistance(dx, dy)
	c.path.MoveTo(fixed.Point26_6{X: cur.X + d.X, Y: cur.Y + d.Y})
	return nil
}

// RelLineTo adds a line to the point offset (dx, dy) from the current
// point.
func (c *Context) RelLineTo(dx, dy float64) error {
	if c.err != nil {
		return c.err
	}
	cur, ok := c.path.CurrentPoint()
	if !ok {
		return c.setErr(ErrNoCurrentPoint)
	}
	d := c.toDeviceDistance(dx, dy)
	c.path.LineTo(fixed.Point26_6{X: cur.X + d.X, Y: cur.Y + d.Y})
	return nil
}

// RelCurveTo adds a cubic Bézier whose control and end points are offsets
// from the current point.
func (c *Context) RelCurveTo(dx1, dy1, dx2, dy2, dx3, dy3 float64) error {
	if c.err != nil {
		return c.err
	}
	cur, ok := c.path.CurrentPoint()
	if !ok {
		return c.setErr(ErrNoCurrentPoint)
	}
	d1 := c.toDeviceDistance(dx1, dy1)
	d2 := c.toDeviceDistance(dx2, dy2)
	d3 := c.toDeviceDistance(dx3, dy3)
	c.path.CurveTo(
		fixed.Point26_6{X: cur.X + d1.X, Y: cur.Y + d1.Y},
		fixed.Point26_6{X: cur.X + d2.X, Y: cur.Y + d2.Y},
		fixed.Point26_6{X: cur.X + d3.X, Y: cur.Y + d3.Y},
	)
	return nil
}

// Rectangle adds a closed rectangular subpath.
func (c *Context) Rectangle(x, y, w, h float64) error {
	if c.err != nil {
		return c.err
	}
	if err := c.MoveTo(x, y); err != nil {
		return err
	}
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	return c.ClosePath()
}

// HasCurrentPoint reports whether the path under construction has a
// current point.
func (c *Context) HasCurrentPoint() bool {
	return c.path.HasCurrentPoint()
}

// CurrentPoint reports the current point in user space. ok is false when
// there is no current point.
func (c *Context) CurrentPoint() (x, y float64, ok bool) {
	cur, ok := c.path.CurrentPoint()
	if !ok {
		return 0, 0, false
	}
	p := c.top().inverse.TransformPoint(Pt(
		fixedpoint.ToFloat64(cur.X),
		fixedpoint.ToFloat64(cur.Y),
	))
	return p.X, p.Y, true
}

// CurrentPath exposes the device-space path under construction. Backends
// read it; callers must not retain it across context operations.
func (c *Context) CurrentPath() *Path { return c.path }

// CopyPath returns an independent copy of the path under construction.
func (c *Context) CopyPath() *Path { return c.path.Clone() }

// AppendPath appends a previously copied device-space path.
func (c *Context) AppendPath(p *Path) error {
	if c.err != nil {
		return c.err
	}
	verbs := p.Verbs()
	points := p.Points()
	j := 0
	for _, v := range verbs {
		switch v {
		case PathMoveTo:
			c.path.MoveTo(points[j])
		case PathLineTo:
			c.path.LineTo(points[j])
		case PathCurveTo:
			c.path.CurveTo(points[j], points[j+1], points[j+2])
		case PathClose:
			c.path.ClosePath()
		}
		j += v.pointCount()
	}
	return nil
}

// PathExtents reports the user-space bounding box of the path under
// construction. Degenerate segments still contribute their endpoints.
func (c *Context) PathExtents() (x0, y0, x1, y1 float64) {
	box, ok := c.path.Extents()
	if !ok {
		return 0, 0, 0, 0
	}
	return c.boxToUser(box)
}

// boxToUser maps the corners of a device-space box through the inverse
// matrix and returns the axis-aligned hull in user space.
func (c *Context) boxToUser(box fixedpoint.Box) (x0, y0, x1, y1 float64) {
	inv := c.top().inverse
	corners := [4]Point{
		{fixedpoint.ToFloat64(box.P0.X), fixedpoint.ToFloat64(box.P0.Y)},
		{fixedpoint.ToFloat64(box.P1.X), fixedpoint.ToFloat64(box.P0.Y)},
		{fixedpoint.ToFloat64(box.P0.X), fixedpoint.ToFloat64(box.P1.Y)},
		{fixedpoint.ToFloat64(box.P1.X), fixedpoint.ToFloat64(box.P1.Y)},
	}
	for i, p := range corners {
		q := inv.TransformPoint(p)
		if i == 0 {
			x0, y0, x1, y1 = q.X, q.Y, q.X, q.Y
			continue
		}
		x0 = min(x0, q.X)
		y0 = min(y0, q.Y)
		x1 = max(x1, q.X)
		y1 = max(y1, q.Y)
	}
	return x0, y0, x1, y1
}

// Transformations.

// Transform composes m with the current matrix. A non-invertible result
// fails with ErrInvalidMatrix and leaves the matrix unchanged.
func (c *Context) Transform(m Matrix) error {
	if c.err != nil {
		return c.err
	}
	nm := c.top().matrix.Multiply(m)
	inv, err := nm.Invert()
	if err != nil {
		return c.setErr(err)
	}
	c.top().setMatrix(nm, inv)
	return nil
}

// Translate prepends a translation to the current matrix.
func (c *Context) Translate(tx, ty float64) error {
	return c.Transform(Translation(tx, ty))
}

// Scale prepends a scale to the current matrix. Zero factors fail with
// ErrInvalidMatrix.
func (c *Context) Scale(sx, sy float64) error {
	return c.Transform(Scaling(sx, sy))
}

// Rotate prepends a rotation by angle radians to the current matrix.
func (c *Context) Rotate(angle float64) error {
	return c.Transform(Rotation(angle))
}

// Shear prepends a shear to the current matrix.
func (c *Context) Shear(x, y float64) error {
	return c.Transform(Shearing(x, y))
}

// SetMatrix replaces the current matrix. Non-invertible matrices fail
// with ErrInvalidMatrix and leave the matrix unchanged.
func (c *Context) SetMatrix(m Matrix) error {
	if c.err != nil {
		return c.err
	}
	inv, err := m.Invert()
	if err != nil {
		return c.setErr(err)
	}
	c.top().setMatrix(m, inv)
	return nil
}

// IdentityMatrix resets the current matrix to the identity.
func (c *Context) IdentityMatrix() error {
	if c.err != nil {
		return c.err
	}
	c.top().setMatrix(Identity(), Identity())
	return nil
}

// GetMatrix reports the current transformation matrix.
func (c *Context) GetMatrix() Matrix { return c.top().matrix }

// UserToDevice transforms a user-space point to device space.
func (c *Context) UserToDevice(x, y float64) (float64, float64) {
	p := c.top().matrix.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// UserToDeviceDistance transforms a user-space distance to device space,
// ignoring translation.
func (c *Context) UserToDeviceDistance(dx, dy float64) (float64, float64) {
	d := c.top().matrix.TransformVector(Pt(dx, dy))
	return d.X, d.Y
}

// DeviceToUser transforms a device-space point to user space.
func (c *Context) DeviceToUser(x, y float64) (float64, float64) {
	p := c.top().inverse.TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// DeviceToUserDistance transforms a device-space distance to user space,
// ignoring translation.
func (c *Context) DeviceToUserDistance(dx, dy float64) (float64, float64) {
	d := c.top().inverse.TransformVector(Pt(dx, dy))
	return d.X, d.Y
}

// Style.

// SetLineWidth sets the stroke width in user-space units. Non-positive
// widths are retained as given; backends treat them as no stroke.
func (c *Context) SetLineWidth(w float64) error {
	if c.err != nil {
		return c.err
	}
	st := &c.top().stroke
	if st.Hairline {
		st.preHairline = w
	} else {
		st.Width = w
	}
	return nil
}

// LineWidth reports the current stroke width. Inside hairline mode this
// is the width that will be restored on leaving it.
func (c *Context) LineWidth() float64 {
	st := &c.top().stroke
	if st.Hairline {
		return st.preHairline
	}
	return st.Width
}

// SetHairline toggles hairline stroking. Entering hairline mode stashes
// the current width and forces it to zero; leaving restores the stash.
func (c *Context) SetHairline(on bool) error {
	if c.err != nil {
		return c.err
	}
	st := &c.top().stroke
	if on == st.Hairline {
		return nil
	}
	if on {
		st.preHairline = st.Width
		st.Width = 0
	} else {
		st.Width = st.preHairline
		st.preHairline = 0
	}
	st.Hairline = on
	return nil
}

// Hairline reports whether hairline stroking is enabled.
func (c *Context) Hairline() bool { return c.top().stroke.Hairline }

// SetLineCap sets the stroke endpoint style.
func (c *Context) SetLineCap(lc LineCap) error {
	if c.err != nil {
		return c.err
	}
	c.top().stroke.Cap = lc
	return nil
}

// LineCap reports the stroke endpoint style.
func (c *Context) LineCap() LineCap { return c.top().stroke.Cap }

// SetLineJoin sets the stroke corner style.
func (c *Context) SetLineJoin(lj LineJoin) error {
	if c.err != nil {
		return c.err
	}
	c.top().stroke.Join = lj
	return nil
}

// LineJoin reports the stroke corner style.
func (c *Context) LineJoin() LineJoin { return c.top().stroke.Join }

// SetMiterLimit sets the miter-to-bevel cutoff ratio.
func (c *Context) SetMiterLimit(limit float64) error {
	if c.err != nil {
		return c.err
	}
	c.top().stroke.MiterLimit = limit
	return nil
}

// MiterLimit reports the miter-to-bevel cutoff ratio.
func (c *Context) MiterLimit() float64 { return c.top().stroke.MiterLimit }

// SetDash sets the stroke dash pattern. An empty lengths slice disables
// dashing. A negative element, or all elements zero, fails with
// ErrInvalidDash.
func (c *Context) SetDash(lengths []float64, offset float64) error {
	if c.err != nil {
		return c.err
	}
	d, err := NewDash(lengths, offset)
	if err != nil {
		return c.setErr(err)
	}
	c.top().stroke.Dash = d
	return nil
}

// Dash reports the current dash pattern, or nil when stroking is solid.
func (c *Context) Dash() *Dash { return c.top().stroke.Dash }

// SetFillRule sets the rule deciding path interiors for fill and clip.
func (c *Context) SetFillRule(fr FillRule) error {
	if c.err != nil {
		return c.err
	}
	c.top().fillRule = fr
	return nil
}

// FillRule reports the current fill rule.
func (c *Context) FillRule() FillRule { return c.top().fillRule }

// SetTolerance sets the curve-flattening tolerance in device units.
// Values below the coordinate resolution are clamped up.
func (c *Context) SetTolerance(t float64) error {
	if c.err != nil {
		return c.err
	}
	c.top().tolerance = clampTolerance(t)
	return nil
}

// Tolerance reports the curve-flattening tolerance.
func (c *Context) Tolerance() float64 { return c.top().tolerance }

func clampTolerance(t float64) float64 {
	if t < toleranceMinimum {
		return toleranceMinimum
	}
	return t
}

// SetAntialias sets the rasterization quality hint.
func (c *Context) SetAntialias(a Antialias) error {
	if c.err != nil {
		return c.err
	}
	c.top().antialias = a
	return nil
}

// GetAntialias reports the rasterization quality hint.
func (c *Context) GetAntialias() Antialias { return c.top().antialias }

// SetOperator sets the compositing operator.
func (c *Context) SetOperator(op Operator) error {
	if c.err != nil {
		return c.err
	}
	c.top().operator = op
	return nil
}

// GetOperator reports the compositing operator.
func (c *Context) GetOperator() Operator { return c.top().operator }

// SetOpacity sets the global alpha applied on top of the source pattern.
func (c *Context) SetOpacity(a float64) error {
	if c.err != nil {
		return c.err
	}
	c.top().opacity = a
	return nil
}

// Opacity reports the global alpha.
func (c *Context) Opacity() float64 { return c.top().opacity }

// SetSource sets the source pattern for drawing operations.
func (c *Context) SetSource(p Pattern) error {
	if c.err != nil {
		return c.err
	}
	c.top().source = p
	return nil
}

// SetSourceRGB sets an opaque solid color source.
func (c *Context) SetSourceRGB(r, g, b float64) error {
	return c.SetSource(NewSolidPattern(RGB(r, g, b)))
}

// SetSourceRGBA sets a translucent solid color source.
func (c *Context) SetSourceRGBA(r, g, b, a float64) error {
	return c.SetSource(NewSolidPattern(RGBA{R: r, G: g, B: b, A: a}))
}

// Source reports the current source pattern.
func (c *Context) Source() Pattern { return c.top().source }

// SetFontFace sets the font face used for text operations.
func (c *Context) SetFontFace(f *text.Face) error {
	if c.err != nil {
		return c.err
	}
	g := c.top()
	g.face = f
	if f != nil {
		g.fontSize = f.Size()
	}
	return nil
}

// FontFace reports the current font face, or nil when none is set.
func (c *Context) FontFace() *text.Face { return c.top().face }

// SetFontSize sets the text size in user-space units. With a face
// installed, a derived face at the new size replaces it.
func (c *Context) SetFontSize(size float64) error {
	if c.err != nil {
		return c.err
	}
	g := c.top()
	if g.face != nil && g.face.Size() != size {
		f, err := g.face.Source().NewFace(size)
		if err != nil {
			return c.setErr(err)
		}
		g.face = f
	}
	g.fontSize = size
	return nil
}

// FontSize reports the text size.
func (c *Context) FontSize() float64 { return c.top().fontSize }

// Snapshot captures the current graphics state for a backend to execute
// a drawing primitive against.
func (c *Context) Snapshot() StateSnapshot {
	g := c.top()
	return StateSnapshot{
		Matrix:        g.matrix,
		InverseMatrix: g.inverse,
		Tolerance:     g.tolerance,
		Antialias:     g.antialias,
		Operator:      g.operator,
		Opacity:       g.opacity,
		FillRule:      g.fillRule,
		Stroke:        g.stroke,
		Source:        g.source,
		FontFace:      g.face,
		Target:        g.target,
	}
}
