package ink

import (
	"math"
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ink/internal/fixedpoint"
)

func newTestContext(t *testing.T, opts ...ContextOption) *Context {
	t.Helper()
	dc := NewContext(NewImageSurface(ContentColorAlpha, 512, 512), opts...)
	t.Cleanup(func() { dc.Close() })
	return dc
}

func devicePoint(p fixed.Point26_6) (float64, float64) {
	return fixedpoint.ToFloat64(p.X), fixedpoint.ToFloat64(p.Y)
}

func TestArcQuarterCircleSingleSegment(t *testing.T) {
	dc := newTestContext(t)
	if err := dc.Arc(0, 0, 1, 0, math.Pi/2); err != nil {
		t.Fatalf("Arc() = %v", err)
	}

	// At the default tolerance a quarter turn fits one Bézier segment.
	verbs := dc.CurrentPath().Verbs()
	want := []PathVerb{PathMoveTo, PathCurveTo}
	if len(verbs) != len(want) {
		t.Fatalf("got verbs %v, want %v", verbs, want)
	}
	for i := range want {
		if verbs[i] != want[i] {
			t.Fatalf("got verbs %v, want %v", verbs, want)
		}
	}

	pts := dc.CurrentPath().Points()
	sx, sy := devicePoint(pts[0])
	if math.Abs(sx-1) > 0.02 || math.Abs(sy) > 0.02 {
		t.Errorf("arc starts at (%v, %v), want (1, 0)", sx, sy)
	}
	ex, ey := devicePoint(pts[len(pts)-1])
	if math.Abs(ex) > 0.02 || math.Abs(ey-1) > 0.02 {
		t.Errorf("arc ends at (%v, %v), want (0, 1)", ex, ey)
	}
}

func TestArcTighterToleranceSplitsSegments(t *testing.T) {
	dc := newTestContext(t, WithTolerance(1e-4))
	if err := dc.Arc(0, 0, 1, 0, math.Pi/2); err != nil {
		t.Fatalf("Arc() = %v", err)
	}
	curves := 0
	for _, v := range dc.CurrentPath().Verbs() {
		if v == PathCurveTo {
			curves++
		}
	}
	if curves != 2 {
		t.Errorf("quarter circle at 1e-4 tolerance used %d segments, want 2", curves)
	}
}

func TestArcScaleIncreasesSegments(t *testing.T) {
	flat := newTestContext(t)
	flat.Arc(0, 0, 1, 0, math.Pi/2)
	base := len(flat.CurrentPath().Verbs())

	scaled := newTestContext(t)
	scaled.Scale(1000, 1000)
	scaled.Arc(0, 0, 1, 0, math.Pi/2)
	grown := len(scaled.CurrentPath().Verbs())

	// The tolerance is measured in device units, so magnification must
	// buy more segments.
	if grown <= base {
		t.Errorf("scaled arc used %d verbs, base %d; want more under magnification", grown, base)
	}
}

func TestArcJoinsFromCurrentPoint(t *testing.T) {
	dc := newTestContext(t)
	dc.MoveTo(2, 0)
	dc.Arc(0, 0, 1, 0, math.Pi/2)

	verbs := dc.CurrentPath().Verbs()
	if verbs[0] != PathMoveTo || verbs[1] != PathLineTo {
		t.Fatalf("verbs = %v, want MoveTo then joining LineTo", verbs)
	}
	jx, jy := devicePoint(dc.CurrentPath().Points()[1])
	if math.Abs(jx-1) > 0.02 || math.Abs(jy) > 0.02 {
		t.Errorf("join lands at (%v, %v), want arc start (1, 0)", jx, jy)
	}
}

func TestArcAfterNewSubPathOmitsJoin(t *testing.T) {
	dc := newTestContext(t)
	dc.MoveTo(2, 0)
	dc.NewSubPath()
	dc.Arc(0, 0, 1, 0, math.Pi/2)

	verbs := dc.CurrentPath().Verbs()
	// The leading arc point opens a new subpath instead of joining.
	if verbs[1] != PathMoveTo {
		t.Errorf("verb after NewSubPath = %v, want MoveTo", verbs[1])
	}
}

func TestArcFullCircleClosesOnItself(t *testing.T) {
	dc := newTestContext(t)
	dc.Arc(0, 0, 1, 0, 2*math.Pi)

	pts := dc.CurrentPath().Points()
	sx, sy := devicePoint(pts[0])
	ex, ey := devicePoint(pts[len(pts)-1])
	if math.Abs(sx-ex) > 0.02 || math.Abs(sy-ey) > 0.02 {
		t.Errorf("full circle start (%v, %v) != end (%v, %v)", sx, sy, ex, ey)
	}
}

func TestArcSweepDirectionForward(t *testing.T) {
	// angle2 below angle1 is advanced by full turns, never swept
	// backwards.
	dc := newTestContext(t)
	dc.Arc(0, 0, 1, math.Pi/2, 0)

	pts := dc.CurrentPath().Points()
	sx, sy := devicePoint(pts[0])
	ex, ey := devicePoint(pts[len(pts)-1])
	if math.Abs(sx) > 0.02 || math.Abs(sy-1) > 0.02 {
		t.Errorf("start = (%v, %v), want (0, 1)", sx, sy)
	}
	if math.Abs(ex-1) > 0.02 || math.Abs(ey) > 0.02 {
		t.Errorf("end = (%v, %v), want (1, 0)", ex, ey)
	}
}

func TestArcNegative(t *testing.T) {
	dc := newTestContext(t)
	dc.ArcNegative(0, 0, 1, math.Pi/2, 0)

	verbs := dc.CurrentPath().Verbs()
	if verbs[0] != PathMoveTo {
		t.Fatalf("verbs = %v, want leading MoveTo", verbs)
	}
	pts := dc.CurrentPath().Points()
	sx, sy := devicePoint(pts[0])
	ex, ey := devicePoint(pts[len(pts)-1])
	if math.Abs(sx) > 0.02 || math.Abs(sy-1) > 0.02 {
		t.Errorf("start = (%v, %v), want (0, 1)", sx, sy)
	}
	if math.Abs(ex-1) > 0.02 || math.Abs(ey) > 0.02 {
		t.Errorf("end = (%v, %v), want (1, 0)", ex, ey)
	}
}

// arcEndpoints collects the on-arc points of a tessellation: the start
// plus every segment endpoint.
func arcEndpoints(p *Path) [][2]float64 {
	var out [][2]float64
	pts := p.Points()
	i := 0
	for _, v := range p.Verbs() {
		switch v {
		case PathMoveTo, PathLineTo:
			x, y := devicePoint(pts[i])
			out = append(out, [2]float64{x, y})
		case PathCurveTo:
			x, y := devicePoint(pts[i+2])
			out = append(out, [2]float64{x, y})
		}
		i += v.pointCount()
	}
	return out
}

func TestArcDirectionRoundTrip(t *testing.T) {
	fwd := newTestContext(t, WithTolerance(1e-4))
	fwd.Arc(0, 0, 1, 0, math.Pi/2)
	forward := arcEndpoints(fwd.CurrentPath())

	rev := newTestContext(t, WithTolerance(1e-4))
	rev.ArcNegative(0, 0, 1, math.Pi/2, 0)
	reverse := arcEndpoints(rev.CurrentPath())

	if len(forward) != len(reverse) {
		t.Fatalf("endpoint counts differ: %d forward, %d reverse", len(forward), len(reverse))
	}
	for i, f := range forward {
		r := reverse[len(reverse)-1-i]
		if math.Abs(f[0]-r[0]) > 0.02 || math.Abs(f[1]-r[1]) > 0.02 {
			t.Errorf("endpoint %d: forward %v, reverse mirror %v", i, f, r)
		}
	}
}

func TestArcDegenerateRadius(t *testing.T) {
	for _, radius := range []float64{0, -3} {
		dc := newTestContext(t)
		if err := dc.Arc(5, 5, radius, 0, 1); err != nil {
			t.Fatalf("Arc(radius=%v) = %v", radius, err)
		}
		verbs := dc.CurrentPath().Verbs()
		want := []PathVerb{PathMoveTo, PathLineTo}
		if len(verbs) != 2 || verbs[0] != want[0] || verbs[1] != want[1] {
			t.Fatalf("radius %v: verbs = %v, want %v", radius, verbs, want)
		}
		for _, p := range dc.CurrentPath().Points() {
			x, y := devicePoint(p)
			if math.Abs(x-5) > 0.02 || math.Abs(y-5) > 0.02 {
				t.Errorf("radius %v: point (%v, %v), want center (5, 5)", radius, x, y)
			}
		}
	}
}

func TestArcExcessTurnsCapped(t *testing.T) {
	dc := newTestContext(t)
	// Two turns past the cap plus a quarter. The cap keeps maxFullCircles
	// full turns and the residual quarter, so the sweep stays finite and
	// ends where a plain quarter arc would.
	sweep := 2*math.Pi*(maxFullCircles+2) + math.Pi/2
	if err := dc.Arc(0, 0, 1, 0, sweep); err != nil {
		t.Fatalf("Arc() = %v", err)
	}
	n := len(dc.CurrentPath().Verbs())
	if n < 2*2*maxFullCircles {
		t.Errorf("capped arc produced %d verbs, want the retained turns", n)
	}
	if n > 1<<21 {
		t.Errorf("capped arc produced %d verbs, sweep not capped", n)
	}
	x, y, ok := dc.CurrentPoint()
	if !ok {
		t.Fatal("no current point after arc")
	}
	if math.Abs(x) > 1e-6 || math.Abs(y-1) > 1e-6 {
		t.Errorf("endpoint = (%v, %v), want (0, 1)", x, y)
	}
}

// cubicAt evaluates a cubic Bézier at parameter u.
func cubicAt(p0, c1, c2, p1 [2]float64, u float64) (float64, float64) {
	v := 1 - u
	b0 := v * v * v
	b1 := 3 * v * v * u
	b2 := 3 * v * u * u
	b3 := u * u * u
	x := b0*p0[0] + b1*c1[0] + b2*c2[0] + b3*p1[0]
	y := b0*p0[1] + b1*c1[1] + b2*c2[1] + b3*p1[1]
	return x, y
}

func BenchmarkArcFullCircle(b *testing.B) {
	dc := NewContext(NewImageSurface(ContentColorAlpha, 512, 512))
	defer dc.Close()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		dc.NewPath()
		dc.Arc(256, 256, 200, 0, 2*math.Pi)
	}
}

func TestArcApproximationWithinTolerance(t *testing.T) {
	const tolerance = 0.01
	dc := newTestContext(t, WithTolerance(tolerance))
	dc.Arc(0, 0, 100, 0, 2*math.Pi)

	p := dc.CurrentPath()
	verbs := p.Verbs()
	pts := p.Points()

	var cur [2]float64
	i := 0
	for _, v := range verbs {
		switch v {
		case PathMoveTo, PathLineTo:
			cur[0], cur[1] = devicePoint(pts[i])
		case PathCurveTo:
			var c1, c2, end [2]float64
			c1[0], c1[1] = devicePoint(pts[i])
			c2[0], c2[1] = devicePoint(pts[i+1])
			end[0], end[1] = devicePoint(pts[i+2])
			for u := 0.0; u <= 1.0; u += 0.0625 {
				x, y := cubicAt(cur, c1, c2, end, u)
				r := math.Hypot(x, y)
				// Allow for fixed-point rounding of the control points.
				if math.Abs(r-100) > tolerance+0.05 {
					t.Fatalf("point (%v, %v) at radius %v, want 100 ± %v", x, y, r, tolerance)
				}
			}
			cur = end
		}
		i += v.pointCount()
	}
}
