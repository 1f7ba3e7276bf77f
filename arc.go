package ink

import "math"

// Circular arcs are approximated by cubic Bézier segments. Each segment
// spans at most the angle for which the approximation error, relative to
// the radius, stays below the current tolerance.

// arcErrorNormalized is the maximum radial error of a single Bézier
// segment spanning the given angle, as a fraction of the radius.
func arcErrorNormalized(angle float64) float64 {
	s := math.Sin(angle / 4)
	c := math.Cos(angle / 4)
	return 2.0 / 27.0 * (s * s * s * s * s * s) / (c * c)
}

func arcMaxAngleForToleranceNormalized(tolerance float64) float64 {
	// Precomputed errors for angle = π/1 .. π/11.
	table := [...]struct {
		angle float64
		err   float64
	}{
		{math.Pi / 1, 0.0185185185185185036127},
		{math.Pi / 2, 0.000272567143730179811158},
		{math.Pi / 3, 2.38647043651461047433e-05},
		{math.Pi / 4, 4.2455377443222443279e-06},
		{math.Pi / 5, 1.11281001494389081528e-06},
		{math.Pi / 6, 3.72662000942734705475e-07},
		{math.Pi / 7, 1.47783685574284411325e-07},
		{math.Pi / 8, 6.63240432022601149057e-08},
		{math.Pi / 9, 3.2715520137536980553e-08},
		{math.Pi / 10, 1.73863223499021216974e-08},
		{math.Pi / 11, 9.81410988043554039085e-09},
	}
	for _, e := range table {
		if e.err < tolerance {
			return e.angle
		}
	}

	// Tighter tolerances than the table covers are rare; iterate.
	for i := len(table); ; i++ {
		angle := math.Pi / float64(i)
		if arcErrorNormalized(angle) < tolerance {
			return angle
		}
	}
}

func (c *Context) arcSegmentsNeeded(angle, radius float64) int {
	// The tolerance is in device units; scale it by the major axis of
	// the transformed circle to compare against the normalized error.
	major := c.top().matrix.TransformedCircleMajorAxis(radius)
	maxAngle := arcMaxAngleForToleranceNormalized(c.top().tolerance / major)
	return int(math.Ceil(math.Abs(angle) / maxAngle))
}

// arcSegment adds a single Bézier segment approximating the arc from
// angleA to angleB.
func (c *Context) arcSegment(xc, yc, radius, angleA, angleB float64) {
	rSinA := radius * math.Sin(angleA)
	rCosA := radius * math.Cos(angleA)
	rSinB := radius * math.Sin(angleB)
	rCosB := radius * math.Cos(angleB)

	h := 4.0 / 3.0 * math.Tan((angleB-angleA)/4.0)

	c.CurveTo(
		xc+rCosA-h*rSinA, yc+rSinA+h*rCosA,
		xc+rCosB+h*rSinB, yc+rSinB-h*rCosB,
		xc+rCosB, yc+rSinB,
	)
}

const maxFullCircles = 65536

func (c *Context) arcInDirection(xc, yc, radius, angleMin, angleMax float64, forward bool) {
	if !(angleMax >= angleMin) {
		return
	}

	// Cap runaway sweeps at maxFullCircles full turns plus the residual.
	if angleMax-angleMin > 2*math.Pi*maxFullCircles {
		angleMax = math.Mod(angleMax-angleMin, 2*math.Pi)
		angleMin = math.Mod(angleMin, 2*math.Pi)
		angleMax += angleMin + 2*math.Pi*maxFullCircles
	}

	// Recurse by halves until the sweep fits in half a turn.
	if angleMax-angleMin > math.Pi {
		angleMid := angleMin + (angleMax-angleMin)/2.0
		if forward {
			c.arcInDirection(xc, yc, radius, angleMin, angleMid, forward)
			c.arcInDirection(xc, yc, radius, angleMid, angleMax, forward)
		} else {
			c.arcInDirection(xc, yc, radius, angleMid, angleMax, forward)
			c.arcInDirection(xc, yc, radius, angleMin, angleMid, forward)
		}
		return
	}

	if angleMax == angleMin {
		// Degenerate sweep still pins the current point on the circle.
		c.LineTo(xc+radius*math.Cos(angleMin), yc+radius*math.Sin(angleMin))
		return
	}

	segments := c.arcSegmentsNeeded(angleMax-angleMin, radius)
	step := (angleMax - angleMin) / float64(segments)

	var angle float64
	if forward {
		angle = angleMin
	} else {
		angle = angleMax
		step = -step
	}

	// Join from the current point, or start the subpath here.
	c.LineTo(xc+radius*math.Cos(angle), yc+radius*math.Sin(angle))

	for i := 0; i < segments-1; i++ {
		c.arcSegment(xc, yc, radius, angle, angle+step)
		angle += step
	}

	if forward {
		c.arcSegment(xc, yc, radius, angle, angleMax)
	} else {
		c.arcSegment(xc, yc, radius, angle, angleMin)
	}
}

// Arc adds a circular arc of the given radius, centered at (xc, yc),
// from angle1 to angle2 in the direction of increasing angles. If there
// is a current point, a line joins it to the arc's start. Angles are in
// radians; angle2 smaller than angle1 is advanced by full turns until it
// is not.
//
// A non-positive radius degenerates to a move/line to the center, so
// the current point still ends up where callers expect.
func (c *Context) Arc(xc, yc, radius, angle1, angle2 float64) error {
	if c.err != nil {
		return c.err
	}
	if radius <= 0.0 {
		c.LineTo(xc, yc)
		c.LineTo(xc, yc)
		return c.err
	}
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}
	c.arcInDirection(xc, yc, radius, angle1, angle2, true)
	return c.err
}

// ArcNegative is Arc in the direction of decreasing angles: angle2
// greater than angle1 is decreased by full turns until it is not.
func (c *Context) ArcNegative(xc, yc, radius, angle1, angle2 float64) error {
	if c.err != nil {
		return c.err
	}
	if radius <= 0.0 {
		c.LineTo(xc, yc)
		c.LineTo(xc, yc)
		return c.err
	}
	for angle2 > angle1 {
		angle2 -= 2 * math.Pi
	}
	c.arcInDirection(xc, yc, radius, angle2, angle1, false)
	return c.err
}
