// Package fixedpoint is the boundary between user-space doubles and the
// 26.6 fixed-point device coordinates used for path and clip storage.
//
// The conversion in FromFloat64Clamped is the only place floating point
// crosses into the fixed domain: coordinates are clamped to a range shrunk
// by the caller-supplied slack (typically the current line width) so that
// later stroke-offset arithmetic cannot overflow.
package fixedpoint

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

const (
	// One is the fixed-point representation of 1.0.
	One = fixed.Int26_6(1 << 6)

	// MaxFloat and MinFloat bound the representable coordinate range.
	MaxFloat = float64(math.MaxInt32) / 64
	MinFloat = float64(math.MinInt32) / 64
)

// FromFloat64 converts v to 26.6 fixed point, rounding to nearest.
func FromFloat64(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// FromFloat64Clamped converts v to fixed point after clamping it to the
// representable range shrunk by slack on both ends. Slack is expressed in
// device units; passing the current line width guarantees that offsetting
// the point by half the width stays in range.
func FromFloat64Clamped(v, slack float64) fixed.Int26_6 {
	if v > MaxFloat-slack {
		v = MaxFloat - slack
	} else if v < MinFloat+slack {
		v = MinFloat + slack
	}
	return FromFloat64(v)
}

// ToFloat64 converts a fixed-point value back to a double.
func ToFloat64(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// FromInt converts an integer pixel count to fixed point.
func FromInt(i int) fixed.Int26_6 {
	return fixed.Int26_6(i << 6)
}

// IsInteger reports whether v has no fractional component.
func IsInteger(v fixed.Int26_6) bool {
	return v&(One-1) == 0
}

// Floor returns the greatest integer <= v.
func Floor(v fixed.Int26_6) int { return v.Floor() }

// Ceil returns the smallest integer >= v.
func Ceil(v fixed.Int26_6) int { return v.Ceil() }

// Box is an axis-aligned rectangle with fixed-point corners.
// P0 is the minimum corner, P1 the maximum.
type Box struct {
	P0, P1 fixed.Point26_6
}

// BoxFromRect builds a pixel-aligned Box from an integer rectangle.
func BoxFromRect(r image.Rectangle) Box {
	return Box{
		P0: fixed.Point26_6{X: FromInt(r.Min.X), Y: FromInt(r.Min.Y)},
		P1: fixed.Point26_6{X: FromInt(r.Max.X), Y: FromInt(r.Max.Y)},
	}
}

// Empty reports whether the box covers no area.
func (b Box) Empty() bool {
	return b.P1.X <= b.P0.X || b.P1.Y <= b.P0.Y
}

// Intersect returns the intersection of two boxes and whether it is
// non-empty.
func (b Box) Intersect(o Box) (Box, bool) {
	r := Box{
		P0: fixed.Point26_6{X: maxFixed(b.P0.X, o.P0.X), Y: maxFixed(b.P0.Y, o.P0.Y)},
		P1: fixed.Point26_6{X: minFixed(b.P1.X, o.P1.X), Y: minFixed(b.P1.Y, o.P1.Y)},
	}
	if r.Empty() {
		return Box{}, false
	}
	return r, true
}

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return b.P0.X <= o.P0.X && b.P0.Y <= o.P0.Y &&
		b.P1.X >= o.P1.X && b.P1.Y >= o.P1.Y
}

// PixelAligned reports whether every corner coordinate is an exact
// integer, i.e. the box degenerates to a pixel rectangle with no
// sub-pixel component.
func (b Box) PixelAligned() bool {
	return IsInteger(b.P0.X) && IsInteger(b.P0.Y) &&
		IsInteger(b.P1.X) && IsInteger(b.P1.Y)
}

// Pixels returns the smallest integer rectangle covering the box
// (floor of the minimum corner, ceil of the maximum).
func (b Box) Pixels() image.Rectangle {
	return image.Rect(Floor(b.P0.X), Floor(b.P0.Y), Ceil(b.P1.X), Ceil(b.P1.Y))
}

func minFixed(a, b fixed.Int26_6) fixed.Int26_6 {
	if a < b {
		return a
	}
	return b
}

func maxFixed(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a
	}
	return b
}
