package ink

import (
	"math"

	"github.com/gogpu/ink/internal/arr"
)

// Dash defines a dash pattern for stroking: alternating on/off lengths
// in user-space units plus a starting offset into the pattern.
type Dash struct {
	lengths arr.Array[float64]
	offset  float64
}

// NewDash creates a dash pattern. A negative length or an array whose
// elements are all zero yields ErrInvalidDash. An empty array is valid
// and means a solid line (nil Dash).
func NewDash(lengths []float64, offset float64) (*Dash, error) {
	if len(lengths) == 0 {
		return nil, nil
	}
	allZero := true
	for _, l := range lengths {
		if l < 0 {
			return nil, ErrInvalidDash
		}
		if l > 0 {
			allZero = false
		}
	}
	if allZero {
		return nil, ErrInvalidDash
	}

	d := &Dash{offset: offset}
	if err := d.lengths.AppendMany(lengths...); err != nil {
		return nil, err
	}
	return d, nil
}

// Lengths returns the dash/gap lengths. Callers must not modify it.
func (d *Dash) Lengths() []float64 {
	if d == nil {
		return nil
	}
	return d.lengths.Slice()
}

// Offset returns the starting offset into the pattern.
func (d *Dash) Offset() float64 {
	if d == nil {
		return 0
	}
	return d.offset
}

// Count returns the number of entries in the dash array.
func (d *Dash) Count() int {
	if d == nil {
		return 0
	}
	return d.lengths.Len()
}

// PatternLength returns the length of one full pattern cycle. Arrays
// with an odd number of elements repeat to restore on/off phase, so
// their cycle is twice the element sum.
func (d *Dash) PatternLength() float64 {
	if d == nil || d.lengths.Len() == 0 {
		return 0
	}
	var total float64
	for _, l := range d.lengths.Slice() {
		total += l
	}
	if d.lengths.Len()%2 != 0 {
		total *= 2
	}
	return total
}

// NormalizedOffset returns the offset wrapped into one pattern cycle.
func (d *Dash) NormalizedOffset() float64 {
	period := d.PatternLength()
	if period <= 0 {
		return 0
	}
	off := math.Mod(d.Offset(), period)
	if off < 0 {
		off += period
	}
	return off
}

// Clone creates a deep copy of the Dash.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	lengths, err := d.lengths.Clone()
	if err != nil {
		// Cloning never grows beyond the source size; an overflow here
		// would already have failed when the source was built.
		return nil
	}
	return &Dash{lengths: lengths, offset: d.offset}
}
