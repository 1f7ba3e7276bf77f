package ink

import (
	"errors"
	"math"
	"testing"
)

func TestNewDash(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		offset  float64
		wantErr error
		wantNil bool
	}{
		{"solid", nil, 0, nil, true},
		{"empty slice is solid", []float64{}, 3, nil, true},
		{"simple", []float64{4, 2}, 0, nil, false},
		{"single element", []float64{5}, 0, nil, false},
		{"zero element allowed", []float64{4, 0, 2}, 0, nil, false},
		{"negative element", []float64{4, -1}, 0, ErrInvalidDash, false},
		{"all zero", []float64{0, 0}, 0, ErrInvalidDash, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDash(tt.lengths, tt.offset)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewDash() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if (d == nil) != tt.wantNil {
				t.Errorf("NewDash() = %v, wantNil %v", d, tt.wantNil)
			}
		})
	}
}

func TestDashDetachedFromInput(t *testing.T) {
	lengths := []float64{4, 2}
	d, err := NewDash(lengths, 0)
	if err != nil {
		t.Fatal(err)
	}
	lengths[0] = 99
	if got := d.Lengths()[0]; got != 4 {
		t.Errorf("dash aliases caller slice: lengths[0] = %v, want 4", got)
	}
}

func TestDashPatternLength(t *testing.T) {
	tests := []struct {
		name    string
		lengths []float64
		want    float64
	}{
		{"even count", []float64{4, 2}, 6},
		// An odd count repeats to alternate on/off, doubling the period.
		{"odd count", []float64{5}, 10},
		{"odd triple", []float64{1, 2, 3}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDash(tt.lengths, 0)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.PatternLength(); got != tt.want {
				t.Errorf("PatternLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashNormalizedOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   float64
	}{
		{"zero", 0, 0},
		{"in range", 3, 3},
		{"wraps", 8, 2},
		{"negative wraps", -1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDash([]float64{4, 2}, tt.offset)
			if err != nil {
				t.Fatal(err)
			}
			if got := d.NormalizedOffset(); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("NormalizedOffset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDashClone(t *testing.T) {
	d, err := NewDash([]float64{1, 2}, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	c := d.Clone()
	if c == d {
		t.Fatal("Clone() returned the receiver")
	}
	if c.Offset() != d.Offset() || c.Count() != d.Count() {
		t.Errorf("clone differs: %v vs %v", c, d)
	}
}
