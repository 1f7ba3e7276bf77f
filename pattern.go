package ink

// Pattern is a source of color for drawing operations. The core stores
// and hands patterns to backends; color evaluation happens there.
// Patterns are immutable once set as a source and may be shared across
// contexts and states.
type Pattern interface {
	// PatternMatrix returns the pattern-space transformation.
	PatternMatrix() Matrix
}

// SolidPattern is a single-color source.
type SolidPattern struct {
	Color RGBA
}

// NewSolidPattern creates a solid color pattern.
func NewSolidPattern(color RGBA) *SolidPattern {
	return &SolidPattern{Color: color}
}

// PatternMatrix implements Pattern. Solid sources are position
// independent, so the matrix is always the identity.
func (p *SolidPattern) PatternMatrix() Matrix { return Identity() }

// SurfacePattern sources color from a surface, typically the result of
// a PopGroup. The matrix maps user space at the time the pattern was
// created to pattern space.
type SurfacePattern struct {
	Surface Surface
	matrix  Matrix
}

// NewSurfacePattern creates a pattern sourcing from the given surface.
func NewSurfacePattern(s Surface) *SurfacePattern {
	return &SurfacePattern{Surface: s, matrix: Identity()}
}

// PatternMatrix implements Pattern.
func (p *SurfacePattern) PatternMatrix() Matrix { return p.matrix }

// SetMatrix sets the pattern-space transformation. The matrix must be
// invertible so backends can map device points back into the pattern;
// a singular matrix is rejected with ErrInvalidMatrix.
func (p *SurfacePattern) SetMatrix(m Matrix) error {
	if _, err := m.Invert(); err != nil {
		return err
	}
	p.matrix = m
	return nil
}
