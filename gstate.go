package ink

import (
	"github.com/gogpu/ink/internal/clip"
	"github.com/gogpu/ink/text"
)

// Graphics-state defaults, matching the conventional 2D-context values.
const (
	defaultTolerance = 0.1
	defaultOpacity   = 1.0
	defaultFillRule  = FillRuleWinding
	defaultOperator  = OperatorOver
	defaultFontSize  = 10.0

	// toleranceMinimum is one fixed-point step: a finer tolerance than
	// the coordinate resolution cannot be honoured.
	toleranceMinimum = 1.0 / 64
)

// gstate is one snapshot of drawing state at a given save depth. Value
// semantics: Save copies the struct, bumping reference counts on the
// shared clip and cloning the dash array; everything else is either a
// plain value or an immutable shared reference (pattern, font face,
// target surface).
type gstate struct {
	matrix  Matrix
	inverse Matrix

	tolerance float64
	antialias Antialias
	operator  Operator
	opacity   float64
	fillRule  FillRule
	stroke    Stroke

	clip     *clip.Clip
	source   Pattern
	face     *text.Face
	fontSize float64
	target   Surface

	// isGroup marks a state pushed by PushGroup; it must be unwound by
	// PopGroup, never by Restore.
	isGroup bool
}

// newGState returns the root state bound to the given target.
func newGState(target Surface) gstate {
	return gstate{
		matrix:    Identity(),
		inverse:   Identity(),
		tolerance: defaultTolerance,
		antialias: AntialiasDefault,
		operator:  defaultOperator,
		opacity:   defaultOpacity,
		fillRule:  defaultFillRule,
		stroke:    DefaultStroke(),
		source:    NewSolidPattern(Black),
		fontSize:  defaultFontSize,
		target:    target,
	}
}

// save returns a field-wise copy suitable for pushing: shared references
// get their counts bumped rather than being deep-copied, and the dash
// array is detached.
func (g *gstate) save() gstate {
	s := *g
	s.clip = g.clip.Ref()
	s.stroke = g.stroke.clone()
	s.isGroup = false
	return s
}

// release drops the references held by a popped state.
func (g *gstate) release() {
	g.clip.Unref()
	g.clip = nil
	g.source = nil
	g.face = nil
	g.target = nil
}

// setMatrix installs m and its inverse. The caller has already verified
// invertibility.
func (g *gstate) setMatrix(m, inverse Matrix) {
	g.matrix = m
	g.inverse = inverse
}

// StateSnapshot is the read-only view of the current graphics state that
// backends consume when executing a drawing primitive.
type StateSnapshot struct {
	Matrix        Matrix
	InverseMatrix Matrix
	Tolerance     float64
	Antialias     Antialias
	Operator      Operator
	Opacity       float64
	FillRule      FillRule
	Stroke        Stroke
	Source        Pattern
	FontFace      *text.Face
	Target        Surface
}
