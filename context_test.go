package ink

import (
	"errors"
	"math"
	"testing"
)

func TestContextDefaults(t *testing.T) {
	dc := newTestContext(t)

	if got := dc.Tolerance(); got != 0.1 {
		t.Errorf("Tolerance() = %v, want 0.1", got)
	}
	if got := dc.LineWidth(); got != 2.0 {
		t.Errorf("LineWidth() = %v, want 2.0", got)
	}
	if got := dc.MiterLimit(); got != 10.0 {
		t.Errorf("MiterLimit() = %v, want 10.0", got)
	}
	if got := dc.LineCap(); got != LineCapButt {
		t.Errorf("LineCap() = %v, want LineCapButt", got)
	}
	if got := dc.LineJoin(); got != LineJoinMiter {
		t.Errorf("LineJoin() = %v, want LineJoinMiter", got)
	}
	if got := dc.FillRule(); got != FillRuleWinding {
		t.Errorf("FillRule() = %v, want FillRuleWinding", got)
	}
	if got := dc.GetOperator(); got != OperatorOver {
		t.Errorf("GetOperator() = %v, want OperatorOver", got)
	}
	if got := dc.Opacity(); got != 1.0 {
		t.Errorf("Opacity() = %v, want 1.0", got)
	}
	if !dc.GetMatrix().IsIdentity() {
		t.Errorf("GetMatrix() = %+v, want identity", dc.GetMatrix())
	}
	if dc.Dash() != nil {
		t.Error("Dash() != nil on a fresh context")
	}
	if dc.CurrentClip() != nil {
		t.Error("CurrentClip() != nil on a fresh context")
	}
	solid, ok := dc.Source().(*SolidPattern)
	if !ok || solid.Color != Black {
		t.Errorf("Source() = %#v, want opaque black solid", dc.Source())
	}
}

func TestContextSaveRestore(t *testing.T) {
	dc := newTestContext(t)

	dc.SetLineWidth(7)
	if err := dc.Save(); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	dc.SetLineWidth(1)
	dc.SetFillRule(FillRuleEvenOdd)
	dc.Translate(10, 10)

	if err := dc.Restore(); err != nil {
		t.Fatalf("Restore() = %v", err)
	}
	if got := dc.LineWidth(); got != 7 {
		t.Errorf("LineWidth() after restore = %v, want 7", got)
	}
	if got := dc.FillRule(); got != FillRuleWinding {
		t.Errorf("FillRule() after restore = %v, want winding", got)
	}
	if !dc.GetMatrix().IsIdentity() {
		t.Errorf("matrix after restore = %+v, want identity", dc.GetMatrix())
	}
}

func TestContextOverRestore(t *testing.T) {
	dc := newTestContext(t)
	dc.SetLineWidth(3)

	err := dc.Restore()
	if !errors.Is(err, ErrInvalidRestore) {
		t.Fatalf("Restore() at root = %v, want ErrInvalidRestore", err)
	}

	// The root state survives intact.
	if dc.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", dc.Depth())
	}
	if got := dc.LineWidth(); got != 3 {
		t.Errorf("LineWidth() = %v, want 3", got)
	}

	// But the context is poisoned.
	if err := dc.MoveTo(0, 0); !errors.Is(err, ErrInvalidRestore) {
		t.Errorf("MoveTo() after failed restore = %v, want ErrInvalidRestore", err)
	}
	if err := dc.Err(); !errors.Is(err, ErrInvalidRestore) {
		t.Errorf("Err() = %v, want ErrInvalidRestore", err)
	}
}

func TestContextStickyFirstError(t *testing.T) {
	dc := newTestContext(t)

	first := dc.Restore()
	second := dc.SetDash([]float64{-1}, 0)
	if !errors.Is(second, ErrInvalidRestore) {
		t.Errorf("second failure returned %v, want the first error", second)
	}
	if !errors.Is(dc.Err(), first) {
		t.Errorf("Err() = %v, want %v", dc.Err(), first)
	}

	// NewPath does not clear the error.
	dc.NewPath()
	if dc.Err() == nil {
		t.Error("NewPath() cleared the sticky error")
	}
}

func TestContextSingularTransform(t *testing.T) {
	dc := newTestContext(t)
	dc.Translate(5, 5)
	before := dc.GetMatrix()

	if err := dc.Scale(0, 0); !errors.Is(err, ErrInvalidMatrix) {
		t.Fatalf("Scale(0, 0) = %v, want ErrInvalidMatrix", err)
	}
	if got := dc.GetMatrix(); got != before {
		t.Errorf("matrix changed on failed transform: %+v, want %+v", got, before)
	}
}

func TestContextSetMatrixSingular(t *testing.T) {
	dc := newTestContext(t)
	if err := dc.SetMatrix(Matrix{}); !errors.Is(err, ErrInvalidMatrix) {
		t.Errorf("SetMatrix(zero) = %v, want ErrInvalidMatrix", err)
	}
}

func TestContextCurrentPointUserSpace(t *testing.T) {
	dc := newTestContext(t)
	dc.Translate(10, 20)
	dc.MoveTo(1, 2)

	x, y, ok := dc.CurrentPoint()
	if !ok {
		t.Fatal("CurrentPoint() reported no current point")
	}
	if math.Abs(x-1) > 1e-9 || math.Abs(y-2) > 1e-9 {
		t.Errorf("CurrentPoint() = (%v, %v), want (1, 2)", x, y)
	}

	// And the stored device point carries the translation.
	cur, _ := dc.CurrentPath().CurrentPoint()
	dx, dy := devicePoint(cur)
	if dx != 11 || dy != 22 {
		t.Errorf("device current point = (%v, %v), want (11, 22)", dx, dy)
	}
}

func TestContextRelativeOpsRequireCurrentPoint(t *testing.T) {
	dc := newTestContext(t)
	if err := dc.RelLineTo(1, 1); !errors.Is(err, ErrNoCurrentPoint) {
		t.Errorf("RelLineTo() = %v, want ErrNoCurrentPoint", err)
	}
}

func TestContextRelativeOps(t *testing.T) {
	dc := newTestContext(t)
	dc.Scale(2, 2)
	dc.MoveTo(1, 1)
	dc.RelLineTo(3, 0)

	// The delta is scaled: device current moves from (2, 2) to (8, 2).
	cur, _ := dc.CurrentPath().CurrentPoint()
	x, y := devicePoint(cur)
	if x != 8 || y != 2 {
		t.Errorf("device point after RelLineTo = (%v, %v), want (8, 2)", x, y)
	}
}

func TestContextCoordinateRoundTrip(t *testing.T) {
	dc := newTestContext(t)
	dc.Translate(30, 40)
	dc.Rotate(0.3)
	dc.Scale(2, 5)

	ux, uy := 12.5, -7.25
	dx, dy := dc.UserToDevice(ux, uy)
	bx, by := dc.DeviceToUser(dx, dy)
	if math.Abs(bx-ux) > 1e-9 || math.Abs(by-uy) > 1e-9 {
		t.Errorf("round trip (%v, %v) -> (%v, %v)", ux, uy, bx, by)
	}

	vx, vy := dc.UserToDeviceDistance(1, 0)
	wx, wy := dc.DeviceToUserDistance(vx, vy)
	if math.Abs(wx-1) > 1e-9 || math.Abs(wy) > 1e-9 {
		t.Errorf("distance round trip gave (%v, %v), want (1, 0)", wx, wy)
	}
}

func TestContextToleranceClamped(t *testing.T) {
	dc := newTestContext(t)
	dc.SetTolerance(1e-6)
	if got := dc.Tolerance(); got != 1.0/64 {
		t.Errorf("Tolerance() = %v, want clamp to %v", got, 1.0/64)
	}

	dc2 := newTestContext(t, WithTolerance(0))
	if got := dc2.Tolerance(); got != 1.0/64 {
		t.Errorf("WithTolerance(0) gave %v, want clamp to %v", got, 1.0/64)
	}
}

func TestContextHairline(t *testing.T) {
	dc := newTestContext(t)
	dc.SetLineWidth(5)
	dc.SetHairline(true)

	if !dc.Hairline() {
		t.Fatal("Hairline() = false after SetHairline(true)")
	}
	if got := dc.Snapshot().Stroke.Width; got != 0 {
		t.Errorf("stroke width in hairline mode = %v, want 0", got)
	}

	// Width set while hairline is on becomes the restore value.
	dc.SetLineWidth(9)
	dc.SetHairline(false)
	if got := dc.LineWidth(); got != 9 {
		t.Errorf("LineWidth() after leaving hairline = %v, want 9", got)
	}
}

func TestContextSetDash(t *testing.T) {
	dc := newTestContext(t)
	if err := dc.SetDash([]float64{4, 2}, 1); err != nil {
		t.Fatalf("SetDash() = %v", err)
	}
	if got := dc.Dash().Count(); got != 2 {
		t.Errorf("Dash().Count() = %d, want 2", got)
	}

	// Clearing back to solid.
	if err := dc.SetDash(nil, 0); err != nil {
		t.Fatalf("SetDash(nil) = %v", err)
	}
	if dc.Dash() != nil {
		t.Error("Dash() != nil after clearing")
	}
}

func TestContextSourceSetters(t *testing.T) {
	dc := newTestContext(t)
	dc.SetSourceRGBA(0.5, 0.25, 0.125, 0.5)
	solid, ok := dc.Source().(*SolidPattern)
	if !ok {
		t.Fatalf("Source() = %T, want *SolidPattern", dc.Source())
	}
	want := RGBA{R: 0.5, G: 0.25, B: 0.125, A: 0.5}
	if solid.Color != want {
		t.Errorf("Source color = %+v, want %+v", solid.Color, want)
	}
}

func TestContextPathExtents(t *testing.T) {
	dc := newTestContext(t)
	dc.Translate(100, 100)
	dc.Rectangle(0, 0, 10, 20)

	x0, y0, x1, y1 := dc.PathExtents()
	if math.Abs(x0) > 1e-9 || math.Abs(y0) > 1e-9 || math.Abs(x1-10) > 1e-9 || math.Abs(y1-20) > 1e-9 {
		t.Errorf("PathExtents() = (%v, %v, %v, %v), want (0, 0, 10, 20)", x0, y0, x1, y1)
	}
}

func TestContextAppendPath(t *testing.T) {
	dc := newTestContext(t)
	dc.Rectangle(0, 0, 4, 4)
	saved := dc.CopyPath()

	dc.NewPath()
	if !dc.CurrentPath().Empty() {
		t.Fatal("NewPath() left segments behind")
	}
	dc.AppendPath(saved)
	if got := len(dc.CurrentPath().Verbs()); got != len(saved.Verbs()) {
		t.Errorf("AppendPath() restored %d verbs, want %d", got, len(saved.Verbs()))
	}
}

func TestContextCloseUnwindsNesting(t *testing.T) {
	dc := NewContext(NewImageSurface(ContentColorAlpha, 16, 16))
	dc.Save()
	dc.PushGroup()
	dc.Save()
	if err := dc.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}

func TestContextFinishedTarget(t *testing.T) {
	target := NewImageSurface(ContentColorAlpha, 16, 16)
	target.Finish()
	dc := NewContext(target)
	defer dc.Close()
	if err := dc.Err(); !errors.Is(err, ErrSurfaceFinished) {
		t.Errorf("Err() = %v, want ErrSurfaceFinished", err)
	}
}
