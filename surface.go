package ink

import "image"

// Surface is a render target as seen by the device-independent core.
// The core never touches pixels; it only needs a target's extents and
// bounded-ness (for group sizing), scratch-surface creation (for
// PushGroup) and device-offset metadata (for coordinate redirection).
// Rendering backends provide richer implementations.
type Surface interface {
	// Content reports which channels the surface carries.
	Content() Content

	// Extents returns the surface extents in device pixels and whether
	// the surface is bounded at all. Unbounded surfaces (recording
	// targets) return false.
	Extents() (image.Rectangle, bool)

	// DeviceOffset returns the translation from the surface's logical
	// coordinate space to its backing store.
	DeviceOffset() (x, y float64)

	// SetDeviceOffset changes the device offset.
	SetDeviceOffset(x, y float64)

	// DeviceScale returns the scale from logical to backing pixels.
	DeviceScale() (sx, sy float64)

	// SetDeviceScale changes the logical-to-backing scale.
	SetDeviceScale(sx, sy float64)

	// CreateScratch creates a compatible intermediate surface for group
	// rendering, cleared to transparent.
	CreateScratch(content Content, width, height int) (Surface, error)

	// Finish marks the surface as complete; further use fails with
	// ErrSurfaceFinished.
	Finish()

	// Finished reports whether Finish has been called.
	Finished() bool
}

// baseSurface carries the metadata shared by the in-package surface
// implementations.
type baseSurface struct {
	content  Content
	offsetX  float64
	offsetY  float64
	scaleX   float64
	scaleY   float64
	finished bool
}

func (s *baseSurface) Content() Content { return s.content }

func (s *baseSurface) DeviceOffset() (float64, float64) { return s.offsetX, s.offsetY }

func (s *baseSurface) SetDeviceOffset(x, y float64) {
	s.offsetX = x
	s.offsetY = y
}

func (s *baseSurface) DeviceScale() (float64, float64) { return s.scaleX, s.scaleY }

// SetDeviceScale changes the logical-to-backing scale.
func (s *baseSurface) SetDeviceScale(sx, sy float64) {
	s.scaleX = sx
	s.scaleY = sy
}

func (s *baseSurface) Finish() { s.finished = true }

func (s *baseSurface) Finished() bool { return s.finished }

// ImageSurface is a bounded in-memory target. The core tracks only its
// geometry; pixel storage belongs to the rendering backend that wraps
// it.
type ImageSurface struct {
	baseSurface
	width  int
	height int
}

// NewImageSurface creates a bounded surface of the given size.
func NewImageSurface(content Content, width, height int) *ImageSurface {
	return &ImageSurface{
		baseSurface: baseSurface{content: content, scaleX: 1, scaleY: 1},
		width:       width,
		height:      height,
	}
}

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() int { return s.height }

// Extents implements Surface.
func (s *ImageSurface) Extents() (image.Rectangle, bool) {
	return image.Rect(0, 0, s.width, s.height), true
}

// CreateScratch implements Surface.
func (s *ImageSurface) CreateScratch(content Content, width, height int) (Surface, error) {
	if s.finished {
		return nil, ErrSurfaceFinished
	}
	return NewImageSurface(content, width, height), nil
}

// RecordingSurface is an unbounded target used as the group fallback
// when the parent target cannot report extents. Backends replay the
// recorded operations against a concrete target.
type RecordingSurface struct {
	baseSurface
}

// NewRecordingSurface creates an unbounded recording target.
func NewRecordingSurface(content Content) *RecordingSurface {
	return &RecordingSurface{
		baseSurface: baseSurface{content: content, scaleX: 1, scaleY: 1},
	}
}

// Extents implements Surface; a recording surface is unbounded.
func (s *RecordingSurface) Extents() (image.Rectangle, bool) {
	return image.Rectangle{}, false
}

// CreateScratch implements Surface.
func (s *RecordingSurface) CreateScratch(content Content, width, height int) (Surface, error) {
	if s.finished {
		return nil, ErrSurfaceFinished
	}
	return NewImageSurface(content, width, height), nil
}
