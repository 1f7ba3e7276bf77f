// Package clip implements the accumulated clip model: an immutable,
// reference-counted intersection of clip boxes and residual clip paths,
// with lazy extraction of a canonical pixel region.
//
// A nil *Clip means "unclipped". Clips are shared across graphics-state
// snapshots; mutation goes through Intersect, which clones shared clips
// before changing them (copy-on-write). Reference counts are atomic so
// that contexts on different goroutines may share clip objects, but a
// clip's content is never mutated in place once shared.
package clip

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ink/internal/arr"
	"github.com/gogpu/ink/internal/fixedpoint"
)

// FillRule selects the inside test used when a clip path is rasterised.
type FillRule uint8

const (
	Winding FillRule = iota
	EvenOdd
)

// Antialias is the edge-rendering hint recorded with a clip path.
type Antialias uint8

const (
	AntialiasDefault Antialias = iota
	AntialiasNone
	AntialiasGray
	AntialiasSubpixel
)

// ClipPath is one non-rectilinear component of the accumulated clip,
// together with the parameters a backend needs to rasterise it.
type ClipPath struct {
	Path      Path
	FillRule  FillRule
	Tolerance float64
	Antialias Antialias
}

// Clip is the intersection of every clip operation applied since the last
// reset. The covered area is the union of Boxes, further intersected with
// each entry of Paths.
type Clip struct {
	refs atomic.Int32

	paths []ClipPath // residual non-rectilinear components

	boxList  arr.Array[fixedpoint.Box] // reduced box set (union = boxed area)
	haveBox  bool
	extents  fixedpoint.Box
	isEmpty  bool
	regionMu sync.Mutex
	region   *Region // lazily built, nil until first successful Region call
}

func newClip() *Clip {
	c := &Clip{}
	c.refs.Store(1)
	return c
}

// Ref bumps the reference count and returns c. Ref of nil is nil.
func (c *Clip) Ref() *Clip {
	if c == nil {
		return nil
	}
	c.refs.Add(1)
	return c
}

// Unref drops one reference. The object is reclaimed by the collector
// once unreachable; the count exists to drive copy-on-write.
func (c *Clip) Unref() {
	if c == nil {
		return
	}
	c.refs.Add(-1)
}

// Shared reports whether more than one reference is extant.
func (c *Clip) Shared() bool {
	return c != nil && c.refs.Load() > 1
}

// clone returns a private deep copy with a reference count of one.
// The cached region is deliberately not carried over.
func (c *Clip) clone() (*Clip, error) {
	d := newClip()
	d.haveBox = c.haveBox
	d.extents = c.extents
	d.isEmpty = c.isEmpty
	boxes, err := c.boxList.Clone()
	if err != nil {
		return nil, err
	}
	d.boxList = boxes
	if len(c.paths) > 0 {
		d.paths = make([]ClipPath, len(c.paths))
		copy(d.paths, c.paths)
	}
	return d, nil
}

// writable returns c itself when exclusively owned, or a clone when
// shared. A nil receiver produces a fresh unbounded clip covering all
// space (one box over the full coordinate range). The caller keeps its
// reference on c either way; when cloned is true the caller must Unref
// c once the mutation has succeeded.
func (c *Clip) writable() (d *Clip, cloned bool, err error) {
	if c == nil {
		d := newClip()
		d.haveBox = false
		return d, false, nil
	}
	if !c.Shared() {
		// Invalidate the cached region before in-place mutation.
		c.regionMu.Lock()
		c.region = nil
		c.regionMu.Unlock()
		return c, false, nil
	}
	d, err = c.clone()
	if err != nil {
		return nil, false, err
	}
	return d, true, nil
}

// IntersectBox intersects the clip with an axis-aligned box.
// A nil receiver (unclipped) yields a clip covering exactly the box.
func (c *Clip) IntersectBox(box fixedpoint.Box) (*Clip, error) {
	d, cloned, err := c.writable()
	if err != nil {
		return c, err
	}
	// The original stays referenced until the mutation lands, so a
	// failed intersect leaves the caller's clip intact.
	done := func() *Clip {
		if cloned {
			c.Unref()
		}
		return d
	}
	if box.Empty() {
		d.setEmpty()
		return done(), nil
	}
	if !d.haveBox {
		d.haveBox = true
		d.extents = box
		d.boxList.Truncate(0)
		if err := d.boxList.Append(box); err != nil {
			return c, err
		}
		return done(), nil
	}

	// Reduce the existing box set against the new box. False negatives
	// (keeping a box that a cleverer reduction would drop) are fine;
	// wrongly dropping area is not, so every surviving piece is the
	// literal intersection.
	n := d.boxList.Len()
	w := 0
	boxes := d.boxList.Slice()
	for i := 0; i < n; i++ {
		if r, ok := boxes[i].Intersect(box); ok {
			boxes[w] = r
			w++
		}
	}
	d.boxList.Truncate(w)
	if w == 0 {
		d.setEmpty()
		return done(), nil
	}
	d.recomputeExtents()
	return done(), nil
}

// IntersectPath intersects the clip with the filled region of a path.
// A nil path removes the clip entirely, restoring the unclipped state.
// Paths that reduce to a single axis-aligned box take the box fast path;
// anything else is recorded as a residual path component.
func (c *Clip) IntersectPath(p *Path, fr FillRule, tolerance float64, aa Antialias) (*Clip, error) {
	if p == nil {
		c.Unref()
		return nil, nil
	}
	if box, ok := p.AsBox(); ok {
		return c.IntersectBox(box)
	}

	d, cloned, err := c.writable()
	if err != nil {
		return c, err
	}
	done := func() *Clip {
		if cloned {
			c.Unref()
		}
		return d
	}
	ext := p.Extents()
	if ext.Empty() {
		d.setEmpty()
		return done(), nil
	}
	d.paths = append(d.paths, ClipPath{
		Path:      *p,
		FillRule:  fr,
		Tolerance: tolerance,
		Antialias: aa,
	})
	if !d.haveBox {
		d.haveBox = true
		d.extents = ext
		d.boxList.Truncate(0)
		if err := d.boxList.Append(ext); err != nil {
			return c, err
		}
		return done(), nil
	}
	// The path's bounding box bounds the clipped area even though the
	// path itself stays a residual component.
	r, err := d.IntersectBox(ext)
	if err != nil {
		return c, err
	}
	if cloned {
		c.Unref()
	}
	return r, nil
}

func (c *Clip) setEmpty() {
	c.isEmpty = true
	c.haveBox = true
	c.extents = fixedpoint.Box{}
	c.boxList.Truncate(0)
}

func (c *Clip) recomputeExtents() {
	boxes := c.boxList.Slice()
	if len(boxes) == 0 {
		c.extents = fixedpoint.Box{}
		return
	}
	ext := boxes[0]
	for _, b := range boxes[1:] {
		if b.P0.X < ext.P0.X {
			ext.P0.X = b.P0.X
		}
		if b.P0.Y < ext.P0.Y {
			ext.P0.Y = b.P0.Y
		}
		if b.P1.X > ext.P1.X {
			ext.P1.X = b.P1.X
		}
		if b.P1.Y > ext.P1.Y {
			ext.P1.Y = b.P1.Y
		}
	}
	c.extents = ext
}

// IsEmpty reports whether the clip covers no area at all.
// A nil clip is unclipped, not empty.
func (c *Clip) IsEmpty() bool {
	return c != nil && c.isEmpty
}

// Extents returns the integer bounding rectangle of the clipped area and
// whether the clip bounds anything. A nil clip is unbounded.
func (c *Clip) Extents() (image.Rectangle, bool) {
	if c == nil || !c.haveBox {
		return image.Rectangle{}, false
	}
	if c.isEmpty {
		return image.Rectangle{}, true
	}
	return c.extents.Pixels(), true
}

// ExtentsBox returns the fixed-point bounding box.
func (c *Clip) ExtentsBox() fixedpoint.Box {
	if c == nil {
		return fixedpoint.Box{}
	}
	return c.extents
}

// Boxes returns the reduced box set. The union of these boxes, further
// intersected with every residual path, is the clipped area.
func (c *Clip) Boxes() []fixedpoint.Box {
	if c == nil {
		return nil
	}
	return c.boxList.Slice()
}

// Paths returns the residual non-rectilinear components.
func (c *Clip) Paths() []ClipPath {
	if c == nil {
		return nil
	}
	return c.paths
}

// IsRegion reports whether the clip is exactly expressible as
// pixel-aligned rectangles: no residual path component and every box
// corner an exact integer.
func (c *Clip) IsRegion() bool {
	if c == nil {
		return false
	}
	if len(c.paths) > 0 {
		return false
	}
	for _, b := range c.boxList.Slice() {
		if !b.PixelAligned() {
			return false
		}
	}
	return true
}

// Region returns the canonical non-overlapping rectangle set covering the
// clip, building and caching it on first use. It returns nil (and no
// error) when the clip is not representable as a region. A build failure
// leaves the cache unset so a later call can retry.
func (c *Clip) Region() (*Region, error) {
	if c == nil || !c.IsRegion() {
		return nil, nil
	}
	c.regionMu.Lock()
	defer c.regionMu.Unlock()
	if c.region != nil {
		return c.region, nil
	}
	rects := make([]image.Rectangle, 0, c.boxList.Len())
	for _, b := range c.boxList.Slice() {
		rects = append(rects, b.Pixels())
	}
	r, err := NewRegion(rects)
	if err != nil {
		return nil, err
	}
	c.region = r
	return r, nil
}
