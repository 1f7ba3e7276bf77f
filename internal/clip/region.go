package clip

import (
	"image"
	"slices"

	"github.com/gogpu/ink/internal/arr"
)

// Region is a canonical set of non-overlapping, pixel-aligned rectangles.
// Rectangles are organised in y-bands: sorted by Min.Y then Min.X, with
// no two rectangles overlapping and vertically adjacent bands with
// identical x-spans merged. Two regions covering the same area therefore
// have identical rectangle lists.
type Region struct {
	rects []image.Rectangle
}

// NewRegion canonicalises the union of the given rectangles.
// Empty rectangles are ignored.
func NewRegion(rects []image.Rectangle) (*Region, error) {
	live := make([]image.Rectangle, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			live = append(live, r.Canon())
		}
	}
	if len(live) == 0 {
		return &Region{}, nil
	}

	// Band edges: every distinct Min.Y/Max.Y.
	edges := make([]int, 0, 2*len(live))
	for _, r := range live {
		edges = append(edges, r.Min.Y, r.Max.Y)
	}
	slices.Sort(edges)
	edges = slices.Compact(edges)

	var out arr.Array[image.Rectangle]
	bandStart := -1 // index of first rect in the previous band, -1 if none
	for i := 0; i+1 < len(edges); i++ {
		y0, y1 := edges[i], edges[i+1]

		// Collect and merge x intervals of rects spanning this band.
		type span struct{ x0, x1 int }
		var spans []span
		for _, r := range live {
			if r.Min.Y <= y0 && r.Max.Y >= y1 {
				spans = append(spans, span{r.Min.X, r.Max.X})
			}
		}
		if len(spans) == 0 {
			continue
		}
		slices.SortFunc(spans, func(a, b span) int { return a.x0 - b.x0 })
		merged := spans[:1]
		for _, s := range spans[1:] {
			last := &merged[len(merged)-1]
			if s.x0 <= last.x1 {
				if s.x1 > last.x1 {
					last.x1 = s.x1
				}
			} else {
				merged = append(merged, s)
			}
		}

		// Coalesce with the previous band when x-spans match exactly.
		if bandStart >= 0 {
			prev := out.Slice()[bandStart:]
			if len(prev) == len(merged) && prev[0].Max.Y == y0 {
				same := true
				for j, s := range merged {
					if prev[j].Min.X != s.x0 || prev[j].Max.X != s.x1 {
						same = false
						break
					}
				}
				if same {
					for j := range prev {
						prev[j].Max.Y = y1
					}
					continue
				}
			}
		}

		bandStart = out.Len()
		for _, s := range merged {
			if err := out.Append(image.Rect(s.x0, y0, s.x1, y1)); err != nil {
				return nil, err
			}
		}
	}
	return &Region{rects: out.Slice()}, nil
}

// Rects returns the canonical rectangle list. Callers must not modify it.
func (r *Region) Rects() []image.Rectangle {
	if r == nil {
		return nil
	}
	return r.rects
}

// NumRects returns the number of rectangles in the region.
func (r *Region) NumRects() int {
	if r == nil {
		return 0
	}
	return len(r.rects)
}

// Extents returns the bounding rectangle of the region.
func (r *Region) Extents() image.Rectangle {
	if r == nil || len(r.rects) == 0 {
		return image.Rectangle{}
	}
	ext := r.rects[0]
	for _, rc := range r.rects[1:] {
		ext = ext.Union(rc)
	}
	return ext
}

// ContainsPoint reports whether the pixel (x, y) is inside the region.
func (r *Region) ContainsPoint(x, y int) bool {
	if r == nil {
		return false
	}
	p := image.Pt(x, y)
	for _, rc := range r.rects {
		if p.In(rc) {
			return true
		}
	}
	return false
}

// Equal reports whether two regions cover the same area. Canonical form
// makes this a simple list comparison.
func (r *Region) Equal(o *Region) bool {
	return slices.Equal(r.Rects(), o.Rects())
}
