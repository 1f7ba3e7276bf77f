package ink

import (
	"image"

	"github.com/gogpu/ink/internal/fixedpoint"
)

// PushGroup redirects drawing to a temporary transparent surface
// carrying color and alpha. The group ends with PopGroup or
// PopGroupToSource.
func (c *Context) PushGroup() error {
	return c.PushGroupWithContent(ContentColorAlpha)
}

// PushGroupWithContent is PushGroup with an explicit content kind for
// the intermediate surface.
func (c *Context) PushGroupWithContent(content Content) error {
	if c.err != nil {
		return c.err
	}
	g := c.top()
	parent := g.target

	group, ext, err := c.newGroupSurface(parent, content)
	if err != nil {
		return c.setErr(err)
	}

	Logger().Debug("ink: push group", "extents", ext, "content", content)

	// The group state behaves like a save, plus target redirection. It
	// can only be unwound by PopGroup.
	s := g.save()
	s.isGroup = true
	s.target = group
	c.states = append(c.states, s)

	// Shift the pending path so it lands at the same spot on the
	// smaller group surface.
	c.path.Translate(
		-fixedpoint.FromInt(ext.Min.X),
		-fixedpoint.FromInt(ext.Min.Y),
	)
	return nil
}

// newGroupSurface sizes and creates the intermediate surface for a
// group, returning it along with the device extents it covers.
func (c *Context) newGroupSurface(parent Surface, content Content) (Surface, image.Rectangle, error) {
	g := c.top()

	if g.clip.IsEmpty() {
		// Nothing can render; a zero-sized scratch keeps the group
		// machinery uniform without allocating backing store. The
		// parent's offset carries over so the pop-time path shift is
		// zero, matching the zero shift applied at push.
		if parent == nil {
			return NewImageSurface(content, 0, 0), image.Rectangle{}, nil
		}
		group, err := parent.CreateScratch(content, 0, 0)
		if err != nil {
			return nil, image.Rectangle{}, err
		}
		group.SetDeviceOffset(parent.DeviceOffset())
		group.SetDeviceScale(parent.DeviceScale())
		return group, image.Rectangle{}, nil
	}

	var (
		ext     image.Rectangle
		bounded bool
	)
	if parent != nil {
		ext, bounded = parent.Extents()
	}
	if clipExt, ok := g.clip.Extents(); ok {
		if bounded {
			ext = ext.Intersect(clipExt)
		} else {
			ext, bounded = clipExt, true
		}
	}

	if !bounded {
		// No finite bound is known, so record instead of rasterizing.
		rec := NewRecordingSurface(content)
		if parent != nil {
			rec.SetDeviceOffset(parent.DeviceOffset())
			rec.SetDeviceScale(parent.DeviceScale())
		}
		return rec, image.Rectangle{}, nil
	}

	var (
		group Surface
		err   error
	)
	if parent == nil {
		group = NewImageSurface(content, ext.Dx(), ext.Dy())
	} else {
		group, err = parent.CreateScratch(content, ext.Dx(), ext.Dy())
		if err != nil {
			return nil, image.Rectangle{}, err
		}
	}

	if parent != nil {
		offX, offY := parent.DeviceOffset()
		group.SetDeviceOffset(offX-float64(ext.Min.X), offY-float64(ext.Min.Y))
		group.SetDeviceScale(parent.DeviceScale())
	} else {
		group.SetDeviceOffset(-float64(ext.Min.X), -float64(ext.Min.Y))
	}
	return group, ext, nil
}

// PopGroup ends the group started by the matching PushGroup and returns
// its contents as a surface pattern positioned where the group content
// was drawn. Without a matching PushGroup it fails with
// ErrInvalidPopGroup.
func (c *Context) PopGroup() (Pattern, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.top().isGroup {
		return nil, c.setErr(ErrInvalidPopGroup)
	}

	group := c.top().target
	groupOffX, groupOffY := group.DeviceOffset()

	c.top().release()
	c.states = c.states[:len(c.states)-1]

	parent := c.top().target
	var parentOffX, parentOffY float64
	if parent != nil {
		parentOffX, parentOffY = parent.DeviceOffset()
	}

	// Undo the coordinate shift applied when the group was pushed.
	c.path.Translate(
		fixedpoint.FromFloat64(parentOffX-groupOffX),
		fixedpoint.FromFloat64(parentOffY-groupOffY),
	)

	pattern := NewSurfacePattern(group)
	if err := pattern.SetMatrix(c.top().matrix); err != nil {
		return nil, c.setErr(err)
	}
	return pattern, nil
}

// PopGroupToSource pops the current group and installs it as the source
// pattern of the restored state.
func (c *Context) PopGroupToSource() error {
	pattern, err := c.PopGroup()
	if err != nil {
		return err
	}
	return c.SetSource(pattern)
}
