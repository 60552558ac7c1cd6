package lcdkit

import "image"

// Render returns the component's current Snapshot. A clean component returns
// its cached snapshot unchanged. A dirty component redraws its own content
// into a fresh or recycled bitmap, then composites the snapshot of every
// visible child in insertion order (later children on top) using each child's
// merge method, and becomes clean.
//
// A component with zero width or height renders an empty snapshot.
func (c *Component) Render() Snapshot {
	c.checkAlive("Render")
	if !c.dirty {
		return c.snapshot
	}
	c.renders++

	if c.width == 0 || c.height == 0 {
		c.replaceSnapshot(Snapshot{location: c.location, merge: c.merge})
		c.dirty = false
		return c.snapshot
	}

	bmp := c.takeBuffer()
	c.drawContent(bmp)
	for _, child := range c.children {
		if !child.visible {
			continue
		}
		child.Render().DrawOnto(bmp)
	}

	c.replaceSnapshot(Snapshot{bitmap: bmp, location: c.location, merge: c.merge})
	c.dirty = false
	return c.snapshot
}

// Snapshot returns the last rendered snapshot without rendering.
func (c *Component) Snapshot() Snapshot {
	return c.snapshot
}

// takeBuffer returns a cleared bitmap of the component's size, reusing the
// buffer of the snapshot before the current one when it fits.
func (c *Component) takeBuffer() *Bitmap {
	if b := c.spare; b != nil && b.w == c.width && b.h == c.height {
		c.spare = nil
		b.Reset()
		return b
	}
	c.spare = nil
	return NewBitmap(c.width, c.height)
}

func (c *Component) replaceSnapshot(s Snapshot) {
	if old := c.snapshot.bitmap; old != nil {
		c.spare = old
	}
	c.snapshot = s
}

// drawContent draws the component's own pixels, beneath its children.
func (c *Component) drawContent(b *Bitmap) {
	switch c.Type {
	case ComponentLabel:
		c.drawLabel(b)
	case ComponentMarquee:
		c.drawMarquee(b)
	case ComponentProgressBar:
		c.drawProgressBar(b)
	case ComponentLine:
		drawLine(b, c.line.start, c.line.end)
	case ComponentRectangle:
		if c.shape.filled {
			b.Fill(true)
		} else {
			strokeRect(b, 0, 0, b.w, b.h)
		}
	case ComponentPicture:
		if c.picture != nil {
			Override.Merge(c.picture, b, image.Point{})
		}
	case ComponentTabControl:
		c.drawTabHeader(b)
	}
}

// updateComponents runs per-tick hooks on every visible component,
// depth-first in drawing order.
func updateComponents(c *Component, dt float64) {
	if !c.visible || c.disposed {
		return
	}
	if c.OnUpdate != nil {
		c.OnUpdate(dt)
	}
	if c.Type == ComponentMarquee {
		c.advanceMarquee(dt)
	}
	for i := 0; i < len(c.children); i++ {
		updateComponents(c.children[i], dt)
	}
}

// --- Drawing primitives ---

// drawLine draws a line between p0 and p1 (inclusive) with Bresenham's
// algorithm. Points outside b are clipped by Set.
func drawLine(b *Bitmap, p0, p1 image.Point) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		b.Set(x0, y0, true)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// fillRect sets every pixel of the rectangle at (x, y) of size w×h.
func fillRect(b *Bitmap, x, y, w, h int) {
	for yy := max(y, 0); yy < min(y+h, b.h); yy++ {
		for xx := max(x, 0); xx < min(x+w, b.w); xx++ {
			b.pix[yy*b.w+xx] = true
		}
	}
}

// strokeRect draws a one pixel outline of the rectangle at (x, y) of size w×h.
func strokeRect(b *Bitmap, x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	fillRect(b, x, y, w, 1)
	fillRect(b, x, y+h-1, w, 1)
	fillRect(b, x, y, 1, h)
	fillRect(b, x+w-1, y, 1, h)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
