package lcdkit

import (
	"fmt"
	"image"
	"math"
)

type progressState struct {
	min, max, value float64
	orientation     Orientation
	border          bool
}

type lineState struct {
	start, end image.Point // local coordinates
}

type shapeState struct {
	filled bool
}

// --- ProgressBar ---

// NewProgressBar creates a bordered horizontal bar with range [0, 100] and
// value 0.
func NewProgressBar(name string, width, height int) *Component {
	c := &Component{Name: name, Type: ComponentProgressBar}
	c.progress = &progressState{max: 100, border: true}
	componentDefaults(c, width, height)
	return c
}

func (c *Component) mustBeProgress(op string) *progressState {
	c.checkAlive(op)
	if c.progress == nil {
		panic(fmt.Sprintf("lcdkit: %s on %s component %q", op, c.Type, c.Name))
	}
	return c.progress
}

// Value returns a progress bar's current value.
func (c *Component) Value() float64 {
	return c.mustBeProgress("Value").value
}

// SetValue sets a progress bar's value, clamped to its range.
// Panics if v is NaN.
func (c *Component) SetValue(v float64) {
	p := c.mustBeProgress("SetValue")
	if math.IsNaN(v) {
		panic(fmt.Sprintf("lcdkit: invalid value NaN for %q", c.Name))
	}
	v = math.Max(p.min, math.Min(p.max, v))
	if p.value == v {
		return
	}
	p.value = v
	c.MarkDirty()
}

// Range returns a progress bar's minimum and maximum.
func (c *Component) Range() (lo, hi float64) {
	p := c.mustBeProgress("Range")
	return p.min, p.max
}

// SetRange sets a progress bar's range and re-clamps its value.
// Panics if hi < lo.
func (c *Component) SetRange(lo, hi float64) {
	p := c.mustBeProgress("SetRange")
	if hi < lo || math.IsNaN(lo) || math.IsNaN(hi) {
		panic(fmt.Sprintf("lcdkit: invalid range [%v, %v] for %q", lo, hi, c.Name))
	}
	p.min, p.max = lo, hi
	p.value = math.Max(lo, math.Min(hi, p.value))
	c.MarkDirty()
}

// SetOrientation selects horizontal or vertical fill.
func (c *Component) SetOrientation(o Orientation) {
	p := c.mustBeProgress("SetOrientation")
	if p.orientation == o {
		return
	}
	p.orientation = o
	c.MarkDirty()
}

// SetBorder enables or disables a progress bar's one pixel border.
func (c *Component) SetBorder(on bool) {
	p := c.mustBeProgress("SetBorder")
	if p.border == on {
		return
	}
	p.border = on
	c.MarkDirty()
}

// fraction returns how much of the bar is filled, in [0, 1].
func (p *progressState) fraction() float64 {
	if p.max <= p.min {
		return 0
	}
	return (p.value - p.min) / (p.max - p.min)
}

func (c *Component) drawProgressBar(b *Bitmap) {
	p := c.progress
	x, y, w, h := 0, 0, b.w, b.h
	if p.border {
		strokeRect(b, 0, 0, w, h)
		x, y, w, h = 1, 1, w-2, h-2
	}
	if w <= 0 || h <= 0 {
		return
	}
	f := p.fraction()
	if p.orientation == Vertical {
		fh := int(math.Round(f * float64(h)))
		fillRect(b, x, y+h-fh, w, fh)
		return
	}
	fillRect(b, x, y, int(math.Round(f*float64(w))), h)
}

// --- Line ---

// NewLine creates a one pixel line from start to end, both in parent
// coordinates. The component's bounds are the line's bounding box.
func NewLine(name string, start, end image.Point) *Component {
	c := &Component{Name: name, Type: ComponentLine}
	c.line = &lineState{}
	componentDefaults(c, 0, 0)
	c.placeLine(start, end)
	return c
}

// Endpoints returns a line's start and end in parent coordinates.
func (c *Component) Endpoints() (start, end image.Point) {
	c.checkAlive("Endpoints")
	if c.line == nil {
		panic(fmt.Sprintf("lcdkit: Endpoints on %s component %q", c.Type, c.Name))
	}
	return c.line.start.Add(c.location), c.line.end.Add(c.location)
}

// SetEndpoints moves a line's endpoints, given in parent coordinates, and
// updates its bounds.
func (c *Component) SetEndpoints(start, end image.Point) {
	c.checkAlive("SetEndpoints")
	if c.line == nil {
		panic(fmt.Sprintf("lcdkit: SetEndpoints on %s component %q", c.Type, c.Name))
	}
	c.placeLine(start, end)
}

func (c *Component) placeLine(start, end image.Point) {
	origin := image.Pt(min(start.X, end.X), min(start.Y, end.Y))
	ls, le := start.Sub(origin), end.Sub(origin)
	if c.line.start != ls || c.line.end != le {
		c.line.start, c.line.end = ls, le
		c.MarkDirty()
	}
	c.setLocation(origin)
	c.setSize(abs(end.X-start.X)+1, abs(end.Y-start.Y)+1)
}

// --- Rectangle ---

// NewRectangle creates a rectangle outline, or a solid block when filled.
func NewRectangle(name string, width, height int, filled bool) *Component {
	c := &Component{Name: name, Type: ComponentRectangle}
	c.shape = &shapeState{filled: filled}
	componentDefaults(c, width, height)
	return c
}

// SetFilled switches a rectangle between outline and solid.
func (c *Component) SetFilled(filled bool) {
	c.checkAlive("SetFilled")
	if c.shape == nil {
		panic(fmt.Sprintf("lcdkit: SetFilled on %s component %q", c.Type, c.Name))
	}
	if c.shape.filled == filled {
		return
	}
	c.shape.filled = filled
	c.MarkDirty()
}
