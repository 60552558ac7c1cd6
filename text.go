package lcdkit

import (
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is used by text components created with a nil font.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

const (
	defaultMarqueeSpeed = 20 // pixels per second
	defaultMarqueeGap   = 16 // pixels between the end of the text and its repeat
)

var inkColor = color.RGBA{A: 0xFF}

// textState holds the content of Label, Marquee and TabPage components.
type textState struct {
	content  string
	font     tinyfont.Fonter
	align    TextAlign
	autoSize bool

	// Marquee only
	offset float64
	speed  float64
	gap    int
}

// NewLabel creates a single line text component sized to fit its text.
// A nil font selects DefaultFont.
func NewLabel(name, text string, font tinyfont.Fonter) *Component {
	if font == nil {
		font = DefaultFont
	}
	c := &Component{Name: name, Type: ComponentLabel}
	c.text = &textState{content: text, font: font, autoSize: true}
	componentDefaults(c, textWidth(font, text), fontHeight(font))
	return c
}

// NewMarquee creates a text component of fixed width whose text scrolls
// horizontally when it does not fit. A nil font selects DefaultFont.
func NewMarquee(name, text string, font tinyfont.Fonter, width int) *Component {
	if font == nil {
		font = DefaultFont
	}
	c := &Component{Name: name, Type: ComponentMarquee}
	c.text = &textState{
		content: text,
		font:    font,
		speed:   defaultMarqueeSpeed,
		gap:     defaultMarqueeGap,
	}
	componentDefaults(c, width, fontHeight(font))
	return c
}

func (c *Component) mustHaveText(op string) *textState {
	c.checkAlive(op)
	if c.text == nil {
		panic(fmt.Sprintf("lcdkit: %s on %s component %q", op, c.Type, c.Name))
	}
	return c.text
}

// Text returns the component's text. For tab pages this is the title.
func (c *Component) Text() string {
	return c.mustHaveText("Text").content
}

// SetText replaces the text. Auto-sized labels are resized to fit it.
func (c *Component) SetText(text string) {
	t := c.mustHaveText("SetText")
	if t.content == text {
		return
	}
	t.content = text
	t.offset = 0
	c.textChanged()
}

// Font returns the component's font.
func (c *Component) Font() tinyfont.Fonter {
	return c.mustHaveText("Font").font
}

// SetFont changes the font. A nil font selects DefaultFont.
func (c *Component) SetFont(font tinyfont.Fonter) {
	t := c.mustHaveText("SetFont")
	if font == nil {
		font = DefaultFont
	}
	if t.font == font {
		return
	}
	t.font = font
	c.textChanged()
}

// SetAlign sets the horizontal alignment of a label's text inside its bounds.
func (c *Component) SetAlign(a TextAlign) {
	t := c.mustHaveText("SetAlign")
	if t.align == a {
		return
	}
	t.align = a
	c.MarkDirty()
}

// SetAutoSize enables or disables resizing a label to fit its text.
func (c *Component) SetAutoSize(on bool) {
	t := c.mustHaveText("SetAutoSize")
	t.autoSize = on
	if on {
		c.textChanged()
	}
}

// SetScrollSpeed sets a marquee's scroll speed in pixels per second.
func (c *Component) SetScrollSpeed(pxPerSecond float64) {
	c.mustHaveText("SetScrollSpeed").speed = pxPerSecond
}

func (c *Component) textChanged() {
	t := c.text
	if t.autoSize && c.Type == ComponentLabel {
		c.setSize(textWidth(t.font, t.content), fontHeight(t.font))
	}
	c.MarkDirty()
}

func (c *Component) drawLabel(b *Bitmap) {
	t := c.text
	x := 0
	switch t.align {
	case TextAlignCenter:
		x = (b.w - textWidth(t.font, t.content)) / 2
	case TextAlignRight:
		x = b.w - textWidth(t.font, t.content)
	}
	writeText(b, t.font, x, 0, t.content)
}

func (c *Component) drawMarquee(b *Bitmap) {
	t := c.text
	tw := textWidth(t.font, t.content)
	if tw <= b.w {
		writeText(b, t.font, 0, 0, t.content)
		return
	}
	x := -int(t.offset)
	writeText(b, t.font, x, 0, t.content)
	writeText(b, t.font, x+tw+t.gap, 0, t.content)
}

// advanceMarquee scrolls the text by speed*dt pixels and marks the component
// dirty only when the whole-pixel offset changes.
func (c *Component) advanceMarquee(dt float64) {
	t := c.text
	tw := textWidth(t.font, t.content)
	if tw <= c.width {
		if t.offset != 0 {
			t.offset = 0
			c.MarkDirty()
		}
		return
	}
	before := int(t.offset)
	t.offset += t.speed * dt
	cycle := float64(tw + t.gap)
	for t.offset >= cycle {
		t.offset -= cycle
	}
	for t.offset < 0 {
		t.offset += cycle
	}
	if int(t.offset) != before {
		c.MarkDirty()
	}
}

// writeText draws s with its top-left corner at (x, y).
func writeText(b *Bitmap, font tinyfont.Fonter, x, y int, s string) {
	tinyfont.WriteLine(b.Displayer(true), font, int16(x), int16(y+fontAscent(font)), s, inkColor)
}

func textWidth(font tinyfont.Fonter, s string) int {
	_, w := tinyfont.LineWidth(font, s)
	return int(w)
}

func fontHeight(font tinyfont.Fonter) int {
	return int(font.GetYAdvance())
}

// fontAscent returns the distance from the top of a line to the baseline.
func fontAscent(font tinyfont.Fonter) int {
	ascent := 0
	for _, r := range "AHgjl|" {
		if off := -int(font.GetGlyph(r).Info().YOffset); off > ascent {
			ascent = off
		}
	}
	if h := fontHeight(font); ascent > h {
		return h
	}
	return ascent
}
