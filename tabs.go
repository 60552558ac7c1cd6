package lcdkit

import (
	"fmt"
	"image"

	"tinygo.org/x/tinyfont"
)

// tabState holds the page bookkeeping of a TabControl.
type tabState struct {
	pages        []*Component // TabPage children in drawing order
	active       int          // index into pages, -1 when there are none
	font         tinyfont.Fonter
	headerHeight int

	navigation       bool
	prevBtn, nextBtn Button

	OnPageChange func(page *Component)
}

// NewTabControl creates a paging container. Its top rows show the page
// titles with the active title inverted; the rest is the page body. Only the
// active page is visible and receives button events. By default Button2 and
// Button3 switch to the previous and next page. A nil font selects
// DefaultFont.
func NewTabControl(name string, width, height int, font tinyfont.Fonter) *Component {
	if font == nil {
		font = DefaultFont
	}
	c := &Component{Name: name, Type: ComponentTabControl}
	c.tabs = &tabState{
		active:       -1,
		font:         font,
		headerHeight: fontHeight(font) + 2,
		navigation:   true,
		prevBtn:      Button2,
		nextBtn:      Button3,
	}
	componentDefaults(c, width, height)
	return c
}

// NewTabPage creates a page for a TabControl. A page's location and size are
// owned by its control; setting either panics.
func NewTabPage(name, title string) *Component {
	c := &Component{Name: name, Type: ComponentTabPage}
	c.text = &textState{content: title, font: DefaultFont}
	componentDefaults(c, 0, 0)
	c.geometryLocked = true
	return c
}

func (c *Component) mustBeTabControl(op string) *tabState {
	c.checkAlive(op)
	if c.tabs == nil {
		panic(fmt.Sprintf("lcdkit: %s on %s component %q", op, c.Type, c.Name))
	}
	return c.tabs
}

// Pages returns the tab control's pages in order. The returned slice MUST NOT
// be mutated by the caller.
func (c *Component) Pages() []*Component {
	return c.mustBeTabControl("Pages").pages
}

// ActivePage returns the visible page, or nil when there are no pages.
func (c *Component) ActivePage() *Component {
	t := c.mustBeTabControl("ActivePage")
	if t.active < 0 {
		return nil
	}
	return t.pages[t.active]
}

// ActivePageIndex returns the index of the visible page, or -1.
func (c *Component) ActivePageIndex() int {
	return c.mustBeTabControl("ActivePageIndex").active
}

// SetActivePage makes the page at index visible.
func (c *Component) SetActivePage(index int) {
	t := c.mustBeTabControl("SetActivePage")
	if index < 0 || index >= len(t.pages) {
		panic("lcdkit: page index out of range")
	}
	c.activate(index)
}

// NextPage activates the following page, wrapping around.
func (c *Component) NextPage() {
	t := c.mustBeTabControl("NextPage")
	if len(t.pages) == 0 {
		return
	}
	c.activate((t.active + 1) % len(t.pages))
}

// PrevPage activates the preceding page, wrapping around.
func (c *Component) PrevPage() {
	t := c.mustBeTabControl("PrevPage")
	if len(t.pages) == 0 {
		return
	}
	c.activate((t.active - 1 + len(t.pages)) % len(t.pages))
}

// SetNavigationButtons selects the buttons that switch pages. They are
// consumed by the control and never reach the active page.
func (c *Component) SetNavigationButtons(prev, next Button) {
	t := c.mustBeTabControl("SetNavigationButtons")
	t.prevBtn, t.nextBtn = prev, next
	t.navigation = true
}

// DisableNavigation passes every button to the active page.
func (c *Component) DisableNavigation() {
	c.mustBeTabControl("DisableNavigation").navigation = false
}

// OnPageChange registers fn to be called after the active page changes.
// The callback is dropped when the control is disposed.
func (c *Component) OnPageChange(fn func(page *Component)) {
	c.mustBeTabControl("OnPageChange").OnPageChange = fn
}

// HeaderHeight returns the height of the title row.
func (c *Component) HeaderHeight() int {
	return c.mustBeTabControl("HeaderHeight").headerHeight
}

func (c *Component) activate(index int) {
	t := c.tabs
	if index == t.active {
		return
	}
	if t.active >= 0 && t.active < len(t.pages) {
		t.pages[t.active].setPageVisible(false)
	}
	t.active = index
	var page *Component
	if index >= 0 {
		page = t.pages[index]
		page.setPageVisible(true)
	}
	c.MarkDirty()
	if t.OnPageChange != nil {
		t.OnPageChange(page)
	}
}

func (c *Component) setPageVisible(v bool) {
	if c.visible == v {
		return
	}
	c.visible = v
	c.MarkDirty()
}

// syncPages rebuilds the page list from the children, keeping the active page
// when it is still present.
func (c *Component) syncPages() {
	t := c.tabs
	var active *Component
	if t.active >= 0 && t.active < len(t.pages) {
		active = t.pages[t.active]
	}
	t.pages = t.pages[:0]
	t.active = -1
	for _, ch := range c.children {
		if ch.Type != ComponentTabPage {
			continue
		}
		if ch == active {
			t.active = len(t.pages)
		}
		t.pages = append(t.pages, ch)
	}
}

func (c *Component) pageAdded(page *Component) {
	c.syncPages()
	c.layoutPage(page)
	page.setPageVisible(false)
	if c.tabs.active >= 0 {
		return
	}
	for i, p := range c.tabs.pages {
		if p == page {
			c.activate(i)
		}
	}
}

func (c *Component) pageRemoved(page *Component) {
	t := c.tabs
	index := -1
	for i, p := range t.pages {
		if p == page {
			index = i
			break
		}
	}
	wasActive := index == t.active
	// syncPages drops the active index when the active page is gone.
	c.syncPages()
	page.visible = true
	if !wasActive {
		return
	}
	if len(t.pages) == 0 {
		if t.OnPageChange != nil {
			t.OnPageChange(nil)
		}
		return
	}
	c.activate(min(index, len(t.pages)-1))
}

// layoutPages fits every page to the body area after a resize.
func (c *Component) layoutPages() {
	for _, p := range c.tabs.pages {
		c.layoutPage(p)
	}
}

func (c *Component) layoutPage(page *Component) {
	h := c.tabs.headerHeight
	page.setLocation(image.Pt(0, h))
	page.setSize(c.width, max(c.height-h, 0))
}

// handleNavigation consumes page switching buttons. Pages switch on press;
// the matching release is swallowed too.
func (c *Component) handleNavigation(ctx ButtonContext) bool {
	t := c.tabs
	if !t.navigation || (ctx.Button != t.prevBtn && ctx.Button != t.nextBtn) {
		return false
	}
	if ctx.Pressed {
		if ctx.Button == t.nextBtn {
			c.NextPage()
		} else {
			c.PrevPage()
		}
	}
	return true
}

// drawTabHeader draws the page titles left to right, inverting the active
// one, with a rule beneath.
func (c *Component) drawTabHeader(b *Bitmap) {
	t := c.tabs
	h := t.headerHeight
	x := 0
	for i, p := range t.pages {
		w := textWidth(t.font, p.text.content) + 4
		writeText(b, t.font, x+2, 1, p.text.content)
		if i == t.active {
			cell := NewBitmap(w, h-1)
			cell.Fill(true)
			b.Merge(cell, image.Pt(x, 0), Invert)
		}
		x += w
	}
	fillRect(b, 0, h-1, b.w, 1)
}
