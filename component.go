package lcdkit

import (
	"fmt"
	"image"
)

// componentIDCounter is a plain counter; lcdkit is single-threaded.
var componentIDCounter uint32

func nextComponentID() uint32 {
	componentIDCounter++
	return componentIDCounter
}

// Component is the scene tree element. A single flat struct is used for all
// component types; Type selects what Render draws before compositing children.
//
// All visual state is changed through setters so that every mutation marks
// the component and its ancestors dirty.
type Component struct {
	// Identity
	ID   uint32
	Name string
	Type ComponentType

	// Hierarchy
	parent   *Component
	children []*Component

	// Geometry and appearance
	location      image.Point
	width, height int
	visible       bool
	merge         MergeMethod

	// Render state
	dirty    bool
	snapshot Snapshot
	spare    *Bitmap // buffer of the superseded snapshot, reused by the next render
	renders  int

	// geometryLocked is set on components whose location and size are owned
	// by their parent (tab pages).
	geometryLocked bool
	disposed       bool

	// Metadata
	UserData any

	// Per-component callbacks (nil by default)
	OnUpdate     func(dt float64)
	OnButtonDown func(ButtonContext)
	OnButtonUp   func(ButtonContext)

	// Type-specific state
	text     *textState     // Label, Marquee, TabPage title
	progress *progressState // ProgressBar
	line     *lineState     // Line
	shape    *shapeState    // Rectangle
	picture  *Bitmap        // Picture
	tabs     *tabState      // TabControl
}

// componentDefaults sets the field values shared by all constructors.
func componentDefaults(c *Component, width, height int) {
	checkSize(width, height)
	c.ID = nextComponentID()
	c.width = width
	c.height = height
	c.visible = true
	c.merge = Override
	c.dirty = true
}

func checkSize(width, height int) {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("lcdkit: invalid size %dx%d", width, height))
	}
}

// NewContainer creates a component with no content of its own.
func NewContainer(name string, width, height int) *Component {
	c := &Component{Name: name, Type: ComponentContainer}
	componentDefaults(c, width, height)
	return c
}

// --- Geometry and appearance ---

// Location returns the component's offset inside its parent.
func (c *Component) Location() image.Point {
	return c.location
}

// SetLocation moves the component inside its parent.
// Panics if the component's geometry is locked by its parent.
func (c *Component) SetLocation(x, y int) {
	c.checkAlive("SetLocation")
	if c.geometryLocked {
		panic(fmt.Sprintf("lcdkit: location of %q is locked", c.Name))
	}
	c.setLocation(image.Pt(x, y))
}

func (c *Component) setLocation(p image.Point) {
	if c.location == p {
		return
	}
	c.location = p
	c.MarkDirty()
}

// Width returns the component width in pixels.
func (c *Component) Width() int { return c.width }

// Height returns the component height in pixels.
func (c *Component) Height() int { return c.height }

// Size returns the component dimensions as a point.
func (c *Component) Size() image.Point { return image.Pt(c.width, c.height) }

// Bounds returns the rectangle the component covers in its parent.
func (c *Component) Bounds() image.Rectangle {
	return image.Rectangle{Min: c.location, Max: c.location.Add(c.Size())}
}

// SetSize resizes the component. Panics on negative dimensions or when the
// component's geometry is locked by its parent.
func (c *Component) SetSize(width, height int) {
	c.checkAlive("SetSize")
	if c.geometryLocked {
		panic(fmt.Sprintf("lcdkit: size of %q is locked", c.Name))
	}
	checkSize(width, height)
	c.setSize(width, height)
}

func (c *Component) setSize(width, height int) {
	if c.width == width && c.height == height {
		return
	}
	c.width = width
	c.height = height
	if c.tabs != nil {
		c.layoutPages()
	}
	c.MarkDirty()
}

// Visible reports whether the component is drawn by its parent.
func (c *Component) Visible() bool { return c.visible }

// SetVisible shows or hides the component. Hidden components are skipped
// when their parent composites children and receive no button events.
// Panics on a tab page; its tab control decides which page is visible.
func (c *Component) SetVisible(v bool) {
	c.checkAlive("SetVisible")
	if c.Type == ComponentTabPage {
		panic(fmt.Sprintf("lcdkit: visibility of tab page %q is owned by its tab control", c.Name))
	}
	if c.visible == v {
		return
	}
	c.visible = v
	c.MarkDirty()
}

// MergeMethod returns the method used to composite this component into its
// parent.
func (c *Component) MergeMethod() MergeMethod { return c.merge }

// SetMergeMethod changes how the component is composited into its parent.
// Panics if m is nil.
func (c *Component) SetMergeMethod(m MergeMethod) {
	c.checkAlive("SetMergeMethod")
	if m == nil {
		panic(fmt.Sprintf("lcdkit: nil merge method for %q", c.Name))
	}
	if c.merge == m {
		return
	}
	c.merge = m
	c.MarkDirty()
}

// --- Dirty tracking ---

// MarkDirty flags the component as changed and propagates the flag to every
// ancestor. Content setters call it; use it directly after changing state the
// component cannot observe, such as pixels of a Picture's bitmap.
func (c *Component) MarkDirty() {
	c.checkAlive("MarkDirty")
	// Always walk to the root: hidden children can stay dirty under a clean
	// parent, so an already dirty node does not imply dirty ancestors.
	for p := c; p != nil; p = p.parent {
		p.dirty = true
	}
}

// Dirty reports whether the component has changed since its last render.
// Hidden children are not rendered, so a hidden child can stay dirty under a
// clean parent until it is shown again. MarkDirty always walks to the root,
// so a change anywhere in a visible path still reaches it.
func (c *Component) Dirty() bool { return c.dirty }

// RenderCount returns how many times Render recomputed the component's
// bitmap. Cached renders are not counted.
func (c *Component) RenderCount() int { return c.renders }

// --- Tree manipulation ---

// Parent returns the owning component, or nil for a root.
func (c *Component) Parent() *Component { return c.parent }

// AddChild appends child to this component's children. Later children are
// drawn on top of earlier ones. If child already has a parent, it is removed
// from that parent first; if that parent is c, child moves to the top.
// Panics if child is nil, disposed, or an ancestor of this component.
func (c *Component) AddChild(child *Component) {
	c.AddChildAt(child, len(c.children))
}

// AddChildAt inserts child at the given index. The index is checked before
// child leaves its old parent. Re-adding an existing child moves it to index,
// or to the last position when index is len(Children()).
// Same reparenting and cycle-check behavior as AddChild.
func (c *Component) AddChildAt(child *Component, index int) {
	if child == nil {
		panic("lcdkit: cannot add nil child")
	}
	c.checkAlive("AddChild (parent)")
	child.checkAlive("AddChild (child)")
	if isAncestor(child, c) {
		panic("lcdkit: adding child would create a cycle")
	}
	if child.Type == ComponentTabPage && c.Type != ComponentTabControl {
		panic(fmt.Sprintf("lcdkit: tab page %q can only be added to a tab control", child.Name))
	}
	if index < 0 || index > len(c.children) {
		panic("lcdkit: child index out of range")
	}
	if child.parent == c {
		// Re-adding moves the child; AddChild brings it to the top.
		c.SetChildIndex(child, min(index, len(c.children)-1))
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = c
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	if c.tabs != nil && child.Type == ComponentTabPage {
		c.pageAdded(child)
	}
	c.MarkDirty()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
}

// RemoveChild detaches child from this component. The child is not disposed.
// Panics if child's parent is not c.
func (c *Component) RemoveChild(child *Component) {
	c.checkAlive("RemoveChild")
	if child.parent != c {
		panic("lcdkit: child's parent is not this component")
	}
	for i, ch := range c.children {
		if ch == child {
			c.RemoveChildAt(i)
			return
		}
	}
}

// RemoveChildAt removes and returns the child at the given index.
func (c *Component) RemoveChildAt(index int) *Component {
	c.checkAlive("RemoveChildAt")
	if index < 0 || index >= len(c.children) {
		panic("lcdkit: child index out of range")
	}
	child := c.children[index]
	copy(c.children[index:], c.children[index+1:])
	c.children[len(c.children)-1] = nil
	c.children = c.children[:len(c.children)-1]
	child.parent = nil
	if c.tabs != nil && child.Type == ComponentTabPage {
		c.pageRemoved(child)
	}
	c.MarkDirty()
	return child
}

// RemoveFromParent detaches this component from its parent.
// No-op if this component has no parent.
func (c *Component) RemoveFromParent() {
	if c.parent == nil {
		return
	}
	c.parent.RemoveChild(c)
}

// RemoveChildren detaches all children. Children are NOT disposed.
func (c *Component) RemoveChildren() {
	for len(c.children) > 0 {
		c.RemoveChildAt(len(c.children) - 1)
	}
}

// Children returns the child list in drawing order. The returned slice MUST
// NOT be mutated by the caller.
func (c *Component) Children() []*Component {
	return c.children
}

// NumChildren returns the number of children.
func (c *Component) NumChildren() int {
	return len(c.children)
}

// ChildAt returns the child at the given index.
func (c *Component) ChildAt(index int) *Component {
	return c.children[index]
}

// SetChildIndex moves child to a new position in the drawing order.
func (c *Component) SetChildIndex(child *Component, index int) {
	if child.parent != c {
		panic("lcdkit: child's parent is not this component")
	}
	if index < 0 || index >= len(c.children) {
		panic("lcdkit: child index out of range")
	}
	old := -1
	for i, ch := range c.children {
		if ch == child {
			old = i
			break
		}
	}
	if old == index {
		return
	}
	if old < index {
		copy(c.children[old:], c.children[old+1:index+1])
	} else {
		copy(c.children[index+1:], c.children[index:old])
	}
	c.children[index] = child
	if c.tabs != nil {
		c.syncPages()
	}
	c.MarkDirty()
}

// --- Disposal ---

// Dispose detaches the component from its parent, then disposes every
// descendant depth-first and releases the component's buffers. Disposing an
// already disposed component is a no-op. Any further use of a disposed
// component panics.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.RemoveFromParent()
	c.dispose()
}

func (c *Component) dispose() {
	for _, child := range c.children {
		child.parent = nil
		child.dispose()
	}
	c.disposed = true
	c.ID = 0
	c.children = nil
	c.parent = nil
	c.snapshot = Snapshot{}
	c.spare = nil
	c.UserData = nil
	c.OnUpdate = nil
	c.OnButtonDown = nil
	c.OnButtonUp = nil
	c.text = nil
	c.progress = nil
	c.line = nil
	c.shape = nil
	c.picture = nil
	if c.tabs != nil {
		c.tabs.pages = nil
		c.tabs.OnPageChange = nil
		c.tabs = nil
	}
}

// IsDisposed returns true if this component has been disposed.
func (c *Component) IsDisposed() bool {
	return c.disposed
}

func (c *Component) checkAlive(op string) {
	if c.disposed {
		panic(fmt.Sprintf("lcdkit: %s on disposed component %q", op, c.Name))
	}
}

// --- Helpers ---

// isAncestor reports whether candidate is c or one of its ancestors.
func isAncestor(candidate, c *Component) bool {
	for p := c; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
