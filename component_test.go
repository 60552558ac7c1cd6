package lcdkit

import (
	"image"
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	c := NewContainer("test", 10, 5)
	assertComponentDefaults(t, c, "test", ComponentContainer)
	if c.Width() != 10 || c.Height() != 5 {
		t.Errorf("size = %dx%d, want 10x5", c.Width(), c.Height())
	}
}

func TestNewRectangleDefaults(t *testing.T) {
	assertComponentDefaults(t, NewRectangle("rect", 4, 4, false), "rect", ComponentRectangle)
}

func TestNewProgressBarDefaults(t *testing.T) {
	assertComponentDefaults(t, NewProgressBar("bar", 20, 6), "bar", ComponentProgressBar)
}

func assertComponentDefaults(t *testing.T, c *Component, name string, typ ComponentType) {
	t.Helper()
	if c.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if c.Name != name {
		t.Errorf("Name = %q, want %q", c.Name, name)
	}
	if c.Type != typ {
		t.Errorf("Type = %s, want %s", c.Type, typ)
	}
	if !c.Visible() {
		t.Error("Visible should be true")
	}
	if c.MergeMethod() != Override {
		t.Errorf("MergeMethod = %s, want override", c.MergeMethod())
	}
	if !c.Dirty() {
		t.Error("new component should be dirty")
	}
	if c.Location() != (image.Point{}) {
		t.Errorf("Location = %v, want origin", c.Location())
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a", 1, 1)
	b := NewContainer("b", 1, 1)
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both = %d", a.ID)
	}
}

func TestNegativeSizePanics(t *testing.T) {
	mustPanic(t, "negative constructor size", func() { NewContainer("c", -1, 1) })
	c := NewContainer("c", 1, 1)
	mustPanic(t, "negative SetSize", func() { c.SetSize(1, -2) })
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent", 10, 10)
	child := NewContainer("child", 2, 2)
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not in parent's children")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a", 10, 10)
	b := NewContainer("b", 10, 10)
	child := NewContainer("child", 2, 2)
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if child.Parent() != b {
		t.Error("child.Parent() should be new parent")
	}
}

func TestAddChildExistingMovesToFront(t *testing.T) {
	p := NewContainer("p", 4, 4)
	a := NewContainer("a", 1, 1)
	b := NewContainer("b", 1, 1)
	p.AddChild(a)
	p.AddChild(b)
	p.Render()

	p.AddChild(a)

	if p.NumChildren() != 2 || p.ChildAt(0) != b || p.ChildAt(1) != a {
		t.Errorf("children = [%s %s], want [b a]", p.ChildAt(0).Name, p.ChildAt(1).Name)
	}
	if a.Parent() != p {
		t.Error("a should still belong to p")
	}
	if !p.Dirty() {
		t.Error("reorder should mark the parent dirty")
	}

	p.AddChildAt(a, 0)
	if p.ChildAt(0) != a || p.ChildAt(1) != b {
		t.Errorf("children = [%s %s], want [a b]", p.ChildAt(0).Name, p.ChildAt(1).Name)
	}
}

func TestAddChildAtBadIndexKeepsOldParent(t *testing.T) {
	old := NewContainer("old", 4, 4)
	c := NewContainer("c", 4, 4)
	x := NewContainer("x", 1, 1)
	old.AddChild(x)

	mustPanic(t, "index out of range", func() { c.AddChildAt(x, 5) })
	if x.Parent() != old || old.NumChildren() != 1 {
		t.Error("failed AddChildAt should leave the child with its old parent")
	}
	if c.NumChildren() != 0 {
		t.Errorf("c has %d children, want 0", c.NumChildren())
	}
	mustPanic(t, "re-add past the end", func() { old.AddChildAt(x, 2) })
	if x.Parent() != old {
		t.Error("failed re-add should not detach the child")
	}
}

func TestAddChildAt(t *testing.T) {
	p := NewContainer("p", 10, 10)
	a := NewContainer("a", 1, 1)
	b := NewContainer("b", 1, 1)
	c := NewContainer("c", 1, 1)
	p.AddChild(a)
	p.AddChild(c)
	p.AddChildAt(b, 1)

	want := []*Component{a, b, c}
	for i, w := range want {
		if p.ChildAt(i) != w {
			t.Errorf("child[%d] = %q, want %q", i, p.ChildAt(i).Name, w.Name)
		}
	}
	mustPanic(t, "index out of range", func() { p.AddChildAt(NewContainer("d", 1, 1), 5) })
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent", 1, 1)
	child := NewContainer("child", 1, 1)
	grandchild := NewContainer("grandchild", 1, 1)
	parent.AddChild(child)
	child.AddChild(grandchild)

	mustPanic(t, "cycle", func() { grandchild.AddChild(parent) })
	mustPanic(t, "self-add", func() { parent.AddChild(parent) })
	mustPanic(t, "nil child", func() { parent.AddChild(nil) })
}

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p", 4, 4)
	c := NewContainer("c", 1, 1)
	p.AddChild(c)
	p.Render()

	p.RemoveChild(c)
	if c.Parent() != nil {
		t.Error("removed child should have no parent")
	}
	if p.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
	if !p.Dirty() {
		t.Error("removing a child should mark the parent dirty")
	}
	if c.IsDisposed() {
		t.Error("RemoveChild should not dispose")
	}
	mustPanic(t, "removing non-child", func() { p.RemoveChild(c) })
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p", 4, 4)
	kids := []*Component{NewContainer("a", 1, 1), NewContainer("b", 1, 1)}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent() != nil {
			t.Errorf("%s still has a parent", k.Name)
		}
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	c := NewContainer("c", 1, 1)
	c.RemoveFromParent() // no-op
}

func TestSetChildIndex(t *testing.T) {
	p := NewContainer("p", 4, 4)
	a := NewContainer("a", 1, 1)
	b := NewContainer("b", 1, 1)
	c := NewContainer("c", 1, 1)
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)

	p.SetChildIndex(a, 2)
	if p.ChildAt(0) != b || p.ChildAt(1) != c || p.ChildAt(2) != a {
		t.Errorf("order after move to end = %s %s %s", p.ChildAt(0).Name, p.ChildAt(1).Name, p.ChildAt(2).Name)
	}
	p.SetChildIndex(a, 0)
	if p.ChildAt(0) != a || p.ChildAt(1) != b || p.ChildAt(2) != c {
		t.Errorf("order after move to front = %s %s %s", p.ChildAt(0).Name, p.ChildAt(1).Name, p.ChildAt(2).Name)
	}
}

// --- Dirty tracking ---

func TestDirtyPropagatesToRoot(t *testing.T) {
	root := NewContainer("root", 10, 10)
	mid := NewContainer("mid", 8, 8)
	leaf := NewRectangle("leaf", 2, 2, true)
	root.AddChild(mid)
	mid.AddChild(leaf)
	root.Render()

	for _, c := range []*Component{root, mid, leaf} {
		if c.Dirty() {
			t.Fatalf("%s should be clean after render", c.Name)
		}
	}

	leaf.SetLocation(3, 3)
	for _, c := range []*Component{root, mid, leaf} {
		if !c.Dirty() {
			t.Errorf("%s should be dirty after leaf mutation", c.Name)
		}
	}

	root.Render()
	for _, c := range []*Component{root, mid, leaf} {
		if c.Dirty() {
			t.Errorf("%s should be clean after second render", c.Name)
		}
	}
	if !root.Snapshot().Bitmap().Get(3, 3) {
		t.Error("root bitmap should reflect the moved leaf")
	}
}

func TestSettersNoChangeStayClean(t *testing.T) {
	c := NewContainer("c", 4, 4)
	c.SetLocation(1, 1)
	c.Render()

	c.SetLocation(1, 1)
	c.SetSize(4, 4)
	c.SetVisible(true)
	c.SetMergeMethod(Override)
	if c.Dirty() {
		t.Error("setting unchanged values should not mark dirty")
	}
}

func TestHiddenDirtyChildStillPropagates(t *testing.T) {
	root := NewContainer("root", 4, 4)
	child := NewRectangle("child", 2, 2, true)
	root.AddChild(child)
	child.SetVisible(false)
	root.Render()

	// The hidden child was never rendered and is still dirty.
	if !child.Dirty() {
		t.Fatal("hidden child should still be dirty")
	}
	child.SetVisible(true)
	if !root.Dirty() {
		t.Fatal("showing a dirty child must dirty the root")
	}
	root.Render()
	if !root.Snapshot().Bitmap().Get(0, 0) {
		t.Error("shown child should be drawn")
	}
}

func TestExplicitMarkDirty(t *testing.T) {
	bmp := NewBitmap(2, 2)
	pic := NewPicture("pic", bmp)
	root := NewContainer("root", 2, 2)
	root.AddChild(pic)
	root.Render()

	bmp.Set(1, 1, true)
	if root.Dirty() {
		t.Fatal("external bitmap change is not observed")
	}
	pic.MarkDirty()
	root.Render()
	if !root.Snapshot().Bitmap().Get(1, 1) {
		t.Error("MarkDirty should make the change visible")
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root", 4, 4)
	parent := NewContainer("parent", 4, 4)
	child := NewContainer("child", 1, 1)
	grandchild := NewContainer("grandchild", 1, 1)
	root.AddChild(parent)
	parent.AddChild(child)
	child.AddChild(grandchild)
	root.Render()

	parent.Dispose()
	for _, c := range []*Component{parent, child, grandchild} {
		if !c.IsDisposed() {
			t.Errorf("%s should be disposed", c.Name)
		}
		if c.Parent() != nil {
			t.Errorf("%s should have no parent", c.Name)
		}
		if !c.Snapshot().Empty() {
			t.Errorf("%s should have released its snapshot", c.Name)
		}
	}
	if root.NumChildren() != 0 {
		t.Error("disposed component should be removed from its parent")
	}
	if !root.Dirty() {
		t.Error("root should be dirty after losing a child")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	c := NewContainer("c", 1, 1)
	c.OnUpdate = func(float64) {}
	c.Dispose()
	c.Dispose()
	if c.OnUpdate != nil {
		t.Error("callbacks should be cleared")
	}
}

func TestDisposedComponentPanics(t *testing.T) {
	c := NewContainer("c", 1, 1)
	c.Dispose()
	mustPanic(t, "SetLocation on disposed", func() { c.SetLocation(1, 1) })
	mustPanic(t, "Render on disposed", func() { c.Render() })
	mustPanic(t, "MarkDirty on disposed", func() { c.MarkDirty() })
	mustPanic(t, "adding disposed child", func() { NewContainer("p", 1, 1).AddChild(c) })
	mustPanic(t, "adding to disposed parent", func() { c.AddChild(NewContainer("x", 1, 1)) })
}

func TestSetMergeMethodNilPanics(t *testing.T) {
	c := NewContainer("c", 1, 1)
	mustPanic(t, "nil merge method", func() { c.SetMergeMethod(nil) })
}

func TestBounds(t *testing.T) {
	c := NewContainer("c", 4, 3)
	c.SetLocation(-1, 2)
	if got, want := c.Bounds(), image.Rect(-1, 2, 3, 5); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
}
