package lcdkit

import (
	"image"
	"testing"
)

func TestRenderCaching(t *testing.T) {
	root := NewContainer("root", 6, 4)
	child := NewRectangle("child", 3, 2, true)
	root.AddChild(child)

	s1 := root.Render()
	first := s1.Bitmap().Clone()
	s2 := root.Render()

	if root.RenderCount() != 1 || child.RenderCount() != 1 {
		t.Errorf("RenderCount = %d/%d, want 1/1", root.RenderCount(), child.RenderCount())
	}
	if s1.Bitmap() != s2.Bitmap() {
		t.Error("clean render should return the cached bitmap")
	}
	if !s2.Bitmap().Equal(first) {
		t.Error("cached bitmap changed")
	}
}

func TestRenderOnlyDirtyPath(t *testing.T) {
	root := NewContainer("root", 10, 4)
	a := NewRectangle("a", 2, 2, true)
	b := NewRectangle("b", 2, 2, true)
	b.SetLocation(5, 0)
	root.AddChild(a)
	root.AddChild(b)
	root.Render()

	b.SetFilled(false)
	root.Render()
	if a.RenderCount() != 1 {
		t.Errorf("unchanged sibling rendered %d times, want 1", a.RenderCount())
	}
	if b.RenderCount() != 2 {
		t.Errorf("changed child rendered %d times, want 2", b.RenderCount())
	}
	if root.RenderCount() != 2 {
		t.Errorf("root rendered %d times, want 2", root.RenderCount())
	}
}

func TestRenderZOrder(t *testing.T) {
	root := NewContainer("root", 4, 2)
	a := NewPicture("a", bitmapFrom(
		"###.",
		"###.",
	))
	b := NewPicture("b", bitmapFrom(
		"#.",
		".#",
	))
	b.SetLocation(1, 0)
	root.AddChild(a)
	root.AddChild(b)

	// Later children win wherever they overlap.
	assertBitmap(t, root.Render().Bitmap(),
		"##..",
		"#.#.",
	)

	root.SetChildIndex(b, 0)
	assertBitmap(t, root.Render().Bitmap(),
		"###.",
		"###.",
	)
}

func TestRenderChildMergeMethods(t *testing.T) {
	tests := []struct {
		name  string
		merge MergeMethod
		want  []string
	}{
		{"override", Override, []string{"#..#", "#..#"}},
		{"transparent", Transparent, []string{"####", "####"}},
		{"invert", Invert, []string{"#..#", "#..#"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewContainer("root", 4, 2)
			bg := NewRectangle("bg", 4, 2, true)
			root.AddChild(bg)
			hole := NewPicture("hole", bitmapFrom("##", "##"))
			if tt.merge == Override {
				hole.SetPicture(bitmapFrom("..", ".."))
			}
			hole.SetLocation(1, 0)
			hole.SetMergeMethod(tt.merge)
			root.AddChild(hole)
			assertBitmap(t, root.Render().Bitmap(), tt.want...)
		})
	}
}

func TestRenderHiddenChildSkipped(t *testing.T) {
	root := NewContainer("root", 2, 1)
	child := NewRectangle("child", 2, 1, true)
	root.AddChild(child)
	child.SetVisible(false)

	if got := root.Render().Bitmap().Count(); got != 0 {
		t.Errorf("hidden child drew %d pixels", got)
	}
	if child.RenderCount() != 0 {
		t.Error("hidden child should not be rendered")
	}
}

func TestHiddenChildStaysDirtyUntilShown(t *testing.T) {
	root := NewContainer("root", 2, 1)
	child := NewRectangle("child", 1, 1, true)
	root.AddChild(child)
	child.SetVisible(false)
	root.Render()

	if root.Dirty() {
		t.Error("root should be clean after render")
	}
	if !child.Dirty() {
		t.Error("hidden child is never rendered and stays dirty")
	}

	child.SetLocation(1, 0)
	if !root.Dirty() {
		t.Error("change under a clean parent should still reach the root")
	}
	root.Render()
	child.SetVisible(true)
	assertBitmap(t, root.Render().Bitmap(), ".#")
	if child.Dirty() {
		t.Error("child should be clean once shown and rendered")
	}
}

func TestRenderZeroSizeEmpty(t *testing.T) {
	c := NewContainer("zero", 0, 5)
	c.AddChild(NewRectangle("r", 2, 2, true))
	s := c.Render()
	if !s.Empty() {
		t.Error("zero size component should render an empty snapshot")
	}
	if c.Dirty() {
		t.Error("component should be clean after rendering empty")
	}

	parent := NewContainer("parent", 3, 3)
	parent.AddChild(c)
	if got := parent.Render().Bitmap().Count(); got != 0 {
		t.Errorf("empty snapshot drew %d pixels", got)
	}
}

func TestEmptyDistinctFromBlank(t *testing.T) {
	root := NewContainer("root", 2, 1)
	bg := NewRectangle("bg", 2, 1, true)
	blank := NewContainer("blank", 2, 1)
	empty := NewContainer("empty", 0, 1)
	root.AddChild(bg)
	root.AddChild(empty)

	// An empty snapshot draws nothing.
	assertBitmap(t, root.Render().Bitmap(), "##")

	// A same-size blank bitmap still overrides what is beneath it.
	root.AddChild(blank)
	assertBitmap(t, root.Render().Bitmap(), "..")
}

func TestSnapshotLocationAndMerge(t *testing.T) {
	c := NewRectangle("r", 2, 2, false)
	c.SetLocation(3, 4)
	c.SetMergeMethod(Overlay)
	s := c.Render()
	if s.Location() != image.Pt(3, 4) {
		t.Errorf("Location = %v", s.Location())
	}
	if s.MergeMethod() != Overlay {
		t.Errorf("MergeMethod = %s", s.MergeMethod())
	}
	var zero Snapshot
	if !zero.Empty() {
		t.Error("zero Snapshot should be empty")
	}
	zero.DrawOnto(NewBitmap(1, 1)) // no-op
}

func TestRenderRecyclesBuffer(t *testing.T) {
	c := NewRectangle("r", 3, 3, true)
	first := c.Render().Bitmap()
	c.SetFilled(false)
	second := c.Render().Bitmap()
	if first == second {
		t.Fatal("current snapshot must not share a buffer with the previous one")
	}
	c.SetFilled(true)
	third := c.Render().Bitmap()
	if third != first {
		t.Error("third render should reuse the first buffer")
	}
	assertBitmap(t, second, "###", "#.#", "###")
	assertBitmap(t, third, "###", "###", "###")
}

func TestRenderAfterResize(t *testing.T) {
	c := NewRectangle("r", 2, 2, true)
	c.Render()
	c.SetSize(3, 1)
	assertBitmap(t, c.Render().Bitmap(), "###")
}

func TestDrawLine(t *testing.T) {
	b := NewBitmap(5, 3)
	drawLine(b, image.Pt(0, 0), image.Pt(4, 2))
	assertBitmap(t, b,
		"#....",
		".##..",
		"...##",
	)

	b = NewBitmap(3, 3)
	drawLine(b, image.Pt(2, 2), image.Pt(2, 0))
	assertBitmap(t, b, "..#", "..#", "..#")
}

func TestStrokeRect(t *testing.T) {
	b := NewBitmap(4, 3)
	strokeRect(b, 0, 0, 4, 3)
	assertBitmap(t, b, "####", "#..#", "####")
}
