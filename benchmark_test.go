package lcdkit

import (
	"fmt"
	"image"
	"math/rand/v2"
	"testing"
	"time"
)

// setupBenchTree creates a panel-sized root with n labels spread over it.
func setupBenchTree(n int) (*Component, []*Component) {
	root := NewContainer("root", DefaultWidth, DefaultHeight)
	labels := make([]*Component, n)
	for i := range labels {
		l := NewLabel("l", fmt.Sprintf("item %d", i), nil)
		l.SetLocation((i%4)*40, (i/4)*10%DefaultHeight)
		if i%3 == 0 {
			l.SetMergeMethod(Overlay)
		}
		root.AddChild(l)
		labels[i] = l
	}
	return root, labels
}

// --- Merge benchmarks ---

func BenchmarkMerge(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	dst := NewBitmap(DefaultWidth, DefaultHeight)
	src := randomBitmap(r, 64, 32)
	for _, m := range allMethods {
		b.Run(m.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				dst.Merge(src, image.Pt(40, 5), m)
			}
		})
	}
}

// --- Render benchmarks ---

func BenchmarkRender_Clean(b *testing.B) {
	root, _ := setupBenchTree(16)
	root.Render()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		root.Render()
	}
}

func BenchmarkRender_OneDirtyLabel(b *testing.B) {
	root, labels := setupBenchTree(16)
	root.Render()
	texts := [2]string{"tick", "tock"}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		labels[5].SetText(texts[i%2])
		root.Render()
	}
}

func BenchmarkRender_AllDirty(b *testing.B) {
	root, labels := setupBenchTree(16)
	root.Render()

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		for _, l := range labels {
			l.MarkDirty()
		}
		root.Render()
	}
}

func BenchmarkFrameTick_Marquee(b *testing.B) {
	f := NewFrame(&benchDriver{}, FrameConfig{})
	m := NewMarquee("m", "a fairly long line of text that has to scroll", nil, DefaultWidth)
	f.Root().AddChild(m)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := f.Tick(100 * time.Millisecond); err != nil {
			b.Fatal(err)
		}
	}
}

// benchDriver discards every write.
type benchDriver struct{}

func (benchDriver) Write(*Bitmap, Priority) error    { return nil }
func (benchDriver) PollButtons() (ButtonMask, error) { return 0, nil }
