package main

import (
	"fmt"
	"image"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/lcdkit"
)

// buildDemo fills root with a tab control showing every component type.
// Button2 and Button3 switch pages; Button0 and Button1 act on the active
// page.
func buildDemo(root *lcdkit.Component) {
	w, h := root.Width(), root.Height()
	tabs := lcdkit.NewTabControl("tabs", w, h, nil)
	root.AddChild(tabs)

	tabs.AddChild(clockPage())
	tabs.AddChild(barsPage(w))
	tabs.AddChild(shapesPage(w, h-tabs.HeaderHeight()))
}

func clockPage() *lcdkit.Component {
	page := lcdkit.NewTabPage("clock", "Clock")

	clock := lcdkit.NewLabel("time", time.Now().Format("15:04:05"), nil)
	clock.SetLocation(2, 2)
	page.AddChild(clock)

	news := lcdkit.NewMarquee("ticker", "lcdkit renders a tree of components into a 1-bit bitmap", nil, 100)
	news.SetLocation(2, 14)
	page.AddChild(news)

	// Button0 toggles seconds.
	withSeconds := true
	page.OnButtonDown = func(ctx lcdkit.ButtonContext) {
		if ctx.Button != lcdkit.Button0 {
			return
		}
		withSeconds = !withSeconds
	}
	clock.OnUpdate = func(float64) {
		layout := "15:04"
		if withSeconds {
			layout = "15:04:05"
		}
		clock.SetText(time.Now().Format(layout))
	}
	return page
}

func barsPage(width int) *lcdkit.Component {
	page := lcdkit.NewTabPage("bars", "Bars")

	bar := lcdkit.NewProgressBar("level", width-30, 8)
	bar.SetLocation(2, 2)
	page.AddChild(bar)

	label := lcdkit.NewLabel("value", "0%", nil)
	label.SetLocation(width-26, 2)
	page.AddChild(label)

	vbar := lcdkit.NewProgressBar("vlevel", 6, 16)
	vbar.SetOrientation(lcdkit.Vertical)
	vbar.SetLocation(2, 12)
	page.AddChild(vbar)

	// Button0 and Button1 animate the bars down and up.
	var tweens []*lcdkit.TweenGroup
	animate := func(to float64) {
		tweens = append(tweens[:0],
			lcdkit.TweenValue(bar, to, 0.8, ease.OutCubic),
			lcdkit.TweenValue(vbar, to, 0.8, ease.OutBounce),
		)
	}
	page.OnButtonDown = func(ctx lcdkit.ButtonContext) {
		switch ctx.Button {
		case lcdkit.Button0:
			animate(0)
		case lcdkit.Button1:
			animate(100)
		}
	}
	page.OnUpdate = func(dt float64) {
		for _, g := range tweens {
			g.Update(float32(dt))
		}
		label.SetText(fmt.Sprintf("%.0f%%", bar.Value()))
	}
	return page
}

func shapesPage(width, height int) *lcdkit.Component {
	page := lcdkit.NewTabPage("shapes", "Shapes")

	page.AddChild(lcdkit.NewLine("diag", image.Pt(0, 0), image.Pt(width-1, height-1)))

	box := lcdkit.NewRectangle("box", 24, 12, true)
	box.SetLocation(8, 4)
	box.SetMergeMethod(lcdkit.Invert)
	page.AddChild(box)

	frame := lcdkit.NewRectangle("frame", 40, height-2, false)
	frame.SetLocation(width-44, 1)
	page.AddChild(frame)

	title := lcdkit.NewLabel("merge", lcdkit.Overlay.String(), nil)
	title.SetLocation(40, 6)
	title.SetMergeMethod(lcdkit.Overlay)
	page.AddChild(title)

	// Button0 slides the inverted box across; Button1 cycles the label's
	// merge method.
	methods := []lcdkit.MergeMethod{lcdkit.Overlay, lcdkit.Transparent, lcdkit.Invert, lcdkit.Override}
	current := 0
	var slide *lcdkit.TweenGroup
	page.OnButtonDown = func(ctx lcdkit.ButtonContext) {
		switch ctx.Button {
		case lcdkit.Button0:
			to := 8
			if box.Location().X == 8 {
				to = width - 32
			}
			slide = lcdkit.TweenLocation(box, to, 4, 0.5, ease.InOutQuad)
		case lcdkit.Button1:
			current = (current + 1) % len(methods)
			title.SetMergeMethod(methods[current])
			title.SetText(methods[current].String())
		}
	}
	page.OnUpdate = func(dt float64) {
		if slide != nil {
			slide.Update(float32(dt))
		}
	}
	return page
}
