package lcdkit

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to two values of a Component simultaneously.
// Create one via the convenience constructors (TweenLocation, TweenSize,
// TweenValue) and call Update(dt) each tick, typically from an OnUpdate hook.
// Values are applied through the component's setters, so the component is
// only marked dirty when a whole pixel (or the bar value) actually changes.
// If the target component is disposed, the group stops immediately.
//
// There is no global animation manager; users call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(v [2]float64)
	target *Component
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target. If the target has been disposed, Done is set to true and nothing
// is applied.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var v [2]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(v)
	g.Done = allDone
}

// TweenLocation creates a TweenGroup that moves c to (toX, toY) over the
// given duration in seconds using the easing function.
func TweenLocation(c *Component, toX, toY int, duration float32, fn ease.TweenFunc) *TweenGroup {
	c.checkAlive("TweenLocation")
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(c.location.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(c.location.Y), float32(toY), duration, fn)
	g.apply = func(v [2]float64) {
		c.SetLocation(roundPx(v[0]), roundPx(v[1]))
	}
	return g
}

// TweenSize creates a TweenGroup that resizes c to toW×toH over the given
// duration in seconds using the easing function.
func TweenSize(c *Component, toW, toH int, duration float32, fn ease.TweenFunc) *TweenGroup {
	c.checkAlive("TweenSize")
	checkSize(toW, toH)
	g := &TweenGroup{count: 2, target: c}
	g.tweens[0] = gween.New(float32(c.width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(c.height), float32(toH), duration, fn)
	g.apply = func(v [2]float64) {
		c.SetSize(max(roundPx(v[0]), 0), max(roundPx(v[1]), 0))
	}
	return g
}

// TweenValue creates a TweenGroup that animates a progress bar's value to
// the target over the given duration in seconds using the easing function.
func TweenValue(c *Component, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := c.mustBeProgress("TweenValue")
	g := &TweenGroup{count: 1, target: c}
	g.tweens[0] = gween.New(float32(p.value), float32(to), duration, fn)
	g.apply = func(v [2]float64) {
		c.SetValue(v[0])
	}
	return g
}

func roundPx(v float64) int {
	return int(math.Round(v))
}
