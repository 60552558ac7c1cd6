package lcdkit

import (
	"fmt"

	"tinygo.org/x/tinyfont"
)

// NewTickRateLabel creates a label that displays the measured tick rate of
// the frame driving it. The text is refreshed about every half second, so the
// label only dirties the tree twice a second. A nil font selects DefaultFont.
func NewTickRateLabel(name string, font tinyfont.Fonter) *Component {
	l := NewLabel(name, "TPS: --", font)

	var elapsed float64
	var ticks int
	l.OnUpdate = func(dt float64) {
		elapsed += dt
		ticks++
		if elapsed < 0.5 {
			return
		}
		l.SetText(fmt.Sprintf("TPS: %.1f", float64(ticks)/elapsed))
		elapsed, ticks = 0, 0
	}
	return l
}
