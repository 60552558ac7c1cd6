package lcdkit

import (
	"log/slog"
	"time"
)

// debugStats holds per-push timing and render metrics.
// Only populated when the Frame is in debug mode.
type debugStats struct {
	rendered   int // components recomputed by this push
	setPixels  int
	renderTime time.Duration
	writeTime  time.Duration
}

// debugLogger is the logger of the Frame that last set debug mode. Component
// operations use it for tree shape warnings.
var debugLogger = slog.Default()

// debugLog logs render stats at debug level.
func (f *Frame) debugLog(stats debugStats) {
	if !f.debug {
		return
	}
	f.logger.Debug("lcdkit: push",
		"rendered", stats.rendered,
		"set_pixels", stats.setPixels,
		"render", stats.renderTime,
		"write", stats.writeTime,
		"total", stats.renderTime+stats.writeTime,
		"priority", f.priority,
	)
}

// countDirty counts the components a render of c would recompute: dirty
// components reachable through visible children.
func countDirty(c *Component) int {
	if !c.dirty {
		return 0
	}
	n := 1
	for _, child := range c.children {
		if child.visible {
			n += countDirty(child)
		}
	}
	return n
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(c *Component) {
	depth := 0
	for p := c; p != nil; p = p.parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("lcdkit: tree depth exceeds threshold",
			"depth", depth, "threshold", debugMaxTreeDepth, "component", c.Name)
	}
}

// debugCheckChildCount warns if a component has more than 256 children.
const debugMaxChildCount = 256

func debugCheckChildCount(c *Component) {
	if len(c.children) > debugMaxChildCount {
		debugLogger.Warn("lcdkit: child count exceeds threshold",
			"component", c.Name, "children", len(c.children), "threshold", debugMaxChildCount)
	}
}
