package lcdkit

import (
	"fmt"
	"strings"
)

// ComponentType distinguishes rendering behavior for a Component.
type ComponentType uint8

const (
	ComponentContainer   ComponentType = iota // group component with no content of its own
	ComponentLabel                            // single line of text
	ComponentMarquee                          // horizontally scrolling text
	ComponentProgressBar                      // value bar with optional border
	ComponentLine                             // straight line between two local points
	ComponentRectangle                        // outlined or filled rectangle
	ComponentPicture                          // fixed bitmap
	ComponentTabControl                       // paging container with a title header
	ComponentTabPage                          // page owned by a TabControl
)

var componentTypeNames = [...]string{
	ComponentContainer:   "container",
	ComponentLabel:       "label",
	ComponentMarquee:     "marquee",
	ComponentProgressBar: "progressbar",
	ComponentLine:        "line",
	ComponentRectangle:   "rectangle",
	ComponentPicture:     "picture",
	ComponentTabControl:  "tabcontrol",
	ComponentTabPage:     "tabpage",
}

func (t ComponentType) String() string {
	if int(t) < len(componentTypeNames) {
		return componentTypeNames[t]
	}
	return fmt.Sprintf("ComponentType(%d)", t)
}

// Priority is the display priority class a bitmap is pushed with. The device
// decides whether a bitmap pushed at a given priority is actually shown.
type Priority uint8

// The zero value is PriorityNormal.
const (
	PriorityNormal     Priority = iota // regular foreground output
	PriorityIdleNoShow                 // keep the bitmap but do not bring it to front
	PriorityBackground                 // show only when no other applet wants the screen
	PriorityAlert                      // interrupt other applets
)

var priorityNames = [...]string{
	PriorityIdleNoShow: "idle",
	PriorityBackground: "background",
	PriorityNormal:     "normal",
	PriorityAlert:      "alert",
}

func (p Priority) String() string {
	if int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return fmt.Sprintf("Priority(%d)", p)
}

// ParsePriority resolves a priority name as produced by Priority.String.
// Matching is case-insensitive.
func ParsePriority(name string) (Priority, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range priorityNames {
		if n == name {
			return Priority(i), nil
		}
	}
	return 0, fmt.Errorf("lcdkit: unknown priority %q", name)
}

// Button identifies a hardware button by index.
type Button uint8

// Soft buttons found below most monochrome panels.
const (
	Button0 Button = iota
	Button1
	Button2
	Button3
)

// MaxButtons is the number of buttons a ButtonMask can represent.
const MaxButtons = 32

// ButtonMask is a bitmask of pressed buttons as reported by a Driver.
type ButtonMask uint32

// Mask returns the mask with only b set.
func (b Button) Mask() ButtonMask {
	return 1 << b
}

// Has reports whether b is pressed in m.
func (m ButtonMask) Has(b Button) bool {
	return b < MaxButtons && m&b.Mask() != 0
}

// TextAlign controls horizontal text alignment within a Label.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)

// Orientation selects the fill direction of a ProgressBar.
type Orientation uint8

const (
	Horizontal Orientation = iota // fill left to right
	Vertical                      // fill bottom to top
)
