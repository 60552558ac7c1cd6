// Package lcdkit is a retained-mode compositing toolkit for small monochrome
// LCD and OLED panels.
//
// The screen is described as a tree of [Component] values. Each component
// renders its own pixels into a 1-bit [Bitmap], composites its visible
// children on top with a [MergeMethod], and caches the result as a
// [Snapshot]. Changing a component marks it and its ancestors dirty, so a
// render only recomputes what changed.
//
// # Quick start
//
// A [Frame] owns the root container and pumps rendered bitmaps to a
// [Driver]:
//
//	drv := termdev.New(termdev.Options{Width: 160, Height: 43})
//	frame := lcdkit.NewFrame(drv, lcdkit.FrameConfig{})
//	defer frame.Close()
//
//	title := lcdkit.NewLabel("title", "Hello", nil)
//	frame.Root().AddChild(title)
//
//	frame.Run(ctx, 50*time.Millisecond)
//
// # Merge methods
//
// Four merge methods are provided:
//
//   - [Override] copies the child rectangle onto the parent.
//   - [Transparent] only sets pixels.
//   - [Invert] flips parent pixels under set child pixels.
//   - [Overlay] sets pixels and clears a one pixel halo around them.
//
// # Components
//
// Constructors build the component types: [NewContainer], [NewLabel],
// [NewMarquee], [NewProgressBar], [NewLine], [NewRectangle], [NewPicture],
// [NewTabControl] and [NewTabPage]. A single [Component] struct is used for
// all of them; calling a method that does not apply to the component's type
// panics.
//
// # Buttons
//
// Drivers report held buttons as a [ButtonMask]. Each Tick, the frame turns
// changes into press and release events, runs frame-level handlers
// registered with [Frame.OnButtonDown] and [Frame.OnButtonUp], then
// delivers the event to every visible component. Tab controls consume their
// navigation buttons and forward the rest to the active page only.
//
// # Testing
//
// [Frame.InjectClick] and friends queue synthetic button states.
// [LoadTestScript] reads a JSON script of clicks, waits and screenshots for
// automated runs against any driver.
//
// # Drivers
//
// Subpackages provide drivers for an Ebitengine window
// (driver/ebitendev), a terminal (driver/termdev) and SSD1306 OLED panels
// over I²C (driver/ssd1306dev).
package lcdkit
