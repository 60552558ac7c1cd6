package lcdkit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Default panel resolution.
const (
	DefaultWidth  = 160
	DefaultHeight = 43
)

// ErrClosed is returned by Tick after the frame has been closed.
var ErrClosed = errors.New("lcdkit: frame closed")

// FrameConfig configures a Frame. Zero values select defaults.
type FrameConfig struct {
	// Width and Height of the panel. Default 160x43.
	Width, Height int
	// Priority bitmaps are pushed with. Default PriorityNormal.
	Priority Priority
	// Debug enables per-tick render stats and tree shape warnings.
	Debug bool
	// Logger receives debug stats and driver errors. Default slog.Default().
	Logger *slog.Logger
	// ScreenshotDir is where Screenshot writes PNG files. Default "screenshots".
	ScreenshotDir string
}

// Frame is the top-level object that owns the root component, pumps rendered
// bitmaps to a Driver, and turns polled button state into events.
type Frame struct {
	root     *Component
	driver   Driver
	priority Priority
	logger   *slog.Logger
	debug    bool

	// forceWrite makes the next Tick push the current bitmap even when the
	// tree is clean (priority changes).
	forceWrite bool
	closed     bool
	last       *Bitmap // copy of the most recently pushed bitmap
	blank      *Bitmap // pushed when the root renders empty
	writes     int

	// Input
	buttons     ButtonMask
	handlers    handlerRegistry
	injectQueue []ButtonMask
	injectState ButtonMask
	testRunner  *TestRunner

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string
}

// NewFrame creates a frame with a root container sized to the panel.
// Panics if driver is nil.
func NewFrame(driver Driver, cfg FrameConfig) *Frame {
	if driver == nil {
		panic("lcdkit: nil driver")
	}
	if cfg.Width == 0 && cfg.Height == 0 {
		cfg.Width, cfg.Height = DefaultWidth, DefaultHeight
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	f := &Frame{
		root:          NewContainer("root", cfg.Width, cfg.Height),
		driver:        driver,
		priority:      cfg.Priority,
		logger:        cfg.Logger,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	f.SetDebugMode(cfg.Debug)
	return f
}

// Root returns the frame's root container.
func (f *Frame) Root() *Component {
	return f.root
}

// Priority returns the priority bitmaps are pushed with.
func (f *Frame) Priority() Priority {
	return f.priority
}

// SetPriority changes the push priority. The current bitmap is pushed again
// on the next Tick.
func (f *Frame) SetPriority(p Priority) {
	if f.priority == p {
		return
	}
	f.priority = p
	f.forceWrite = true
}

// Bitmap returns a copy of the most recently pushed bitmap, or nil before
// the first push.
func (f *Frame) Bitmap() *Bitmap {
	if f.last == nil {
		return nil
	}
	return f.last.Clone()
}

// Writes returns how many bitmaps have been pushed to the driver.
func (f *Frame) Writes() int {
	return f.writes
}

// Buttons returns the button state seen by the last Tick.
func (f *Frame) Buttons() ButtonMask {
	return f.buttons
}

// SetDebugMode enables or disables debug mode. When enabled, per-tick render
// stats are logged at debug level and tree depth and child count warnings
// are logged when components are added.
func (f *Frame) SetDebugMode(enabled bool) {
	f.debug = enabled
	globalDebug = enabled
	debugLogger = f.logger
}

// globalDebug mirrors the most recently set Frame debug flag so that
// component operations (which lack a Frame pointer) can check it cheaply.
var globalDebug bool

// Tick runs one pump cycle: take the next injected button state or poll the
// driver, dispatch button edges, run update hooks with dt, and if anything
// changed render the tree and push it. It reports whether a bitmap was pushed.
func (f *Frame) Tick(dt time.Duration) (bool, error) {
	if f.closed {
		return false, ErrClosed
	}
	if f.testRunner != nil {
		f.testRunner.step(f)
	}

	mask, ok := f.nextInjected()
	if !ok {
		var err error
		mask, err = f.driver.PollButtons()
		if err != nil {
			return false, fmt.Errorf("poll buttons: %w", err)
		}
	}
	f.processButtons(mask)
	updateComponents(f.root, dt.Seconds())

	wrote, err := f.push()
	f.flushScreenshots()
	return wrote, err
}

func (f *Frame) push() (bool, error) {
	if !f.root.Dirty() && !f.forceWrite {
		return false, nil
	}
	var stats debugStats
	var t0 time.Time
	if f.debug {
		stats.rendered = countDirty(f.root)
		t0 = time.Now()
	}

	bmp := f.root.Render().Bitmap()
	if bmp == nil {
		if f.blank == nil || f.blank.w != f.root.width || f.blank.h != f.root.height {
			f.blank = NewBitmap(f.root.width, f.root.height)
		}
		bmp = f.blank
	}

	if f.debug {
		stats.renderTime = time.Since(t0)
		t0 = time.Now()
	}

	if err := f.driver.Write(bmp, f.priority); err != nil {
		f.logger.Error("lcdkit: write failed", "priority", f.priority, "err", err)
		// The tree is clean now; retry the push next tick.
		f.forceWrite = true
		return false, fmt.Errorf("write bitmap: %w", err)
	}
	f.forceWrite = false
	f.writes++
	if f.last == nil || f.last.w != bmp.w || f.last.h != bmp.h {
		f.last = bmp.Clone()
	} else {
		copy(f.last.pix, bmp.pix)
	}

	if f.debug {
		stats.writeTime = time.Since(t0)
		stats.setPixels = bmp.Count()
		f.debugLog(stats)
	}
	return true, nil
}

// Run calls Tick every interval until ctx is done or Tick fails. It returns
// nil when ctx is cancelled.
func (f *Frame) Run(ctx context.Context, interval time.Duration) error {
	if _, err := f.Tick(0); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if _, err := f.Tick(dt); err != nil {
				return err
			}
		}
	}
}

// Close disposes the component tree and closes the driver if it implements
// io.Closer. Closing an already closed frame is a no-op.
func (f *Frame) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.root.Dispose()
	f.handlers = handlerRegistry{}
	if c, ok := f.driver.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close driver: %w", err)
		}
	}
	return nil
}
