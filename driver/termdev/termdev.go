// Package termdev is an lcdkit driver that previews a panel in a terminal
// with tcell. Each terminal cell shows two panel rows using half block
// characters; the number keys 1 to 4 press buttons 0 to 3.
package termdev

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/lcdkit"
)

// Options configures a Device. Zero values select defaults.
type Options struct {
	// Width and Height of the previewed panel. Default 160x43.
	Width, Height int
	// Screen to draw on. Default: a new terminal screen. Tests pass a
	// tcell simulation screen.
	Screen tcell.Screen
	// Style used for the panel. Default: white on black.
	Style tcell.Style
}

// Device previews a panel in a terminal.
type Device struct {
	screen tcell.Screen
	style  tcell.Style
	w, h   int

	mu      sync.Mutex
	pending lcdkit.ButtonMask // keys seen since the last poll

	done      chan struct{}
	closeOnce sync.Once
	quitOnce  sync.Once
}

// New initializes the terminal screen and starts reading key events.
func New(opts Options) (*Device, error) {
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = lcdkit.DefaultWidth, lcdkit.DefaultHeight
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("termdev: invalid size %dx%d", opts.Width, opts.Height)
	}
	screen := opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("termdev: new screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("termdev: init screen: %w", err)
	}
	style := opts.Style
	if style == tcell.StyleDefault {
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	}
	screen.SetStyle(style)
	screen.Clear()

	d := &Device{
		screen: screen,
		style:  style,
		w:      opts.Width,
		h:      opts.Height,
		done:   make(chan struct{}),
	}
	go d.pollEvents()
	return d, nil
}

func (d *Device) pollEvents() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			// Screen finalized.
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			d.handleKey(ev)
		}
	}
}

func (d *Device) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		d.quitOnce.Do(func() { close(d.done) })
	case tcell.KeyRune:
		if r := ev.Rune(); r >= '1' && r <= '4' {
			d.mu.Lock()
			d.pending |= lcdkit.Button(r - '1').Mask()
			d.mu.Unlock()
		}
	}
}

// Done is closed when the user presses Esc or Ctrl+C.
func (d *Device) Done() <-chan struct{} {
	return d.done
}

// PollButtons returns the buttons whose keys were pressed since the last
// poll. Terminals report no key releases, so each key press reads as a
// button held for exactly one poll.
func (d *Device) PollButtons() (lcdkit.ButtonMask, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := d.pending
	d.pending = 0
	return m, nil
}

// Write draws bmp in the top-left corner of the terminal. Bitmaps pushed
// with PriorityIdleNoShow are ignored.
func (d *Device) Write(bmp *lcdkit.Bitmap, p lcdkit.Priority) error {
	if bmp.Width() != d.w || bmp.Height() != d.h {
		return fmt.Errorf("termdev: bitmap is %dx%d, panel is %dx%d", bmp.Width(), bmp.Height(), d.w, d.h)
	}
	if p == lcdkit.PriorityIdleNoShow {
		return nil
	}
	for row := 0; row*2 < d.h; row++ {
		for x := 0; x < d.w; x++ {
			r := halfBlock(bmp.Get(x, row*2), bmp.Get(x, row*2+1))
			d.screen.SetContent(x, row, r, nil, d.style)
		}
	}
	d.screen.Show()
	return nil
}

// halfBlock returns the character showing a top and a bottom pixel.
func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}

// Close restores the terminal. Closing twice is a no-op.
func (d *Device) Close() error {
	d.closeOnce.Do(func() {
		d.screen.Fini()
		d.quitOnce.Do(func() { close(d.done) })
	})
	return nil
}
