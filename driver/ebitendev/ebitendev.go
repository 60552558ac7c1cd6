// Package ebitendev is an lcdkit driver that emulates a panel in a desktop
// window using Ebitengine. The panel is scaled up by an integer factor and
// keyboard keys stand in for the panel buttons.
package ebitendev

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/lcdkit"
)

// Options configures a Device. Zero values select defaults.
type Options struct {
	// Width and Height of the emulated panel. Default 160x43.
	Width, Height int
	// Scale is the window pixels per panel pixel. Default 4.
	Scale int
	// Title of the window. Default "lcdkit".
	Title string
	// SetColor and UnsetColor paint set and unset pixels. Defaults mimic a
	// backlit blue panel.
	SetColor, UnsetColor color.Color
}

// keyMap lists the keys for each button index. Both the number row and the
// function keys work.
var keyMap = [...][2]ebiten.Key{
	{ebiten.KeyDigit1, ebiten.KeyF1},
	{ebiten.KeyDigit2, ebiten.KeyF2},
	{ebiten.KeyDigit3, ebiten.KeyF3},
	{ebiten.KeyDigit4, ebiten.KeyF4},
}

// Device is an emulated panel. Write and PollButtons are safe to call from
// the goroutine running the Frame while Run owns the main thread.
type Device struct {
	opts Options
	on   color.RGBA
	off  color.RGBA

	mu      sync.Mutex
	pixels  []byte // RGBA, panel resolution
	fresh   bool   // pixels changed since last upload
	buttons lcdkit.ButtonMask
	writes  int

	img *ebiten.Image
}

// New creates an emulated panel. The window opens when Run is called.
func New(opts Options) *Device {
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = lcdkit.DefaultWidth, lcdkit.DefaultHeight
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		panic(fmt.Sprintf("ebitendev: invalid size %dx%d", opts.Width, opts.Height))
	}
	if opts.Scale <= 0 {
		opts.Scale = 4
	}
	if opts.Title == "" {
		opts.Title = "lcdkit"
	}
	if opts.SetColor == nil {
		opts.SetColor = lcdkit.ScreenshotSetColor
	}
	if opts.UnsetColor == nil {
		opts.UnsetColor = lcdkit.ScreenshotUnsetColor
	}
	d := &Device{
		opts:   opts,
		on:     color.RGBAModel.Convert(opts.SetColor).(color.RGBA),
		off:    color.RGBAModel.Convert(opts.UnsetColor).(color.RGBA),
		pixels: make([]byte, 4*opts.Width*opts.Height),
		fresh:  true,
	}
	d.paint(nil)
	return d
}

// Write copies bmp into the window's back buffer. Bitmaps pushed with
// PriorityIdleNoShow are ignored.
func (d *Device) Write(bmp *lcdkit.Bitmap, p lcdkit.Priority) error {
	if bmp.Width() != d.opts.Width || bmp.Height() != d.opts.Height {
		return fmt.Errorf("ebitendev: bitmap is %dx%d, panel is %dx%d",
			bmp.Width(), bmp.Height(), d.opts.Width, d.opts.Height)
	}
	if p == lcdkit.PriorityIdleNoShow {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paint(bmp)
	d.writes++
	return nil
}

// paint fills the pixel buffer from bmp, or with the unset color when bmp is
// nil. Callers hold mu, except during construction.
func (d *Device) paint(bmp *lcdkit.Bitmap) {
	w := d.opts.Width
	for y := 0; y < d.opts.Height; y++ {
		for x := 0; x < w; x++ {
			c := d.off
			if bmp != nil && bmp.Get(x, y) {
				c = d.on
			}
			i := 4 * (y*w + x)
			d.pixels[i+0] = c.R
			d.pixels[i+1] = c.G
			d.pixels[i+2] = c.B
			d.pixels[i+3] = c.A
		}
	}
	d.fresh = true
}

// PollButtons returns the buttons held down at the last window update.
func (d *Device) PollButtons() (lcdkit.ButtonMask, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buttons, nil
}

// Image returns a copy of the window's back buffer at panel resolution.
func (d *Device) Image() *image.RGBA {
	d.mu.Lock()
	defer d.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, d.opts.Width, d.opts.Height))
	copy(img.Pix, d.pixels)
	return img
}

// Writes returns how many bitmaps have been shown.
func (d *Device) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// buttonsFromKeys builds the button mask from a key state query.
func buttonsFromKeys(pressed func(ebiten.Key) bool) lcdkit.ButtonMask {
	var m lcdkit.ButtonMask
	for i, keys := range keyMap {
		if pressed(keys[0]) || pressed(keys[1]) {
			m |= lcdkit.Button(i).Mask()
		}
	}
	return m
}

// Run opens the window and blocks until it is closed, ctx is done, or pump
// returns. pump runs in its own goroutine with a context that is cancelled
// when the window closes; it typically calls Frame.Run. Run must be called
// from the main goroutine.
func (d *Device) Run(ctx context.Context, pump func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pumpErr := make(chan error, 1)
	go func() {
		pumpErr <- pump(ctx)
		cancel()
	}()

	ebiten.SetWindowTitle(d.opts.Title)
	ebiten.SetWindowSize(d.opts.Width*d.opts.Scale, d.opts.Height*d.opts.Scale)
	err := ebiten.RunGame(&game{dev: d, ctx: ctx})
	cancel()
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if perr := <-pumpErr; err == nil {
		err = perr
	}
	return err
}

// game adapts a Device to ebiten.Game.
type game struct {
	dev *Device
	ctx context.Context
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	m := buttonsFromKeys(ebiten.IsKeyPressed)
	g.dev.mu.Lock()
	g.dev.buttons = m
	g.dev.mu.Unlock()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	d := g.dev
	if d.img == nil {
		d.img = ebiten.NewImage(d.opts.Width, d.opts.Height)
	}
	d.mu.Lock()
	if d.fresh {
		d.img.WritePixels(d.pixels)
		d.fresh = false
	}
	d.mu.Unlock()
	screen.DrawImage(d.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.dev.opts.Width, g.dev.opts.Height
}
