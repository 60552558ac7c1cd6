// Package ssd1306dev is an lcdkit driver for SSD1306 OLED panels on an I²C
// bus, with panel buttons read from GPIO pins.
//
// Buttons are wired active low: each pin is configured as an input with a
// pull-up, and a pin reading low is a held button.
package ssd1306dev

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/phanxgames/lcdkit"
)

// Options configures Open. Zero values select defaults.
type Options struct {
	// Bus is the I²C bus name passed to i2creg.Open. Empty selects the
	// first available bus.
	Bus string
	// Width and Height of the panel. Default 128x64.
	Width, Height int
	// Rotated flips the panel by 180 degrees.
	Rotated bool
	// ButtonPins are GPIO pin names, in button order.
	ButtonPins []string
}

// panel is the part of *ssd1306.Dev the driver uses.
type panel interface {
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// Device drives an SSD1306 panel.
type Device struct {
	mu     sync.Mutex
	panel  panel
	bus    io.Closer
	pins   []gpio.PinIn
	buf    *image1bit.VerticalLSB
	closed bool
}

// Open initializes the host drivers, opens the I²C bus, and configures the
// panel and button pins.
func Open(opts Options) (*Device, error) {
	if opts.Width == 0 && opts.Height == 0 {
		opts.Width, opts.Height = 128, 64
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("ssd1306dev: host init: %w", err)
	}

	pins := make([]gpio.PinIn, 0, len(opts.ButtonPins))
	for _, name := range opts.ButtonPins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("ssd1306dev: gpio pin %q not found", name)
		}
		pins = append(pins, p)
	}

	bus, err := i2creg.Open(opts.Bus)
	if err != nil {
		return nil, fmt.Errorf("ssd1306dev: open i2c bus %q: %w", opts.Bus, err)
	}
	so := ssd1306.DefaultOpts
	so.W, so.H, so.Rotated = opts.Width, opts.Height, opts.Rotated
	dev, err := ssd1306.NewI2C(bus, &so)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("ssd1306dev: init panel: %w", err)
	}

	d, err := newDevice(dev, bus, pins, opts.Width, opts.Height)
	if err != nil {
		dev.Halt()
		bus.Close()
		return nil, err
	}
	return d, nil
}

func newDevice(p panel, bus io.Closer, pins []gpio.PinIn, width, height int) (*Device, error) {
	for _, pin := range pins {
		if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
			return nil, fmt.Errorf("ssd1306dev: configure %s: %w", pin, err)
		}
	}
	return &Device{
		panel: p,
		bus:   bus,
		pins:  pins,
		buf:   image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
	}, nil
}

// Write draws bmp on the panel. Bitmaps pushed with PriorityIdleNoShow are
// skipped.
func (d *Device) Write(bmp *lcdkit.Bitmap, p lcdkit.Priority) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return lcdkit.ErrClosed
	}
	r := d.buf.Bounds()
	if bmp.Width() != r.Dx() || bmp.Height() != r.Dy() {
		return fmt.Errorf("ssd1306dev: bitmap is %dx%d, panel is %dx%d", bmp.Width(), bmp.Height(), r.Dx(), r.Dy())
	}
	if p == lcdkit.PriorityIdleNoShow {
		return nil
	}
	toVerticalLSB(bmp, d.buf)
	if err := d.panel.Draw(r, d.buf, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306dev: draw: %w", err)
	}
	return nil
}

// toVerticalLSB copies bmp into buf, which must have the same size. Set
// pixels are lit.
func toVerticalLSB(bmp *lcdkit.Bitmap, buf *image1bit.VerticalLSB) {
	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			buf.SetBit(x, y, image1bit.Bit(bmp.Get(x, y)))
		}
	}
}

// PollButtons reads every button pin.
func (d *Device) PollButtons() (lcdkit.ButtonMask, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, lcdkit.ErrClosed
	}
	var m lcdkit.ButtonMask
	for i, pin := range d.pins {
		if i >= lcdkit.MaxButtons {
			break
		}
		if pin.Read() == gpio.Low {
			m |= lcdkit.Button(i).Mask()
		}
	}
	return m, nil
}

// Close blanks the panel and releases the bus. Closing twice is a no-op.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	var errs []error
	if err := d.panel.Halt(); err != nil {
		errs = append(errs, fmt.Errorf("ssd1306dev: halt: %w", err))
	}
	if d.bus != nil {
		if err := d.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ssd1306dev: close bus: %w", err))
		}
	}
	return errors.Join(errs...)
}
