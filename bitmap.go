package lcdkit

import (
	"image"
	"image/color"
	"strings"

	"tinygo.org/x/drivers"
)

// darkThreshold is the channel value (8-bit) below which an opaque source
// pixel is classified as set when binarizing a color image.
const darkThreshold = 64

// Bitmap is a fixed-size 1-bit-per-pixel raster. Reads outside the bitmap
// return false and writes outside it are dropped, so callers never need to
// clip coordinates themselves.
//
// Bitmap implements image.Image with set pixels reported as black and unset
// pixels as white, which keeps BitmapFromImage(b.ToImage(...)) lossless for the
// default colors.
type Bitmap struct {
	w, h int
	pix  []bool
}

// NewBitmap creates an unset bitmap of the given size.
// Panics if either dimension is negative.
func NewBitmap(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic("lcdkit: bitmap dimensions must not be negative")
	}
	return &Bitmap{w: width, h: height, pix: make([]bool, width*height)}
}

// BitmapFromImage binarizes img into a new bitmap of the given size. Source
// pixels are sampled relative to img.Bounds().Min; a pixel is set iff it is
// fully opaque and each of its red, green and blue channels is below 64/255.
// Cells outside the source image are unset.
func BitmapFromImage(img image.Image, width, height int) *Bitmap {
	if img == nil {
		panic("lcdkit: nil image")
	}
	b := NewBitmap(width, height)
	r := img.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := image.Pt(r.Min.X+x, r.Min.Y+y)
			if !p.In(r) {
				continue
			}
			b.pix[y*width+x] = isDark(img.At(p.X, p.Y))
		}
	}
	return b
}

func isDark(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.A == 0xFF && n.R < darkThreshold && n.G < darkThreshold && n.B < darkThreshold
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.w }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.h }

// Size returns the bitmap dimensions as a point.
func (b *Bitmap) Size() image.Point { return image.Pt(b.w, b.h) }

func (b *Bitmap) inBounds(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

// Get reports whether the pixel at (x, y) is set.
func (b *Bitmap) Get(x, y int) bool {
	if !b.inBounds(x, y) {
		return false
	}
	return b.pix[y*b.w+x]
}

// Set overwrites the pixel at (x, y). No-op outside the bitmap.
func (b *Bitmap) Set(x, y int, v bool) {
	if !b.inBounds(x, y) {
		return
	}
	b.pix[y*b.w+x] = v
}

// Reset clears every pixel.
func (b *Bitmap) Reset() {
	clear(b.pix)
}

// Fill sets or clears every pixel.
func (b *Bitmap) Fill(v bool) {
	for i := range b.pix {
		b.pix[i] = v
	}
}

// Invert flips every pixel.
func (b *Bitmap) Invert() {
	for i, v := range b.pix {
		b.pix[i] = !v
	}
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.pix {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of b.
func (b *Bitmap) Clone() *Bitmap {
	c := &Bitmap{w: b.w, h: b.h, pix: make([]bool, len(b.pix))}
	copy(c.pix, b.pix)
	return c
}

// Equal reports whether o has the same size and pixels as b.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil || b.w != o.w || b.h != o.h {
		return false
	}
	for i, v := range b.pix {
		if o.pix[i] != v {
			return false
		}
	}
	return true
}

// ResizeCopy returns a new bitmap of the requested size holding the region of
// b that overlaps it, anchored at (0, 0). Cells outside the overlap are unset.
func (b *Bitmap) ResizeCopy(width, height int) *Bitmap {
	r := NewBitmap(width, height)
	cw, ch := min(width, b.w), min(height, b.h)
	for y := 0; y < ch; y++ {
		copy(r.pix[y*width:y*width+cw], b.pix[y*b.w:y*b.w+cw])
	}
	return r
}

// Merge composites src onto b with its top-left corner at at, using m.
// Panics if src or m is nil.
func (b *Bitmap) Merge(src *Bitmap, at image.Point, m MergeMethod) {
	if m == nil {
		panic("lcdkit: nil merge method")
	}
	m.Merge(src, b, at)
}

// ToImage renders the bitmap as a full-color raster using setColor for set
// pixels and unsetColor for the rest.
func (b *Bitmap) ToImage(setColor, unsetColor color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.w, b.h))
	on := color.RGBAModel.Convert(setColor).(color.RGBA)
	off := color.RGBAModel.Convert(unsetColor).(color.RGBA)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			c := off
			if b.pix[y*b.w+x] {
				c = on
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.w, b.h) }

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	if b.Get(x, y) {
		return color.Gray{Y: 0}
	}
	return color.Gray{Y: 0xFF}
}

// String renders the bitmap as rows of '#' and '.', one line per row.
func (b *Bitmap) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			if b.pix[y*b.w+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Displayer returns a drivers.Displayer that draws into b, so tinyfont and
// other TinyGo drawing helpers can render directly onto the bitmap. Any pixel
// with a non-zero alpha is drawn as set when setOn is true and as unset
// otherwise.
func (b *Bitmap) Displayer(setOn bool) drivers.Displayer {
	return &bitmapDisplayer{b: b, on: setOn}
}

type bitmapDisplayer struct {
	b  *Bitmap
	on bool
}

func (d *bitmapDisplayer) Size() (x, y int16) {
	return int16(d.b.w), int16(d.b.h)
}

func (d *bitmapDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if c.A == 0 {
		return
	}
	d.b.Set(int(x), int(y), d.on)
}

func (d *bitmapDisplayer) Display() error { return nil }
