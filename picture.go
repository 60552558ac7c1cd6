package lcdkit

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF for LoadImage
	_ "image/jpeg" // register JPEG for LoadImage
	_ "image/png"  // register PNG for LoadImage
	"io"

	_ "golang.org/x/image/bmp" // register BMP for LoadImage
	xdraw "golang.org/x/image/draw"
)

// NewPicture creates a component that displays bmp at its own size.
// The bitmap is not copied; call MarkDirty after changing its pixels.
func NewPicture(name string, bmp *Bitmap) *Component {
	if bmp == nil {
		panic("lcdkit: nil picture bitmap")
	}
	c := &Component{Name: name, Type: ComponentPicture, picture: bmp}
	componentDefaults(c, bmp.w, bmp.h)
	return c
}

// NewPictureFromImage binarizes img into a width×height picture. When the
// image size differs from the requested size it is scaled with nearest
// neighbour sampling first, so thin strokes stay crisp.
func NewPictureFromImage(name string, img image.Image, width, height int) *Component {
	return NewPicture(name, BitmapFromImage(scaleImage(img, width, height), width, height))
}

// Picture returns the bitmap displayed by a picture component.
func (c *Component) Picture() *Bitmap {
	c.mustBePicture("Picture")
	return c.picture
}

// SetPicture replaces the displayed bitmap and resizes the component to it.
func (c *Component) SetPicture(bmp *Bitmap) {
	c.mustBePicture("SetPicture")
	if bmp == nil {
		panic(fmt.Sprintf("lcdkit: nil picture bitmap for %q", c.Name))
	}
	c.picture = bmp
	c.setSize(bmp.w, bmp.h)
	c.MarkDirty()
}

func (c *Component) mustBePicture(op string) {
	c.checkAlive(op)
	if c.Type != ComponentPicture {
		panic(fmt.Sprintf("lcdkit: %s on %s component %q", op, c.Type, c.Name))
	}
}

// LoadImage decodes a PNG, GIF, JPEG or BMP image.
func LoadImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// scaleImage returns img resized to width×height, or img itself when it
// already has that size.
func scaleImage(img image.Image, width, height int) image.Image {
	if img == nil {
		panic("lcdkit: nil image")
	}
	sr := img.Bounds()
	if sr.Dx() == width && sr.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 || sr.Empty() {
		return dst
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, sr, xdraw.Src, nil)
	return dst
}
