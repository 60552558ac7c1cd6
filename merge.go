package lcdkit

import (
	"fmt"
	"image"
	"strings"
)

// MergeMethod combines the pixels of a source bitmap into a destination
// bitmap placed at a given offset. Implementations are stateless and may be
// shared freely.
//
// Every method visits only destination cells covered by the source after
// clipping to the destination, so any placement (negative, partially or fully
// outside) is safe.
type MergeMethod interface {
	Merge(src, dst *Bitmap, at image.Point)
	String() string
}

// The four merge methods. Override is the default for new components.
var (
	// Override copies every covered source pixel, set or not.
	Override MergeMethod = overrideMerge{}
	// Transparent only turns destination pixels on; unset source pixels let
	// the destination show through.
	Transparent MergeMethod = transparentMerge{}
	// Invert flips the destination under every set source pixel. Merging the
	// same source twice at the same offset restores the destination.
	Invert MergeMethod = invertMerge{}
	// Overlay sets the destination under every set source pixel and clears
	// set destination pixels in the 8-neighborhood that lie outside the
	// source silhouette, leaving a one pixel halo around the drawn shape.
	Overlay MergeMethod = overlayMerge{}
)

var mergeMethods = []MergeMethod{Override, Transparent, Invert, Overlay}

// MergeMethodByName resolves a merge method from its String form.
// Matching is case-insensitive.
func MergeMethodByName(name string) (MergeMethod, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range mergeMethods {
		if m.String() == name {
			return m, nil
		}
	}
	return nil, fmt.Errorf("lcdkit: unknown merge method %q", name)
}

// clipMerge returns the destination rectangle visited when merging src onto
// dst at the given offset. Panics on nil bitmaps.
func clipMerge(src, dst *Bitmap, at image.Point) image.Rectangle {
	if src == nil || dst == nil {
		panic("lcdkit: merge requires non-nil source and destination")
	}
	// Not image.Rect: it would swap inverted bounds instead of leaving the
	// rectangle empty.
	return image.Rectangle{
		Min: image.Pt(max(at.X, 0), max(at.Y, 0)),
		Max: image.Pt(min(at.X+src.w, dst.w), min(at.Y+src.h, dst.h)),
	}
}

type overrideMerge struct{}

func (overrideMerge) String() string { return "override" }

func (overrideMerge) Merge(src, dst *Bitmap, at image.Point) {
	r := clipMerge(src, dst, at)
	if r.Empty() {
		return
	}
	// Row copies are equivalent to the per-pixel assignment.
	n := r.Dx()
	for dy := r.Min.Y; dy < r.Max.Y; dy++ {
		so := (dy-at.Y)*src.w + (r.Min.X - at.X)
		do := dy*dst.w + r.Min.X
		copy(dst.pix[do:do+n], src.pix[so:so+n])
	}
}

type transparentMerge struct{}

func (transparentMerge) String() string { return "transparent" }

func (transparentMerge) Merge(src, dst *Bitmap, at image.Point) {
	r := clipMerge(src, dst, at)
	for dx := r.Min.X; dx < r.Max.X; dx++ {
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			if src.pix[(dy-at.Y)*src.w+dx-at.X] {
				dst.pix[dy*dst.w+dx] = true
			}
		}
	}
}

type invertMerge struct{}

func (invertMerge) String() string { return "invert" }

func (invertMerge) Merge(src, dst *Bitmap, at image.Point) {
	r := clipMerge(src, dst, at)
	for dx := r.Min.X; dx < r.Max.X; dx++ {
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			if src.pix[(dy-at.Y)*src.w+dx-at.X] {
				i := dy*dst.w + dx
				dst.pix[i] = !dst.pix[i]
			}
		}
	}
}

type overlayMerge struct{}

func (overlayMerge) String() string { return "overlay" }

// Merge iterates x outer and y inner, both ascending. The halo pass reads the
// destination as it is being written, so this order is part of the output.
func (overlayMerge) Merge(src, dst *Bitmap, at image.Point) {
	r := clipMerge(src, dst, at)
	for dx := r.Min.X; dx < r.Max.X; dx++ {
		for dy := r.Min.Y; dy < r.Max.Y; dy++ {
			if !src.pix[(dy-at.Y)*src.w+dx-at.X] {
				continue
			}
			dst.pix[dy*dst.w+dx] = true
			for ox := -1; ox <= 1; ox++ {
				for oy := -1; oy <= 1; oy++ {
					if ox == 0 && oy == 0 {
						continue
					}
					nx, ny := dx+ox, dy+oy
					if !dst.inBounds(nx, ny) {
						continue
					}
					// src.Get clips, so neighbors past the source edge count as unset.
					if src.Get(nx-at.X, ny-at.Y) {
						continue
					}
					dst.pix[ny*dst.w+nx] = false
				}
			}
		}
	}
}
