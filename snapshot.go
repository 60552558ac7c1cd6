package lcdkit

import "image"

// Snapshot is a component's rendered appearance as of its last Render call:
// a bitmap, the location it is placed at inside the parent, and the merge
// method used to composite it. The zero Snapshot is empty and draws nothing.
//
// A Snapshot is never modified while it is its component's current snapshot.
// Once superseded, its bitmap may be recycled by the component's next render,
// so consumers that need to keep pixels across renders should Clone them.
type Snapshot struct {
	bitmap   *Bitmap
	location image.Point
	merge    MergeMethod
}

// Empty reports whether the snapshot draws nothing. An empty snapshot is
// distinct from a bitmap with no set pixels, which still takes part in
// Override and Overlay merges.
func (s Snapshot) Empty() bool {
	return s.bitmap == nil
}

// Bitmap returns the rendered bitmap, or nil for an empty snapshot.
// The bitmap must not be mutated.
func (s Snapshot) Bitmap() *Bitmap {
	return s.bitmap
}

// Location returns the offset the snapshot is placed at inside its parent.
func (s Snapshot) Location() image.Point {
	return s.location
}

// MergeMethod returns the merge method the snapshot is composited with.
func (s Snapshot) MergeMethod() MergeMethod {
	return s.merge
}

// DrawOnto merges the snapshot into dst at its location. No-op when empty.
func (s Snapshot) DrawOnto(dst *Bitmap) {
	if s.bitmap == nil {
		return
	}
	dst.Merge(s.bitmap, s.location, s.merge)
}
