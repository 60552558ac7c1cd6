package lcdkit

// Driver is the device boundary a Frame pushes bitmaps to and polls buttons
// from. Drivers that hold resources should also implement io.Closer; Frame.Close
// calls it.
type Driver interface {
	// Write pushes a finished bitmap to the device. The bitmap is only valid
	// for the duration of the call; drivers that keep it must copy it.
	Write(bmp *Bitmap, p Priority) error
	// PollButtons returns the buttons currently held down.
	PollButtons() (ButtonMask, error)
}
