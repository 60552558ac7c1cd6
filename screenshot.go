package lcdkit

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Screenshot colors: dark pixels on a light background, like a
// backlit panel.
var (
	ScreenshotSetColor   color.Color = color.RGBA{R: 0x10, G: 0x18, B: 0x20, A: 0xFF}
	ScreenshotUnsetColor color.Color = color.RGBA{R: 0xC8, G: 0xD8, B: 0xE0, A: 0xFF}
)

// Screenshot queues a labeled screenshot of the pushed bitmap, captured at
// the end of the current Tick. The PNG is written to ScreenshotDir with a
// timestamped filename.
func (f *Frame) Screenshot(label string) {
	f.screenshotQueue = append(f.screenshotQueue, label)
}

// flushScreenshots writes every queued screenshot. Called at the end of Tick.
func (f *Frame) flushScreenshots() {
	if len(f.screenshotQueue) == 0 {
		return
	}
	defer func() { f.screenshotQueue = f.screenshotQueue[:0] }()
	if f.last == nil {
		f.logger.Warn("lcdkit: screenshot before first push", "count", len(f.screenshotQueue))
		return
	}
	if err := os.MkdirAll(f.ScreenshotDir, 0o755); err != nil {
		f.logger.Error("lcdkit: screenshot", "dir", f.ScreenshotDir, "err", err)
		return
	}

	img := f.last.ToImage(ScreenshotSetColor, ScreenshotUnsetColor)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range f.screenshotQueue {
		path := filepath.Join(f.ScreenshotDir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			f.logger.Error("lcdkit: screenshot", "err", err)
		}
	}
}

// writePNG encodes an image to a PNG file at the given path.
func writePNG(path string, img image.Image) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(fh, img); err != nil {
		fh.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return fh.Close()
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
