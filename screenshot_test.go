package lcdkit

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"second-page", "second-page"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"back\\slash", "back_slash"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
		{"MixedCase123", "MixedCase123"},
	}
	for _, tt := range tests {
		got := sanitizeLabel(tt.in)
		if got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueueAppend(t *testing.T) {
	f, _ := newTestFrame(t, 4, 4)
	f.Screenshot("a")
	f.Screenshot("b")
	f.Screenshot("c")
	if len(f.screenshotQueue) != 3 {
		t.Fatalf("queue len = %d, want 3", len(f.screenshotQueue))
	}
	if f.screenshotQueue[0] != "a" || f.screenshotQueue[1] != "b" || f.screenshotQueue[2] != "c" {
		t.Errorf("queue = %v, want [a b c]", f.screenshotQueue)
	}
}

func TestScreenshotWritesPNG(t *testing.T) {
	f, _ := newTestFrame(t, 4, 2)
	f.Root().AddChild(NewRectangle("r", 1, 1, true))
	f.Screenshot("after push")
	if _, err := f.Tick(0); err != nil {
		t.Fatal(err)
	}
	if len(f.screenshotQueue) != 0 {
		t.Errorf("queue not flushed: %v", f.screenshotQueue)
	}

	matches, err := filepath.Glob(filepath.Join(f.ScreenshotDir, "*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("screenshots = %v, want one file", matches)
	}
	if !strings.HasSuffix(matches[0], "_after_push.png") {
		t.Errorf("file name = %q", filepath.Base(matches[0]))
	}

	fh, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	img, err := png.Decode(fh)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Fatalf("image size = %v, want 4x2", b)
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	wr, _, _, _ := ScreenshotSetColor.RGBA()
	if r != wr {
		t.Errorf("pixel (0,0) red = %#x, want set color %#x", r, wr)
	}
	r, _, _, _ = img.At(3, 1).RGBA()
	wr, _, _, _ = ScreenshotUnsetColor.RGBA()
	if r != wr {
		t.Errorf("pixel (3,1) red = %#x, want unset color %#x", r, wr)
	}
}

func TestScreenshotBeforePushIsDropped(t *testing.T) {
	f, _ := newTestFrame(t, 4, 2)
	f.Screenshot("early")
	f.flushScreenshots()
	if len(f.screenshotQueue) != 0 {
		t.Errorf("queue = %v, want empty", f.screenshotQueue)
	}
	matches, _ := filepath.Glob(filepath.Join(f.ScreenshotDir, "*.png"))
	if len(matches) != 0 {
		t.Errorf("unexpected screenshots %v", matches)
	}
}
