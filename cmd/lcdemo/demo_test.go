package main

import (
	"testing"

	"github.com/phanxgames/lcdkit"
)

type nullDriver struct{ writes int }

func (d *nullDriver) Write(*lcdkit.Bitmap, lcdkit.Priority) error {
	d.writes++
	return nil
}

func (d *nullDriver) PollButtons() (lcdkit.ButtonMask, error) { return 0, nil }

func TestBuildDemoPages(t *testing.T) {
	frame := lcdkit.NewFrame(&nullDriver{}, lcdkit.FrameConfig{})
	defer frame.Close()
	buildDemo(frame.Root())

	tabs := frame.Root().ChildAt(0)
	if tabs.Type != lcdkit.ComponentTabControl {
		t.Fatalf("first child type = %v, want tabcontrol", tabs.Type)
	}
	if n := len(tabs.Pages()); n != 3 {
		t.Fatalf("pages = %d, want 3", n)
	}
	if tabs.ActivePage().Name != "clock" {
		t.Errorf("active page = %q, want clock", tabs.ActivePage().Name)
	}
}

func TestDemoNavigatesPages(t *testing.T) {
	frame := lcdkit.NewFrame(&nullDriver{}, lcdkit.FrameConfig{})
	defer frame.Close()
	buildDemo(frame.Root())
	tabs := frame.Root().ChildAt(0)

	frame.InjectClick(lcdkit.Button3)
	for i := 0; i < 2; i++ {
		if _, err := frame.Tick(0); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if tabs.ActivePage().Name != "bars" {
		t.Errorf("active page = %q, want bars", tabs.ActivePage().Name)
	}

	// Button1 animates the bars to full.
	frame.InjectClick(lcdkit.Button1)
	for i := 0; i < 40; i++ {
		if _, err := frame.Tick(50_000_000); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	bar := tabs.ActivePage().ChildAt(0)
	if bar.Value() != 100 {
		t.Errorf("bar value = %v, want 100", bar.Value())
	}
}
