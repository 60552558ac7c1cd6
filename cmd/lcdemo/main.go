// Command lcdemo shows a demo scene on an emulated, terminal or SSD1306
// panel, as selected by a YAML config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phanxgames/lcdkit"
	"github.com/phanxgames/lcdkit/driver/ebitendev"
	"github.com/phanxgames/lcdkit/driver/ssd1306dev"
	"github.com/phanxgames/lcdkit/driver/termdev"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults when empty)")
	flag.Parse()

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lcdemo:", err)
			os.Exit(2)
		}
	}
	logger := setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("lcdemo failed", "error", err)
		os.Exit(1)
	}
	logger.Info("lcdemo stopped cleanly")
}

func setupLogger(cfg *Config) *slog.Logger {
	level, _ := cfg.Level()
	opts := &slog.HandlerOptions{
		Level: level,
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	prio, _ := cfg.PanelPriority()
	frameCfg := lcdkit.FrameConfig{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Priority:      prio,
		Debug:         cfg.Debug,
		Logger:        logger,
		ScreenshotDir: cfg.ScreenshotDir,
	}

	switch cfg.Driver {
	case "ebiten":
		dev := ebitendev.New(ebitendev.Options{
			Width:  cfg.Width,
			Height: cfg.Height,
			Scale:  cfg.Scale,
			Title:  "lcdemo",
		})
		frame, err := newDemoFrame(dev, frameCfg, cfg, logger)
		if err != nil {
			return err
		}
		defer frame.Close()
		logger.Info("lcdemo started", "driver", cfg.Driver, "width", cfg.Width, "height", cfg.Height)
		return dev.Run(ctx, func(ctx context.Context) error {
			return frame.Run(ctx, cfg.Tick)
		})

	case "term":
		dev, err := termdev.New(termdev.Options{Width: cfg.Width, Height: cfg.Height})
		if err != nil {
			return err
		}
		frame, err := newDemoFrame(dev, frameCfg, cfg, logger)
		if err != nil {
			dev.Close()
			return err
		}
		defer frame.Close()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			select {
			case <-dev.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
		return frame.Run(ctx, cfg.Tick)

	case "ssd1306":
		dev, err := ssd1306dev.Open(ssd1306dev.Options{
			Bus:        cfg.I2CBus,
			Width:      cfg.Width,
			Height:     cfg.Height,
			ButtonPins: cfg.Buttons,
		})
		if err != nil {
			return err
		}
		frame, err := newDemoFrame(dev, frameCfg, cfg, logger)
		if err != nil {
			dev.Close()
			return err
		}
		defer frame.Close()
		logger.Info("lcdemo started", "driver", cfg.Driver, "bus", cfg.I2CBus, "buttons", len(cfg.Buttons))
		return frame.Run(ctx, cfg.Tick)
	}
	return fmt.Errorf("unsupported driver %q", cfg.Driver)
}

// textWidthHint leaves room for "TPS: 10.0" in the default font.
const textWidthHint = 40

// newDemoFrame creates the frame, builds the demo scene, and attaches the
// configured test script.
func newDemoFrame(dev lcdkit.Driver, frameCfg lcdkit.FrameConfig, cfg *Config, logger *slog.Logger) (*lcdkit.Frame, error) {
	frame := lcdkit.NewFrame(dev, frameCfg)
	buildDemo(frame.Root())
	if cfg.Debug {
		tps := lcdkit.NewTickRateLabel("tps", nil)
		tps.SetLocation(frame.Root().Width()-textWidthHint, 0)
		frame.Root().AddChild(tps)
	}

	if cfg.Script == "" {
		return frame, nil
	}
	data, err := os.ReadFile(cfg.Script)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	runner, err := lcdkit.LoadTestScript(data)
	if err != nil {
		return nil, err
	}
	frame.SetTestRunner(runner)
	logged := false
	frame.OnButtonDown(func(ctx lcdkit.ButtonContext) {
		logger.Debug("script button", "button", ctx.Button)
	})
	frame.Root().OnUpdate = func(float64) {
		if runner.Done() && !logged {
			logged = true
			logger.Info("test script finished", "screenshots", frameCfg.ScreenshotDir)
		}
	}
	return frame, nil
}
