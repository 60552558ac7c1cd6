package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phanxgames/lcdkit"
)

// Config holds the lcdemo configuration.
type Config struct {
	Driver        string        `yaml:"driver"` // ebiten | term | ssd1306
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Tick          time.Duration `yaml:"tick"`
	Priority      string        `yaml:"priority"`
	Debug         bool          `yaml:"debug"`
	LogLevel      string        `yaml:"log_level"`
	Scale         int           `yaml:"scale"`   // ebiten only
	I2CBus        string        `yaml:"i2c_bus"` // ssd1306 only
	Buttons       []string      `yaml:"buttons"` // ssd1306 only: GPIO pin names in button order
	Script        string        `yaml:"script"`  // optional JSON test script
	ScreenshotDir string        `yaml:"screenshot_dir"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Driver:        "ebiten",
		Width:         lcdkit.DefaultWidth,
		Height:        lcdkit.DefaultHeight,
		Tick:          100 * time.Millisecond,
		Priority:      "normal",
		LogLevel:      "info",
		Scale:         4,
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads and parses a YAML config file. Returns DefaultConfig merged with the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that values are sane.
func (c *Config) Validate() error {
	switch c.Driver {
	case "ebiten", "term", "ssd1306":
	default:
		return fmt.Errorf("unsupported driver %q (use ebiten, term or ssd1306)", c.Driver)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be > 0, got %dx%d", c.Width, c.Height)
	}
	if c.Tick <= 0 {
		return fmt.Errorf("tick must be > 0")
	}
	if _, err := c.PanelPriority(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Driver == "ebiten" && c.Scale <= 0 {
		return fmt.Errorf("scale must be > 0")
	}
	if len(c.Buttons) > lcdkit.MaxButtons {
		return fmt.Errorf("at most %d buttons, got %d", lcdkit.MaxButtons, len(c.Buttons))
	}
	for i, b := range c.Buttons {
		if b == "" {
			return fmt.Errorf("buttons[%d]: pin name is required", i)
		}
	}
	return nil
}

// PanelPriority returns the configured push priority.
func (c *Config) PanelPriority() (lcdkit.Priority, error) {
	return lcdkit.ParsePriority(c.Priority)
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
