package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jbeda/geom"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Sentinel errors returned by Validate.
var (
	ErrInvalidSpeed      = errors.New("config: speed_ms must be ≥ 0")
	ErrInvalidPointCount = errors.New("config: point_count out of range")
	ErrInvalidCanvas     = errors.New("config: canvas has no drawable area")
	ErrInvalidLogLevel   = errors.New("config: unknown log_level")
)

// Point count limits accepted by Validate.
const (
	MinPointCount = 2
	MaxPointCount = 500
)

// Canvas is the drawing surface in pixels.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// Config holds every tunable of the CLI and the server.
type Config struct {
	SpeedMs     int    `yaml:"speed_ms"`
	PointCount  int    `yaml:"point_count"`
	Seed        int64  `yaml:"seed"`
	Listen      string `yaml:"listen"`
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`
	Canvas      Canvas `yaml:"canvas"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SpeedMs:    200,
		PointCount: 15,
		Seed:       1,
		Listen:     ":8080",
		LogLevel:   "info",
		Canvas:     Canvas{Width: 700, Height: 500, Margin: 50},
	}
}

// Load reads and parses the YAML file at path. An empty path yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse overlays the YAML document in data onto Default and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every field and returns the first violation.
func (c Config) Validate() error {
	if c.SpeedMs < 0 {
		return fmt.Errorf("config: speed_ms=%d: %w", c.SpeedMs, ErrInvalidSpeed)
	}
	if c.PointCount < MinPointCount || c.PointCount > MaxPointCount {
		return fmt.Errorf("config: point_count=%d (want %d..%d): %w",
			c.PointCount, MinPointCount, MaxPointCount, ErrInvalidPointCount)
	}
	if c.Canvas.Margin < 0 || c.Canvas.Width <= 2*c.Canvas.Margin || c.Canvas.Height <= 2*c.Canvas.Margin {
		return fmt.Errorf("config: canvas %gx%g margin %g: %w",
			c.Canvas.Width, c.Canvas.Height, c.Canvas.Margin, ErrInvalidCanvas)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level=%q: %w", c.LogLevel, ErrInvalidLogLevel)
	}

	return nil
}

// Speed returns SpeedMs as a duration.
func (c Config) Speed() time.Duration {
	return time.Duration(c.SpeedMs) * time.Millisecond
}

// Bounds returns the area points are generated in: the canvas minus its
// margin, in canvas coordinates with the origin at the top-left corner.
func (c Config) Bounds() geom.Rect {
	return geom.Rect{
		Min: geom.Coord{X: c.Canvas.Margin, Y: c.Canvas.Margin},
		Max: geom.Coord{X: c.Canvas.Width - c.Canvas.Margin, Y: c.Canvas.Height - c.Canvas.Margin},
	}
}

// NewLogger builds a zap logger honoring LogLevel and Development.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log_level=%q: %w", c.LogLevel, ErrInvalidLogLevel)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
