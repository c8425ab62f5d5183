package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/sketchboard/internal/element"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/freehand"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`

	// Interaction
	ScrollSensitivity float64 `envconfig:"SCROLL_SENSITIVITY" default:"0.0005"`
	ScrollReversed    bool    `envconfig:"SCROLL_REVERSED" default:"false"`
	SmoothZoom        bool    `envconfig:"SMOOTH_ZOOM" default:"true"`
	LineHitTolerance  float64 `envconfig:"LINE_HIT_TOLERANCE" default:"10"`
	GridSize          float64 `envconfig:"GRID_SIZE" default:"20"`

	// New elements
	FontFamily       string  `envconfig:"FONT_FAMILY" default:"sans-serif"`
	FontSize         float64 `envconfig:"FONT_SIZE" default:"32"`
	FontWeight       int     `envconfig:"FONT_WEIGHT" default:"400"`
	StrokeSize       float64 `envconfig:"STROKE_SIZE" default:"8"`
	StrokeStreamline float64 `envconfig:"STROKE_STREAMLINE" default:"0.5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.FontSize <= 0 {
		return nil, fmt.Errorf("FONT_SIZE must be positive, got %v", cfg.FontSize)
	}
	if cfg.StrokeStreamline < 0 || cfg.StrokeStreamline >= 1 {
		return nil, fmt.Errorf("STROKE_STREAMLINE must be in [0, 1), got %v", cfg.StrokeStreamline)
	}
	return &cfg, nil
}

// AllowedOriginList splits AllowedOrigins, e.g. for the CORS check.
func (c *Config) AllowedOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Origins returns the allowed origins without their scheme, as host patterns
// for the websocket origin check.
func (c *Config) Origins() []string {
	out := c.AllowedOriginList()
	for i, o := range out {
		if _, host, ok := strings.Cut(o, "://"); ok {
			out[i] = host
		}
	}
	return out
}

// Level parses LogLevel, defaulting to info for unknown values.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// EngineOptions maps the interaction settings onto engine options.
func (c *Config) EngineOptions() []engine.Option {
	font := element.DefaultFont
	font.Family = c.FontFamily
	font.Size = c.FontSize
	font.Weight = c.FontWeight

	return []engine.Option{
		engine.WithScrollSensitivity(c.ScrollSensitivity),
		engine.WithScrollReversed(c.ScrollReversed),
		engine.WithSmoothZoom(c.SmoothZoom),
		engine.WithHitTolerance(c.LineHitTolerance),
		engine.WithGridSize(c.GridSize),
		engine.WithFont(font),
		engine.WithStrokeOptions(freehand.StrokeOptions{
			Size:       c.StrokeSize,
			Streamline: c.StrokeStreamline,
		}),
	}
}
