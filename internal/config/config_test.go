package config

import (
	"log/slog"
	"testing"

	"github.com/inamate/sketchboard/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.ScrollSensitivity != 0.0005 || !cfg.SmoothZoom || cfg.GridSize != 20 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.FontFamily != "sans-serif" || cfg.FontSize != 32 || cfg.FontWeight != 400 {
		t.Errorf("font defaults = %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SCROLL_REVERSED", "true")
	t.Setenv("SMOOTH_ZOOM", "false")
	t.Setenv("FONT_SIZE", "18")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 || !cfg.ScrollReversed || cfg.SmoothZoom || cfg.FontSize != 18 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct{ key, value string }{
		{"PORT", "not-a-number"},
		{"FONT_SIZE", "0"},
		{"STROKE_STREAMLINE", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("%s=%s accepted", tt.key, tt.value)
			}
		})
	}
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: "http://localhost:5173, https://board.example.com,,localhost:3000"}
	got := cfg.Origins()
	if full := cfg.AllowedOriginList(); len(full) != 3 || full[1] != "https://board.example.com" {
		t.Errorf("AllowedOriginList() = %q", full)
	}
	want := []string{"localhost:5173", "board.example.com", "localhost:3000"}
	if len(got) != len(want) {
		t.Fatalf("Origins() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("origin %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (&Config{LogLevel: in}).Level(); got != want {
			t.Errorf("Level(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestEngineOptions(t *testing.T) {
	t.Setenv("GRID_SIZE", "0")
	t.Setenv("SMOOTH_ZOOM", "false")
	t.Setenv("FONT_WEIGHT", "700")
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(cfg.EngineOptions()...)
	if cmds := e.Render(100, 100); len(cmds) != 0 {
		t.Errorf("grid drawn with GRID_SIZE=0")
	}
	if err := e.Wheel(engine.WheelEvent{DeltaY: -1}); err != nil {
		t.Fatal(err)
	}
	if got := e.Camera().Zoom; got != 1.1 {
		t.Errorf("step zoom = %v, want 1.1", got)
	}
	if err := e.SetTool(engine.ToolText); err != nil {
		t.Fatal(err)
	}
	if err := e.PointerDown(engine.PointerEvent{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	ed, ok := e.TextEditor()
	if !ok || ed.Font != "normal normal 700 32px sans-serif" {
		t.Errorf("editor font = %q", ed.Font)
	}
}
