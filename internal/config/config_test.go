package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrawBoard/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, state.Bounds{Width: 854, Height: 480}, cfg.Bounds())
	assert.Equal(t, state.DefaultPalette(), cfg.StatePalette())

	fc := cfg.Frame()
	assert.Equal(t, 10000, fc.Capacity)
	assert.Equal(t, 5, fc.Step)
	assert.Equal(t, 16*time.Millisecond, fc.FrameInterval)
	assert.Equal(t, TVName, fc.HUDOutput)

	w, h := cfg.TVSize()
	assert.Equal(t, 854, w)
	assert.Equal(t, 480, h)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
frontend = "term"

[canvas]
width = 320
height = 200
step = 2

[display]
pad_width = 160
frame_ms = 33

[[palette]]
color = 0xFFFF0000
name = "YELLOW"

[[palette]]
color = 0x00000000
name = "BLACK"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, FrontendTerminal, cfg.Frontend)
	assert.Equal(t, 10000, cfg.Canvas.Capacity, "unset keys keep their defaults")
	assert.Equal(t, state.Palette{
		{Color: 0xFFFF0000, Name: "YELLOW"},
		{Color: 0x00000000, Name: "BLACK"},
	}, cfg.StatePalette())

	w, h := cfg.PadSize()
	assert.Equal(t, 160, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, 33*time.Millisecond, cfg.Frame().FrameInterval)
}

func TestLoadConfigPaletteEntriesStartEmpty(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[[palette]]\ncolor = 0x12345600\n"))
	assert.ErrorContains(t, err, "palette entry 0 (12345600) has no name")

	cfg, err := LoadConfig(writeConfig(t, "[[palette]]\ncolor = 0x12345600\nname = \"TEAL\"\n"))
	require.NoError(t, err)
	assert.Equal(t, state.Palette{{Color: 0x12345600, Name: "TEAL"}}, cfg.StatePalette())
}

func TestLoadConfigWithoutPaletteKeepsDefault(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[canvas]\nstep = 3\n"))
	require.NoError(t, err)
	assert.Equal(t, state.DefaultPalette(), cfg.StatePalette())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[canvas]\nwidht = 3\n"))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }},
		{"negative capacity", func(c *Config) { c.Canvas.Capacity = -1 }},
		{"zero step", func(c *Config) { c.Canvas.Step = 0 }},
		{"zero frame", func(c *Config) { c.Display.FrameMillis = 0 }},
		{"negative budget", func(c *Config) { c.Display.BufferBudget = -1 }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
		{"unnamed swatch", func(c *Config) { c.Palette[1].Name = "" }},
		{"bad frontend", func(c *Config) { c.Frontend = "sdl" }},
		{"headless without pad", func(c *Config) { c.Frontend = FrontendHeadless }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "drawboard.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
