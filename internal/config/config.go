package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"DrawBoard/internal/frame"
	"DrawBoard/internal/state"
)

// Frontends the board can run with.
const (
	FrontendFyne     = "fyne"
	FrontendTerminal = "term"
	FrontendHeadless = "headless"
)

type Config struct {
	Canvas   CanvasConfig   `toml:"canvas"`
	Display  DisplayConfig  `toml:"display"`
	Palette  []SwatchConfig `toml:"palette"`
	Remote   RemoteConfig   `toml:"remote"`
	Export   ExportConfig   `toml:"export"`
	Frontend string         `toml:"frontend"`
}

type CanvasConfig struct {
	Width    int `toml:"width"`
	Height   int `toml:"height"`
	Capacity int `toml:"capacity"`
	Step     int `toml:"step"`
}

type DisplayConfig struct {
	// Screen sizes in pixels. Zero means the canvas size.
	TVWidth      int    `toml:"tv_width"`
	TVHeight     int    `toml:"tv_height"`
	PadWidth     int    `toml:"pad_width"`
	PadHeight    int    `toml:"pad_height"`
	FrameMillis  int    `toml:"frame_ms"`
	Background   uint32 `toml:"background"`
	BufferBudget int    `toml:"buffer_budget"`
	Scale        int    `toml:"scale"`
}

type SwatchConfig struct {
	Color uint32 `toml:"color"`
	Name  string `toml:"name"`
}

// RemoteConfig controls the network gamepad. When enabled it replaces
// the keyboard as the input source.
type RemoteConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

type ExportConfig struct {
	PDF string `toml:"pdf"`
}

// DefaultConfig matches the gamepad screen the board was designed for.
func DefaultConfig() *Config {
	cfg := &Config{
		Canvas: CanvasConfig{
			Width:    854,
			Height:   480,
			Capacity: state.MaxPoints,
			Step:     5,
		},
		Display: DisplayConfig{
			FrameMillis: 16,
			Scale:       1,
		},
		Remote: RemoteConfig{
			Addr:      ":8888",
			Advertise: true,
		},
		Frontend: FrontendFyne,
	}
	for _, s := range state.DefaultPalette() {
		cfg.Palette = append(cfg.Palette, SwatchConfig{Color: uint32(s.Color), Name: s.Name})
	}
	return cfg
}

// LoadConfig reads a TOML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	// Palette entries are decoded into fresh values; a partial entry must
	// not pick up fields of the default swatch at the same index.
	cfg.Palette = nil
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown keys %v", undecoded)
	}
	if !md.IsDefined("palette") {
		cfg.Palette = DefaultConfig().Palette
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("capacity %d must be positive", c.Canvas.Capacity))
	}
	if c.Canvas.Step <= 0 {
		errs = append(errs, fmt.Errorf("step %d must be positive", c.Canvas.Step))
	}
	if c.Display.FrameMillis <= 0 {
		errs = append(errs, fmt.Errorf("frame_ms %d must be positive", c.Display.FrameMillis))
	}
	if c.Display.BufferBudget < 0 {
		errs = append(errs, errors.New("buffer_budget must not be negative"))
	}
	if c.Display.TVWidth < 0 || c.Display.TVHeight < 0 || c.Display.PadWidth < 0 || c.Display.PadHeight < 0 {
		errs = append(errs, errors.New("screen sizes must not be negative"))
	}
	if len(c.Palette) == 0 {
		errs = append(errs, errors.New("palette must not be empty"))
	}
	for i, s := range c.Palette {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("palette entry %d (%08X) has no name", i, s.Color))
		}
	}
	switch c.Frontend {
	case FrontendFyne, FrontendTerminal, FrontendHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown frontend %q", c.Frontend))
	}
	if c.Frontend == FrontendHeadless && !c.Remote.Enabled {
		errs = append(errs, errors.New("headless frontend needs the remote pad"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) Bounds() state.Bounds {
	return state.Bounds{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// TVSize and PadSize fall back to the canvas size.
func (c *Config) TVSize() (int, int) {
	return orDefault(c.Display.TVWidth, c.Canvas.Width), orDefault(c.Display.TVHeight, c.Canvas.Height)
}

func (c *Config) PadSize() (int, int) {
	return orDefault(c.Display.PadWidth, c.Canvas.Width), orDefault(c.Display.PadHeight, c.Canvas.Height)
}

func (c *Config) StatePalette() state.Palette {
	p := make(state.Palette, 0, len(c.Palette))
	for _, s := range c.Palette {
		p = append(p, state.Swatch{Color: state.Color(s.Color), Name: s.Name})
	}
	return p
}

// Frame builds the frame driver settings.
func (c *Config) Frame() frame.Config {
	quit := "Press ESC to quit."
	if c.Remote.Enabled {
		quit = "Press HOME on the pad or ESC to quit."
	}
	return frame.Config{
		Bounds:        c.Bounds(),
		Capacity:      c.Canvas.Capacity,
		Step:          c.Canvas.Step,
		Palette:       c.StatePalette(),
		Background:    state.Color(c.Display.Background),
		FrameInterval: time.Duration(c.Display.FrameMillis) * time.Millisecond,
		HUDOutput:     TVName,
		QuitHint:      quit,
	}
}

// Screen names used for the two outputs.
const (
	TVName  = "TV"
	PadName = "GamePad"
)

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
