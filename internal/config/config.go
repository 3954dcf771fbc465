// Package config loads PolyBoard settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"PolyBoard/internal/render"
	"PolyBoard/internal/state"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Canvas struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Background string  `toml:"background"`
}

type Style struct {
	DrawingColor string  `toml:"drawing_color"`
	DoneColor    string  `toml:"done_color"`
	PreviewColor string  `toml:"preview_color"`
	LineWidth    float64 `toml:"line_width"`
	VertexRadius float64 `toml:"vertex_radius"`
}

type Board struct {
	// AbandonPolicy is "keep" or "discard".
	AbandonPolicy string `toml:"abandon_policy"`
}

type Server struct {
	Port         int    `toml:"port"`
	Path         string `toml:"path"`
	Advertise    bool   `toml:"advertise"`
	RenderFrames bool   `toml:"render_frames"`
}

type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Config is the full application configuration.
type Config struct {
	Canvas Canvas `toml:"canvas"`
	Style  Style  `toml:"style"`
	Board  Board  `toml:"board"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 800, Height: 600, Background: "#ffffff"},
		Style: Style{
			DrawingColor: string(state.ColorDrawing),
			DoneColor:    string(state.ColorDone),
			LineWidth:    3,
			VertexRadius: 4,
		},
		Board:  Board{AbandonPolicy: state.AbandonKeep.String()},
		Server: Server{Port: 8888, Path: "/ws", RenderFrames: true},
		Log:    Log{Level: "info"},
	}
}

// Load reads the TOML file at path on top of the defaults. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			slog.Warn("unknown config keys ignored", "file", path, "keys", fmt.Sprint(undec))
		}
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fill restores defaults for zero values a file may have written.
func (c *Config) fill() {
	def := Default()
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = def.Canvas.Width
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = def.Canvas.Height
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = def.Canvas.Background
	}
	if c.Style.DrawingColor == "" {
		c.Style.DrawingColor = def.Style.DrawingColor
	}
	if c.Style.DoneColor == "" {
		c.Style.DoneColor = def.Style.DoneColor
	}
	if c.Style.PreviewColor == "" {
		c.Style.PreviewColor = c.Style.DrawingColor
	}
	if c.Style.LineWidth <= 0 {
		c.Style.LineWidth = def.Style.LineWidth
	}
	if c.Style.VertexRadius <= 0 {
		c.Style.VertexRadius = def.Style.VertexRadius
	}
	if c.Server.Path == "" {
		c.Server.Path = def.Server.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// Validate checks values that have no sensible fallback.
func (c Config) Validate() error {
	if _, err := state.ParseAbandonPolicy(c.Board.AbandonPolicy); err != nil {
		return fmt.Errorf("%w: board.abandon_policy: %w", ErrInvalid, err)
	}
	for key, v := range map[string]string{
		"canvas.background":   c.Canvas.Background,
		"style.drawing_color": c.Style.DrawingColor,
		"style.done_color":    c.Style.DoneColor,
		"style.preview_color": c.Style.PreviewColor,
	} {
		if !validHex(v) {
			return fmt.Errorf("%w: %s: %q is not a hex color", ErrInvalid, key, v)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port: %d out of range", ErrInvalid, c.Server.Port)
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		return fmt.Errorf("%w: server.path: %q must start with /", ErrInvalid, c.Server.Path)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	return nil
}

// Policy returns the parsed abandon policy.
func (c Config) Policy() state.AbandonPolicy {
	p, _ := state.ParseAbandonPolicy(c.Board.AbandonPolicy)
	return p
}

// Palette returns the path colors.
func (c Config) Palette() state.Palette {
	return state.Palette{
		Drawing: state.Color(c.Style.DrawingColor),
		Done:    state.Color(c.Style.DoneColor),
	}
}

// RenderStyle returns the style handed to the renderer.
func (c Config) RenderStyle() render.Style {
	return render.Style{
		Background:   state.Color(c.Canvas.Background),
		Preview:      state.Color(c.Style.PreviewColor),
		LineWidth:    c.Style.LineWidth,
		VertexRadius: c.Style.VertexRadius,
	}
}

// Size returns the canvas extent.
func (c Config) Size() render.Size {
	return render.Size{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// LogLevel parses the configured level.
func (c Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

func validHex(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}
