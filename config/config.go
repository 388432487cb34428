// Package config loads termsight settings from TOML or YAML files.
//
// Absent keys keep their defaults, so an empty or missing file is a valid
// configuration. Load always returns a validated Config.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termsight/display"
	"github.com/lixenwraith/termsight/dither"
	"github.com/lixenwraith/termsight/input"
	"github.com/lixenwraith/termsight/terminal"
	"github.com/lixenwraith/termsight/terminal/tui"
)

// ErrInvalid is returned when a config fails validation or cannot be decoded
var ErrInvalid = errors.New("invalid config")

const (
	MinFPS = 1
	MaxFPS = 240

	DefaultFPS             = 30
	DefaultReadbackTimeout = 50 * time.Millisecond
	DefaultLogPath         = "debug.log"
	DefaultLogMaxSize      = 10 * 1024 * 1024
)

// Scene names accepted by the scene key
const (
	SceneSpheres = "spheres"
	SceneCube    = "cube"
	SceneImage   = "image"
)

// Config is the root of a termsight config file
type Config struct {
	FPS             int               `toml:"fps" yaml:"fps"`
	AsyncRender     bool              `toml:"async_render" yaml:"async_render"`
	ReadbackTimeout Duration          `toml:"readback_timeout" yaml:"readback_timeout"`
	Scene           string            `toml:"scene" yaml:"scene"`
	ImagePath       string            `toml:"image_path" yaml:"image_path"`
	Color           string            `toml:"color" yaml:"color"`
	Dither          DitherConfig      `toml:"dither" yaml:"dither"`
	Style           StyleConfig       `toml:"style" yaml:"style"`
	Input           InputConfig       `toml:"input" yaml:"input"`
	Log             LogConfig         `toml:"log" yaml:"log"`
	Keys            map[string]string `toml:"keys" yaml:"keys"`
}

type DitherConfig struct {
	Level  uint32 `toml:"level" yaml:"level"`
	Method string `toml:"method" yaml:"method"`
}

// StyleConfig colors the braille cells, empty colors use the terminal default
type StyleConfig struct {
	Fg    string   `toml:"fg" yaml:"fg"`
	Bg    string   `toml:"bg" yaml:"bg"`
	Attrs []string `toml:"attrs" yaml:"attrs"`
}

type InputConfig struct {
	Mouse               bool `toml:"mouse" yaml:"mouse"`
	KeyboardEnhancement bool `toml:"keyboard_enhancement" yaml:"keyboard_enhancement"`
}

type LogConfig struct {
	Path    string `toml:"path" yaml:"path"`
	Level   string `toml:"level" yaml:"level"`
	MaxSize int64  `toml:"max_size" yaml:"max_size"`
}

// Duration is a time.Duration spelled as "50ms" in config files
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML accepts both "50ms" and a bare integer of nanoseconds
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	var ns int64
	if n.Tag == "!!int" {
		if err := n.Decode(&ns); err != nil {
			return err
		}
		*d = Duration(ns)
		return nil
	}
	return d.UnmarshalText([]byte(n.Value))
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		FPS:             DefaultFPS,
		ReadbackTimeout: Duration(DefaultReadbackTimeout),
		Scene:           SceneSpheres,
		Color:           "auto",
		Dither: DitherConfig{
			Level:  2,
			Method: dither.MethodBayer.String(),
		},
		Input: InputConfig{Mouse: true, KeyboardEnhancement: true},
		Log: LogConfig{
			Path:    DefaultLogPath,
			Level:   "info",
			MaxSize: DefaultLogMaxSize,
		},
		Keys: map[string]string{},
	}
}

// Load reads and validates the config at path
// A missing file or an empty path yields defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := Decode(cfg, data, filepath.Ext(expanded)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays data onto cfg, the format is chosen by file extension
// Unknown keys are rejected so typos surface instead of silently keeping defaults
func Decode(cfg *Config, data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("%w: %s", ErrInvalid, strict.String())
			}
			return fmt.Errorf("%w: toml: %v", ErrInvalid, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: yaml: %v", ErrInvalid, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}
	return nil
}

// Encode writes cfg in the format named by ext
func (c *Config) Encode(w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml", "toml":
		return toml.NewEncoder(w).Encode(c)
	case ".yaml", ".yml", "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
}

// Validate checks every field, all problems are reported together
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.FPS < MinFPS || c.FPS > MaxFPS {
		invalid("fps %d out of range %d..%d", c.FPS, MinFPS, MaxFPS)
	}
	if c.ReadbackTimeout <= 0 {
		invalid("readback_timeout must be positive")
	}

	switch c.Scene {
	case SceneSpheres, SceneCube:
	case SceneImage:
		if c.ImagePath == "" {
			invalid("scene %q requires image_path", c.Scene)
		}
	default:
		invalid("unknown scene %q", c.Scene)
	}

	if _, err := c.ColorMode(); err != nil {
		invalid("color: %v", err)
	}
	if _, err := dither.ParseMethod(c.Dither.Method); err != nil {
		invalid("dither.method: %v", err)
	}
	if _, err := c.DisplayStyle(); err != nil {
		invalid("style: %v", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		invalid("log.level: %v", err)
	}
	if c.Log.MaxSize < 0 {
		invalid("log.max_size must not be negative")
	}
	if _, err := input.LoadKeyConfig(c.Keys); err != nil {
		invalid("keys: %v", err)
	}

	return errors.Join(errs...)
}

// Timeout returns the readback timeout as a time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.ReadbackTimeout)
}

// FrameInterval is the tick period implied by fps
func (c *Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < MinFPS {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// ColorMode resolves the color key, "auto" detects from the environment
func (c *Config) ColorMode() (terminal.ColorMode, error) {
	return terminal.ParseColorMode(c.Color)
}

// DitherMethod resolves dither.method, invalid names fall back to bayer
func (c *Config) DitherMethod() dither.Method {
	m, err := dither.ParseMethod(c.Dither.Method)
	if err != nil {
		return dither.MethodBayer
	}
	return m
}

var attrNames = map[string]terminal.Attr{
	"bold":      terminal.AttrBold,
	"dim":       terminal.AttrDim,
	"italic":    terminal.AttrItalic,
	"underline": terminal.AttrUnderline,
	"blink":     terminal.AttrBlink,
	"reverse":   terminal.AttrReverse,
}

// DisplayStyle builds the cell style from the style section
func (c *Config) DisplayStyle() (tui.Style, error) {
	s := tui.DefaultStyle
	if c.Style.Fg != "" {
		fg, err := terminal.ParseHex(c.Style.Fg)
		if err != nil {
			return s, fmt.Errorf("fg: %w", err)
		}
		s = s.WithFg(fg)
	}
	if c.Style.Bg != "" {
		bg, err := terminal.ParseHex(c.Style.Bg)
		if err != nil {
			return s, fmt.Errorf("bg: %w", err)
		}
		s = s.WithBg(bg)
	}
	for _, name := range c.Style.Attrs {
		a, ok := attrNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return s, fmt.Errorf("unknown attribute %q", name)
		}
		s = s.WithAttr(a)
	}
	return s, nil
}

// DisplayConfig converts the dither and style sections for display.Reconfigure
func (c *Config) DisplayConfig() (display.Config, error) {
	style, err := c.DisplayStyle()
	if err != nil {
		return display.Config{}, fmt.Errorf("%w: style: %v", ErrInvalid, err)
	}
	return display.Config{
		DitherLevel: dither.ClampLevel(c.Dither.Level),
		Method:      c.DitherMethod(),
		Style:       style,
	}, nil
}

// KeyTable merges the keys section over the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.LoadKeyConfig(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// LogLevel maps log.level to a slog level, unknown values log at info
func (c *Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// LogPath returns log.path with ~ expanded
func (c *Config) LogPath() string {
	p := c.Log.Path
	if p == "" {
		p = DefaultLogPath
	}
	if expanded, err := homedir.Expand(p); err == nil {
		return expanded
	}
	return p
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
}

// DefaultPath returns ~/.config/termsight/config.toml, or "" without a home directory
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "termsight", "config.toml")
}
