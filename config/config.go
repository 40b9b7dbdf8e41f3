// Package config loads run settings from defaults, an optional TOML or YAML
// file and VI_TIMER_* environment variables, in that order of precedence.
// Command-line flags are applied on top by the caller.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation and decoding failure
var ErrInvalidConfig = errors.New("invalid config")

// Run modes
const (
	ModeUp    = "up"
	ModeDown  = "down"
	ModeTick  = "tick"
	ModeClock = "clock"
)

// Displays
const (
	DisplayText   = "text"
	DisplayBlock  = "block"
	DisplayScreen = "screen"
)

// Layouts
const (
	LayoutLong  = "long"
	LayoutShort = "short"
)

// Refresh bounds for the precise loop
const (
	MinRefresh = 10 * time.Millisecond
	MaxRefresh = 10 * time.Second
)

// Duration is a time.Duration read from text such as "250ms"
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds everything a run needs
type Config struct {
	Mode    string `toml:"mode" yaml:"mode"`
	Precise bool   `toml:"precise" yaml:"precise"`
	Start   string `toml:"start" yaml:"start"` // initial time, see timer.ParseValue

	Display string   `toml:"display" yaml:"display"`
	Layout  string   `toml:"layout" yaml:"layout"`
	Millis  bool     `toml:"millis" yaml:"millis"`
	Clear   bool     `toml:"clear" yaml:"clear"`
	Refresh Duration `toml:"refresh" yaml:"refresh"`
	Wait    bool     `toml:"wait" yaml:"wait"`

	Bell    bool `toml:"bell" yaml:"bell"`
	Volume  int  `toml:"volume" yaml:"volume"` // 0-100
	Strikes int  `toml:"strikes" yaml:"strikes"`

	Debug  bool   `toml:"debug" yaml:"debug"`
	LogDir string `toml:"log_dir" yaml:"log_dir"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Mode:    ModeUp,
		Precise: true,
		Display: DisplayBlock,
		Layout:  LayoutLong,
		Clear:   true,
		Refresh: Duration(100 * time.Millisecond),
		Bell:    true,
		Volume:  60,
		Strikes: 3,
		LogDir:  "logs",
	}
}

// Load reads path over the defaults; the extension picks the format
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := cfg.decode(filepath.Ext(path), data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

func (c *Config) decode(ext string, data []byte) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return errors.Errorf("unsupported config format %q", ext)
	}
}

// Env variable names
const (
	EnvMode    = "VI_TIMER_MODE"
	EnvDisplay = "VI_TIMER_DISPLAY"
	EnvLayout  = "VI_TIMER_LAYOUT"
	EnvPrecise = "VI_TIMER_PRECISE"
	EnvBell    = "VI_TIMER_BELL"
	EnvVolume  = "VI_TIMER_VOLUME"
	EnvRefresh = "VI_TIMER_REFRESH"
)

// ApplyEnv overrides fields from environment variables found by lookup
// (os.LookupEnv in production)
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvMode); ok {
		c.Mode = v
	}
	if v, ok := lookup(EnvDisplay); ok {
		c.Display = v
	}
	if v, ok := lookup(EnvLayout); ok {
		c.Layout = v
	}
	if v, ok := lookup(EnvPrecise); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvPrecise, v)
		}
		c.Precise = b
	}
	if v, ok := lookup(EnvBell); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvBell, v)
		}
		c.Bell = b
	}
	if v, ok := lookup(EnvVolume); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvVolume, v)
		}
		c.Volume = n
	}
	if v, ok := lookup(EnvRefresh); ok {
		var d Duration
		if err := d.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvRefresh, v)
		}
		c.Refresh = d
	}
	return nil
}

// Validate checks every field and normalizes the enumerations
func (c *Config) Validate() error {
	c.Mode = strings.ToLower(c.Mode)
	c.Display = strings.ToLower(c.Display)
	c.Layout = strings.ToLower(c.Layout)

	switch c.Mode {
	case ModeUp, ModeDown, ModeTick, ModeClock:
	default:
		return fmt.Errorf("%w: mode %q (want up, down, tick or clock)", ErrInvalidConfig, c.Mode)
	}
	switch c.Display {
	case DisplayText, DisplayBlock, DisplayScreen:
	default:
		return fmt.Errorf("%w: display %q (want text, block or screen)", ErrInvalidConfig, c.Display)
	}
	switch c.Layout {
	case LayoutLong, LayoutShort:
	default:
		return fmt.Errorf("%w: layout %q (want long or short)", ErrInvalidConfig, c.Layout)
	}
	// Tick only exists as a whole-second model, clock only as a precise one
	switch c.Mode {
	case ModeTick:
		c.Precise = false
	case ModeClock:
		c.Precise = true
	}
	if r := time.Duration(c.Refresh); r < MinRefresh || r > MaxRefresh {
		return fmt.Errorf("%w: refresh %v outside %v-%v", ErrInvalidConfig, r, MinRefresh, MaxRefresh)
	}
	if c.Volume < 0 || c.Volume > 100 {
		return fmt.Errorf("%w: volume %d outside 0-100", ErrInvalidConfig, c.Volume)
	}
	if c.Strikes < 1 {
		return fmt.Errorf("%w: strikes %d, need at least 1", ErrInvalidConfig, c.Strikes)
	}
	return nil
}
