// Package config loads playcourt settings from an optional TOML file and
// PLAYCOURT_* environment variables on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ha1tch/playcourt/pkg/court"
	"github.com/ha1tch/playcourt/pkg/curve"
	"github.com/ha1tch/playcourt/pkg/editor"
	"github.com/ha1tch/playcourt/pkg/placement"
	"github.com/ha1tch/playcourt/pkg/viewport"
)

// ErrInvalidConfig is wrapped by every validation failure outside the
// court section, which wraps court.ErrInvalidSpec instead.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes environment overrides, e.g. PLAYCOURT_SNAP_RADIUS.
const EnvPrefix = "PLAYCOURT"

type SnapConfig struct {
	Radius float64 `mapstructure:"radius"`
}

type EditorConfig struct {
	BodyTolerance float64 `mapstructure:"body_tolerance"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// TerminalConfig sizes the virtual pixel box behind one terminal cell.
type TerminalConfig struct {
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`
}

// Config is the full settings tree.
type Config struct {
	Court    court.Spec         `mapstructure:"court"`
	Fit      viewport.FitPolicy `mapstructure:"fit"`
	Curve    curve.Params       `mapstructure:"curve"`
	Tokens   placement.Radii    `mapstructure:"tokens"`
	Handles  editor.HandleRadii `mapstructure:"handles"`
	Snap     SnapConfig         `mapstructure:"snap"`
	Editor   EditorConfig       `mapstructure:"editor"`
	Log      LogConfig          `mapstructure:"log"`
	Terminal TerminalConfig     `mapstructure:"terminal"`
}

// DefaultPath returns ~/.playcourt.toml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".playcourt.toml"
	}
	return filepath.Join(home, ".playcourt.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("court.scale", 14.0)
	v.SetDefault("court.buffer", 80.0)
	v.SetDefault("court.width_ft", 50.0)
	v.SetDefault("court.length_ft", 42.0)
	v.SetDefault("court.backboard_offset_ft", 4.0)
	v.SetDefault("court.backboard_width_ft", 6.0)
	v.SetDefault("court.rim_offset_ft", 5.25)
	v.SetDefault("court.rim_radius_ft", 0.75)
	v.SetDefault("court.lane_width_ft", 12.0)
	v.SetDefault("court.free_throw_ft", 19.0)
	v.SetDefault("court.free_throw_radius_ft", 6.0)
	v.SetDefault("court.three_point_radius_ft", 19.75)

	v.SetDefault("fit.primary_width", 280.0)
	v.SetDefault("fit.secondary_width", 260.0)
	v.SetDefault("fit.gap", 24.0)
	v.SetDefault("fit.min_scale", 0.75)
	v.SetDefault("fit.max_scale", 1.0)
	v.SetDefault("fit.hide_below", 0.9)
	v.SetDefault("fit.min_height", 200.0)

	v.SetDefault("curve.wavelength", 24.0)
	v.SetDefault("curve.amplitude", 4.0)
	v.SetDefault("curve.step_length", 4.0)
	v.SetDefault("curve.min_steps", 16)
	v.SetDefault("curve.max_steps", 240)
	v.SetDefault("curve.max_offset", 80.0)

	v.SetDefault("tokens.player", 20.0)
	v.SetDefault("tokens.cone", 18.0)

	v.SetDefault("handles.start", 8.0)
	v.SetDefault("handles.mid", 7.0)
	v.SetDefault("handles.end", 9.0)

	v.SetDefault("snap.radius", 28.0)
	v.SetDefault("editor.body_tolerance", 6.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("terminal.cell_width", 8)
	v.SetDefault("terminal.cell_height", 16)
}

// Load reads settings. An empty path means DefaultPath, which may be
// absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in settings without touching the filesystem
// or environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate checks the settings the geometry code relies on.
func (c *Config) Validate() error {
	if err := c.Court.Validate(); err != nil {
		return fmt.Errorf("court: %w", err)
	}

	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Snap.Radius > 0, "snap.radius must be positive"},
		{c.Curve.Wavelength > 0, "curve.wavelength must be positive"},
		{c.Curve.Amplitude >= 0, "curve.amplitude must not be negative"},
		{c.Curve.StepLength > 0, "curve.step_length must be positive"},
		{c.Curve.MinSteps >= 1, "curve.min_steps must be at least 1"},
		{c.Curve.MaxSteps >= c.Curve.MinSteps, "curve.max_steps must not be below min_steps"},
		{c.Curve.MaxOffset >= 0, "curve.max_offset must not be negative"},
		{c.Tokens.Player > 0 && c.Tokens.Cone > 0, "token radii must be positive"},
		{c.Fit.MinScale > 0 && c.Fit.MinScale <= c.Fit.MaxScale, "fit.min_scale must be in (0, max_scale]"},
		{c.Fit.MaxScale <= 1, "fit.max_scale must not exceed 1"},
		{c.Terminal.CellWidth > 0 && c.Terminal.CellHeight > 0, "terminal cell size must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.msg)
		}
	}
	return nil
}

// EngineConfig converts the settings into the interaction engine's config.
func (c *Config) EngineConfig() editor.Config {
	return editor.Config{
		Court:         c.Court,
		Fit:           c.Fit,
		Curve:         c.Curve,
		Radii:         c.Tokens,
		Handles:       c.Handles,
		SnapRadius:    c.Snap.Radius,
		BodyTolerance: c.Editor.BodyTolerance,
	}
}
