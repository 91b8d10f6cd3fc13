// Package config loads the optional facet.yaml / facet.toml file and
// resolves it into the settings a System is built from.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	guierrors "github.com/go-drift/facet/pkg/errors"
	"github.com/go-drift/facet/pkg/logging"
)

// File names tried by LoadOptional, in order.
var FileNames = []string{"facet.yaml", "facet.yml", "facet.toml"}

// Config mirrors the on-disk configuration.
type Config struct {
	Logging        LoggingConfig  `yaml:"logging" toml:"logging"`
	Resources      ResourceConfig `yaml:"resources" toml:"resources"`
	Schemes        []string       `yaml:"schemes,omitempty" toml:"schemes,omitempty"`
	DefaultFont    string         `yaml:"default_font,omitempty" toml:"default_font,omitempty"`
	DefaultTooltip string         `yaml:"default_tooltip,omitempty" toml:"default_tooltip,omitempty"`
	Input          InputConfig    `yaml:"input" toml:"input"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// ResourceConfig maps resource groups to directories.
type ResourceConfig struct {
	Groups       map[string]string `yaml:"groups,omitempty" toml:"groups,omitempty"`
	DefaultGroup string            `yaml:"default_group,omitempty" toml:"default_group,omitempty"`
	Watch        bool              `yaml:"watch,omitempty" toml:"watch,omitempty"`
}

// InputConfig contains click detection thresholds.
type InputConfig struct {
	ClickTimeout       string  `yaml:"click_timeout,omitempty" toml:"click_timeout,omitempty"`
	DoubleClickTimeout string  `yaml:"double_click_timeout,omitempty" toml:"double_click_timeout,omitempty"`
	MouseMoveTolerance float32 `yaml:"mouse_move_tolerance,omitempty" toml:"mouse_move_tolerance,omitempty"`
}

// Defaults applied by Resolve.
const (
	DefaultGroupName          = "default"
	DefaultClickTimeout       = 0 // no limit
	DefaultDoubleClickTimeout = 330 * time.Millisecond
	DefaultMouseMoveTolerance = 12
)

// Resolved contains configuration with every default applied.
type Resolved struct {
	Root               string
	Logging            logging.Config
	LogFile            string
	Groups             map[string]string
	DefaultGroup       string
	Watch              bool
	Schemes            []string
	DefaultFont        string
	DefaultTooltip     string
	ClickTimeout       time.Duration
	DoubleClickTimeout time.Duration
	MouseMoveTolerance float32
}

// Load reads a configuration file, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, guierrors.FileIO("config.Load", path, err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes data as YAML, or as TOML when ext is ".toml".
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml", "":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return nil, guierrors.InvalidRequestf("config.Parse", ext, "unsupported config format")
	}
	if err != nil {
		return nil, guierrors.InvalidRequest("config.Parse", ext, fmt.Errorf("failed to parse config: %w", err))
	}
	return &cfg, nil
}

// LoadOptional reads the first config file found in dir. It returns an
// empty Config if none exists.
func LoadOptional(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, guierrors.FileIO("config.LoadOptional", path, err)
		}
		return Load(path)
	}
	return &Config{}, nil
}

// Resolve loads the optional config in dir and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir)
}

// Resolve applies defaults relative to root and validates values.
func (c *Config) Resolve(root string) (*Resolved, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, guierrors.InvalidRequest("config.Resolve", "logging.level", err)
	}
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "":
		format = logging.FormatText
	case logging.FormatText, logging.FormatJSON:
	default:
		return nil, guierrors.InvalidRequestf("config.Resolve", "logging.format", "unknown format %q", c.Logging.Format)
	}

	groups := make(map[string]string, len(c.Resources.Groups)+1)
	for name, dir := range c.Resources.Groups {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, guierrors.InvalidRequestf("config.Resolve", "resources.groups", "empty group name")
		}
		groups[name] = absUnder(root, dir)
	}
	defaultGroup := strings.TrimSpace(c.Resources.DefaultGroup)
	if defaultGroup == "" {
		defaultGroup = DefaultGroupName
	}
	if _, ok := groups[defaultGroup]; !ok {
		groups[defaultGroup] = root
	}

	click, err := duration(c.Input.ClickTimeout, DefaultClickTimeout, "input.click_timeout")
	if err != nil {
		return nil, err
	}
	double, err := duration(c.Input.DoubleClickTimeout, DefaultDoubleClickTimeout, "input.double_click_timeout")
	if err != nil {
		return nil, err
	}
	tolerance := c.Input.MouseMoveTolerance
	if tolerance < 0 {
		return nil, guierrors.InvalidRequestf("config.Resolve", "input.mouse_move_tolerance", "must not be negative")
	}
	if tolerance == 0 {
		tolerance = DefaultMouseMoveTolerance
	}

	logFile := ""
	if c.Logging.File != "" {
		logFile = absUnder(root, c.Logging.File)
	}

	return &Resolved{
		Root:               root,
		Logging:            logging.Config{Level: level, Format: format},
		LogFile:            logFile,
		Groups:             groups,
		DefaultGroup:       defaultGroup,
		Watch:              c.Resources.Watch,
		Schemes:            append([]string(nil), c.Schemes...),
		DefaultFont:        strings.TrimSpace(c.DefaultFont),
		DefaultTooltip:     strings.TrimSpace(c.DefaultTooltip),
		ClickTimeout:       click,
		DoubleClickTimeout: double,
		MouseMoveTolerance: tolerance,
	}, nil
}

// Logger builds the logger described by r. The returned close function
// releases the log file, if any.
func (r *Resolved) Logger() (*slog.Logger, func() error, error) {
	cfg := r.Logging
	if r.LogFile == "" {
		return logging.New(cfg), func() error { return nil }, nil
	}
	f, err := logging.OpenFile(r.LogFile)
	if err != nil {
		return nil, nil, err
	}
	cfg.Output = f
	return logging.New(cfg), f.Close, nil
}

func duration(s string, def time.Duration, key string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, guierrors.InvalidRequestf("config.Resolve", key, "invalid duration %q", s)
	}
	return d, nil
}

func absUnder(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
