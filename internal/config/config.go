// Package config loads renderer settings from defaults, an optional
// renderers.yaml and RENDERERS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. RENDERERS_PANEL_WIDTH.
const EnvPrefix = "RENDERERS"

type Config struct {
	Log    LogConfig   `mapstructure:"log"`
	Icons  IconsConfig `mapstructure:"icons"`
	Panel  PanelConfig `mapstructure:"panel"`
	Bar    BarConfig   `mapstructure:"bar"`
	Pie    ChartConfig `mapstructure:"pie"`
	Yearly ChartConfig `mapstructure:"yearly"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "text" or "json"
}

type IconsConfig struct {
	// Dir overrides the embedded icon set when set.
	Dir        string `mapstructure:"dir"`
	RasterSize int    `mapstructure:"raster_size"`
}

type PanelConfig struct {
	Width      float64 `mapstructure:"width"`
	PixelRatio float64 `mapstructure:"pixel_ratio"`
}

type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type BarConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	YLabel string `mapstructure:"y_label"`
}

// Load reads renderers.yaml from ./, ./config or /etc/renderers when one
// exists. A missing file is not an error.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("renderers")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/renderers")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads an explicit config file; it must exist.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Default returns the built-in settings without reading files or the
// environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("icons.dir", "")
	v.SetDefault("icons.raster_size", 512)

	v.SetDefault("panel.width", 520.0)
	v.SetDefault("panel.pixel_ratio", 4.0)

	v.SetDefault("bar.width", 800)
	v.SetDefault("bar.height", 400)
	v.SetDefault("bar.y_label", "kWh")

	v.SetDefault("pie.width", 800)
	v.SetDefault("pie.height", 400)

	v.SetDefault("yearly.width", 1200)
	v.SetDefault("yearly.height", 600)
}

// Validate rejects settings no renderer can honour.
func (cfg *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", cfg.Log.Format))
	}
	if cfg.Icons.RasterSize <= 0 {
		errs = append(errs, fmt.Errorf("icons.raster_size: must be positive, got %d", cfg.Icons.RasterSize))
	}
	if cfg.Icons.Dir != "" {
		if info, err := os.Stat(cfg.Icons.Dir); err != nil {
			errs = append(errs, fmt.Errorf("icons.dir: %w", err))
		} else if !info.IsDir() {
			errs = append(errs, fmt.Errorf("icons.dir: %s is not a directory", cfg.Icons.Dir))
		}
	}
	if cfg.Panel.Width <= 0 || cfg.Panel.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("panel: width and pixel_ratio must be positive"))
	}
	for name, size := range map[string][2]int{
		"bar":    {cfg.Bar.Width, cfg.Bar.Height},
		"pie":    {cfg.Pie.Width, cfg.Pie.Height},
		"yearly": {cfg.Yearly.Width, cfg.Yearly.Height},
	} {
		if size[0] <= 0 || size[1] <= 0 {
			errs = append(errs, fmt.Errorf("%s: width and height must be positive, got %dx%d", name, size[0], size[1]))
		}
	}
	return errors.Join(errs...)
}

// NewLogger builds the process logger described by cfg.
func (cfg LogConfig) NewLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}
