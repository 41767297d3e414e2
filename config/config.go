// Package config loads executor settings and logging options from TOML or
// YAML files.
//
// Keys left out of a file keep their defaults:
//
//	reset = true
//	in_transfer_size = 4096
//	read_timeout = "1s"
//	write_timeout = "1s"
//	latency_timer = "16ms"
//	mask = 0x0B
//	clock_frequency = 1_000_000
//
//	[log]
//	level = "debug"
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/moffa90/go-mpsse/executor"
	"github.com/moffa90/go-mpsse/logging"
)

// Config is the full tool configuration.
type Config struct {
	Settings executor.Settings
	Log      logging.Options
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Settings: executor.DefaultSettings(),
		Log:      logging.Options{Level: "info"},
	}
}

type fileConfig struct {
	Reset          *bool   `toml:"reset" yaml:"reset"`
	InTransferSize *uint32 `toml:"in_transfer_size" yaml:"in_transfer_size"`
	ReadTimeout    *string `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout   *string `toml:"write_timeout" yaml:"write_timeout"`
	LatencyTimer   *string `toml:"latency_timer" yaml:"latency_timer"`
	Mask           *uint8  `toml:"mask" yaml:"mask"`
	ClockFrequency *uint32 `toml:"clock_frequency" yaml:"clock_frequency"`
	Log            fileLog `toml:"log" yaml:"log"`
}

type fileLog struct {
	Level *string `toml:"level" yaml:"level"`
	JSON  *bool   `toml:"json" yaml:"json"`
}

// Load reads path and applies it over Default. The format is chosen by
// extension: .toml, .yaml or .yml. Unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, &raw)
	case ".yaml", ".yml":
		err = decodeYAML(data, &raw)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := Default()
	if err := raw.apply(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Settings.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid settings: %w", err)
	}

	return cfg, nil
}

func decodeTOML(data []byte, raw *fileConfig) error {
	meta, err := toml.Decode(string(data), raw)
	if err != nil {
		return err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

func decodeYAML(data []byte, raw *fileConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(raw); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (f fileConfig) apply(cfg *Config) error {
	s := &cfg.Settings

	if f.Reset != nil {
		s.Reset = *f.Reset
	}
	if f.InTransferSize != nil {
		s.InTransferSize = *f.InTransferSize
	}
	if f.Mask != nil {
		s.Mask = *f.Mask
	}
	if f.ClockFrequency != nil {
		hz := *f.ClockFrequency
		s.ClockFrequency = &hz
	}

	durations := []struct {
		key string
		raw *string
		dst *time.Duration
	}{
		{"read_timeout", f.ReadTimeout, &s.ReadTimeout},
		{"write_timeout", f.WriteTimeout, &s.WriteTimeout},
		{"latency_timer", f.LatencyTimer, &s.LatencyTimer},
	}
	for _, d := range durations {
		if d.raw == nil {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(*d.raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if f.Log.Level != nil {
		if _, ok := logging.ParseLevel(*f.Log.Level); !ok {
			return fmt.Errorf("unknown log level %q", *f.Log.Level)
		}
		cfg.Log.Level = *f.Log.Level
	}
	if f.Log.JSON != nil {
		cfg.Log.JSON = *f.Log.JSON
	}

	return nil
}
