// Package config loads tempo settings from an optional .tempo.yaml and
// TEMPO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds resolved settings. Paths are absolute after Load.
type Config struct {
	DBPath            string
	StateDir          string
	Listen            string
	LogUseCases       bool
	CollapseThreshold float64
	PixelsPerDay      float64
	CellsPerDay       int
}

const (
	keyDB                = "db"
	keyStateDir          = "state_dir"
	keyListen            = "listen"
	keyLogUseCases       = "log_use_cases"
	keyCollapseThreshold = "collapse_threshold"
	keyPixelsPerDay      = "pixels_per_day"
	keyCellsPerDay       = "cells_per_day"
)

// Load reads configuration the same way for the CLI and the server:
// defaults, then .tempo.yaml from $TEMPO_CONFIG_PATH or the working
// directory, then environment variables.
func Load() (*Config, error) {
	return load(viper.New(), os.Getenv("TEMPO_CONFIG_PATH"))
}

// Defaults returns the settings used when nothing overrides them. Paths
// are left unexpanded.
func Defaults() Config {
	return Config{
		DBPath:            "~/.tempo/tempo.db",
		StateDir:          "~/.tempo/uistate",
		Listen:            "127.0.0.1:7420",
		CollapseThreshold: 5,
		PixelsPerDay:      24,
		CellsPerDay:       3,
	}
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	d := Defaults()
	v.SetDefault(keyDB, d.DBPath)
	v.SetDefault(keyStateDir, d.StateDir)
	v.SetDefault(keyListen, d.Listen)
	v.SetDefault(keyLogUseCases, d.LogUseCases)
	v.SetDefault(keyCollapseThreshold, d.CollapseThreshold)
	v.SetDefault(keyPixelsPerDay, d.PixelsPerDay)
	v.SetDefault(keyCellsPerDay, d.CellsPerDay)

	v.SetConfigName(".tempo") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TEMPO")
	v.AutomaticEnv()

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Listen:            v.GetString(keyListen),
		LogUseCases:       v.GetBool(keyLogUseCases),
		CollapseThreshold: v.GetFloat64(keyCollapseThreshold),
		PixelsPerDay:      v.GetFloat64(keyPixelsPerDay),
		CellsPerDay:       v.GetInt(keyCellsPerDay),
	}

	var err error
	if cfg.DBPath, err = expandHome(v.GetString(keyDB)); err != nil {
		return nil, err
	}
	if cfg.StateDir, err = expandHome(v.GetString(keyStateDir)); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.CollapseThreshold < 0 || c.CollapseThreshold > 100 {
		return fmt.Errorf("collapse_threshold must be between 0 and 100, got %v", c.CollapseThreshold)
	}
	if c.PixelsPerDay <= 0 {
		return fmt.Errorf("pixels_per_day must be positive, got %v", c.PixelsPerDay)
	}
	if c.CellsPerDay < 1 {
		return fmt.Errorf("cells_per_day must be at least 1, got %d", c.CellsPerDay)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
