// Package rc reads the configuration file of reggae.
package rc

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config keeps the settings of the configuration file. Every setting has a
// command-line flag of the same name that takes precedence over it.
type Config struct {
	Log       string `yaml:"log"`
	DB        string `yaml:"db"`
	History   string `yaml:"history"`
	Compact   bool   `yaml:"compact"`
	CacheSize int    `yaml:"cache_size"`
}

// DefaultPath returns the path of the configuration file used when none is
// given, $XDG_CONFIG_HOME/reggae/rc.yaml on Unix.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reggae", "rc.yaml"), nil
}

// Load reads a configuration file. Unknown keys are errors. An empty file
// yields the zero Config.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}

// Decode reads a configuration from a reader.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}
