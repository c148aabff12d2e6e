// Package config loads the server's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v2"
)

// Config holds the server settings.
type Config struct {
	// Port is the TCP port the line-protocol listener binds.
	Port int `mapstructure:"port"`

	// UserDatabase is the path of the JSON user database file. Relative
	// paths are resolved against the working directory.
	UserDatabase string `mapstructure:"userDatabase"`

	// WSPort, when non-zero, binds a websocket gateway speaking the same
	// protocol on this port.
	WSPort int `mapstructure:"wsPort"`

	// MaxRooms caps the number of simultaneously active rooms.
	MaxRooms int `mapstructure:"maxRooms"`
}

const defaultMaxRooms = 256

// Load reads, decodes and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unable to parse yaml config %s: %w", path, err)
	}

	for _, key := range []string{"port", "userDatabase"} {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("config %s missing key: %s", path, key)
		}
	}

	cfg := &Config{MaxRooms: defaultMaxRooms}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("config %s: port number out of range", path)
	}
	if cfg.WSPort != 0 && (cfg.WSPort < 1024 || cfg.WSPort > 65535) {
		return nil, fmt.Errorf("config %s: wsPort number out of range", path)
	}
	if cfg.MaxRooms <= 0 {
		return nil, fmt.Errorf("config %s: maxRooms must be positive", path)
	}
	if !filepath.IsAbs(cfg.UserDatabase) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		cfg.UserDatabase = filepath.Join(wd, cfg.UserDatabase)
	}
	return cfg, nil
}
