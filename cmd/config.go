package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/glossopoeia/settype/compiler/memo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Looked up in the working directory when no config file is given.
const DefaultConfigFile = "settype.toml"

type Config struct {
	LogLevel  string     `toml:"log_level"`
	CacheSize int        `toml:"cache_size"`
	Color     bool       `toml:"color"`
	History   string     `toml:"history"`
	Laws      LawsConfig `toml:"laws"`
}

type LawsConfig struct {
	Seed       int64 `toml:"seed"`
	Iterations int   `toml:"iterations"`
}

func DefaultConfig() Config {
	history := ""
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, ".settype_history")
	}
	return Config{
		LogLevel:  "warn",
		CacheSize: memo.DefaultSize,
		Color:     true,
		History:   history,
		Laws:      LawsConfig{Seed: 1, Iterations: 100},
	}
}

// Read the config file over the defaults. An empty path reads the default
// file if there is one. The result is validated once flags are applied.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "config")
	}
	if c.CacheSize <= 0 {
		return errors.Errorf("config: cache_size must be positive, got %d", c.CacheSize)
	}
	if c.Laws.Iterations <= 0 {
		return errors.Errorf("config: laws.iterations must be positive, got %d", c.Laws.Iterations)
	}
	return nil
}
