// Package config loads planner settings from YAML files and the environment.
//
// Files are merged in order: the global ~/.lifeplanner/config.yaml first,
// then ./.lifeplanner/config.yaml. LIFEPLANNER_* environment variables win
// over both (LIFEPLANNER_DB_PATH, LIFEPLANNER_LOG_LEVEL, ...).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-user and per-project settings directory name.
	Dir = ".lifeplanner"

	envPrefix = "LIFEPLANNER"
)

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn, error
	File  string `mapstructure:"file" yaml:"file"`   // empty = stderr
}

// Config models config.yaml.
type Config struct {
	DBPath   string    `mapstructure:"db_path" yaml:"db_path"`
	Timezone string    `mapstructure:"timezone" yaml:"timezone"`
	Theme    string    `mapstructure:"theme" yaml:"theme"`
	Log      LogConfig `mapstructure:"log" yaml:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	dbPath := ".lifeplanner.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".lifeplanner.db")
	}
	return &Config{
		DBPath:   dbPath,
		Timezone: "Local",
		Theme:    "light",
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, Dir, "config.yaml")
}

// ProjectPath returns the path to the config file in the working directory.
func ProjectPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, Dir, "config.yaml")
}

// Load merges the global and project config files over the defaults.
func Load() (*Config, error) {
	return LoadFrom(GlobalPath(), ProjectPath())
}

// LoadFrom merges the given YAML files, in order, over the defaults and then
// applies environment overrides. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("timezone", def.Timezone)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.file", def.Log.File)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	cfg.Log.File = expandHome(cfg.Log.File)
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves Timezone. Empty and "Local" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

const header = `# lifeplanner configuration
#
# db_path:  SQLite file holding tasks, habits and goals
# timezone: IANA zone used to decide the calendar day for habit streaks
# theme:    fallback theme when none was chosen with "lp theme"
# log:      level (debug|info|warn|error) and optional file
`

// Write stores cfg as YAML at path, creating parent directories. Existing
// files are not overwritten unless force is set.
func Write(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config: %s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: ensure dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
