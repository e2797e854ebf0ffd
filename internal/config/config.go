// Package config loads the catalog configuration from an optional file and
// the environment, and resolves data paths against the installation
// directory once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kkyr/fig"
	"github.com/rs/zerolog"
)

type Data struct {
	// Path of the catalog database. Relative paths are resolved against the
	// installation directory.
	Path string `fig:"path" default:"data/coffee.sqlite"`
	// Template is copied to Path on first run when Path does not exist.
	Template string `fig:"template" default:"coffee.template.sqlite"`
}

type Server struct {
	Addr string `fig:"addr" default:"127.0.0.1:18920"`
}

type UI struct {
	Locale string `fig:"locale" default:"ru"`
}

type Log struct {
	Level  string `fig:"level" default:"info"`
	Format string `fig:"format" default:"console"`
}

type Config struct {
	Data   Data
	Server Server
	UI     UI
	Log    Log
}

const envPrefix = "COFFEE" // env prefix for env vars

// DefaultFile is looked up in the working directory and the install dir.
const DefaultFile = "catalog.toml"

var ErrConfiguration = errors.New("configuration error")

// Load reads the configuration, applies COFFEE_* environment overrides and
// resolves relative data paths against appDir.
//
// An empty configFile looks for DefaultFile in the working directory and
// appDir and falls back to defaults when neither has one. A non-empty
// configFile names the file to read, relative to the working directory or
// absolute, and must exist.
func Load(configFile, appDir string, logger zerolog.Logger) (*Config, error) {
	config := Config{}

	if configFile == "" {
		logger.Debug().Str("file", DefaultFile).Msg("Looking for config")

		err := fig.Load(&config, fig.File(DefaultFile), fig.Dirs(".", appDir), fig.UseEnv(envPrefix))
		if errors.Is(err, fig.ErrFileNotFound) {
			logger.Info().Str("file", DefaultFile).Msg("No config file, using defaults")

			config = Config{}
			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
		}
		if err != nil {
			return nil, err
		}
	} else {
		logger.Debug().Str("file", configFile).Msg("Loading config")

		err := fig.Load(&config,
			fig.File(filepath.Base(configFile)),
			fig.Dirs(filepath.Dir(configFile)),
			fig.UseEnv(envPrefix),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configFile, err)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	config.Data.Path = resolve(appDir, config.Data.Path)
	config.Data.Template = resolve(appDir, config.Data.Template)

	return &config, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(c.UI.Locale) {
	case "ru", "en":
	default:
		return fmt.Errorf("%w: unsupported ui.locale %q", ErrConfiguration, c.UI.Locale)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrConfiguration, err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: unsupported log.format %q", ErrConfiguration, c.Log.Format)
	}
	return nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// AppDir returns the directory holding the running executable.
func AppDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
