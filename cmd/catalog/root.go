package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"coffeecatalog/internal/config"
)

type Context struct {
	Debug      bool
	ConfigFile string
}

var CLI struct {
	Debug  bool   `help:"Enable debug logging"`
	Config string `help:"Path to config file (default: catalog.toml in the working or install directory)" short:"c" type:"path"`

	Serve ServeCmd `cmd:"" default:"1" help:"Open the catalog in the browser"`
	Init  InitCmd  `cmd:"" help:"Create an empty catalog database"`
}

// setup loads the configuration and builds the root logger from it
func setup(cliCtx *Context) (*config.Config, zerolog.Logger, error) {
	bootLogger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	appDir, err := config.AppDir()
	if err != nil {
		return nil, bootLogger, err
	}

	conf, err := config.Load(cliCtx.ConfigFile, appDir, bootLogger)
	if err != nil {
		bootLogger.Error().Err(err).Msg("Error loading config")
		return nil, bootLogger, err
	}

	return conf, newLogger(conf.Log, cliCtx.Debug), nil
}

func newLogger(conf config.Log, debug bool) zerolog.Logger {
	level, err := zerolog.ParseLevel(conf.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if conf.Format == "json" {
		logger = zerolog.New(os.Stderr)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	return logger.Level(level).With().Timestamp().Logger()
}
