package main

import (
	"context"

	"coffeecatalog/internal/database/sqlite"
)

type InitCmd struct {
	Path string `arg:"" optional:"" help:"Database file to create (defaults to data.path)"`
}

func (c *InitCmd) Run(cliCtx *Context) error {
	conf, logger, err := setup(cliCtx)
	if err != nil {
		return err
	}

	path := c.Path
	if path == "" {
		path = conf.Data.Path
	}

	if err := sqlite.Create(context.Background(), path); err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to create database")
		return err
	}

	logger.Info().Str("path", path).Msg("Created catalog database")
	return nil
}
