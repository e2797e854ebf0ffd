package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"coffeecatalog/internal/catalog"
	"coffeecatalog/internal/database/sqlite"
	"coffeecatalog/internal/handlers"
	"coffeecatalog/internal/metrics"
	"coffeecatalog/internal/routing"
)

const shutdownTimeout = 5 * time.Second

type ServeCmd struct {
	NoBrowser bool `help:"Do not open the catalog in a browser"`
}

func (s *ServeCmd) Run(cliCtx *Context) error {
	conf, logger, err := setup(cliCtx)
	if err != nil {
		return err
	}

	seeded, err := sqlite.SeedFromTemplate(conf.Data.Path, conf.Data.Template)
	if err != nil {
		// the main window reports the missing database
		logger.Error().Err(err).Str("template", conf.Data.Template).Msg("Failed to seed database from template")
	} else if seeded {
		logger.Info().Str("path", conf.Data.Path).Str("template", conf.Data.Template).Msg("Seeded database from template")
	}

	m := metrics.New()
	store := metrics.InstrumentStore(sqlite.New(conf.Data.Path), m)
	c := catalog.New(store, catalog.Config{
		Labels:       catalog.LabelsFor(conf.UI.Locale),
		DatabasePath: conf.Data.Path,
		Logger:       logger,
	})

	handler := routing.SetupRouter(routing.Config{
		Handlers: handlers.NewHandler(c, logger),
		Metrics:  m,
		Logger:   logger,
	})

	ln, err := net.Listen("tcp", conf.Server.Addr)
	if err != nil {
		logger.Error().Err(err).Str("addr", conf.Server.Addr).Msg("Failed to listen")
		return err
	}

	url := pageURL(ln.Addr())
	logger.Info().Str("url", url).Str("database", conf.Data.Path).Msg("Coffee catalog ready")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !s.NoBrowser {
		openBrowser(url, logger)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: shutdownTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
		return err
	}
	logger.Info().Msg("Stopped")
	return nil
}
