// Package app assembles the service from configuration: database,
// artifact store, report generator, logging and the HTTP server.
package app

import (
	"context"
	"fmt"
	"os"

	"sitecheck/internal/artifact"
	"sitecheck/internal/config"
	"sitecheck/internal/database"
	"sitecheck/internal/inspect"
	"sitecheck/internal/report"
	"sitecheck/internal/server"
)

// App is the application layer between the CLI and the inspection
// service. It constructs all dependencies from config and manages their
// lifecycle on Close.
type App struct {
	cfg     *config.Config
	db      inspect.Database
	store   inspect.ArtifactStore
	service *inspect.Service
	server  *server.Server
	logFile *os.File
}

// New creates a fully wired App from the given config. The caller must
// call Close when done.
func New(cfg *config.Config) (*App, error) {
	logger, logFile, err := newLogger(cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	store, err := artifact.NewStoreFromConfig(context.Background(), cfg.Artifacts)
	if err != nil {
		db.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating artifact store: %w", err)
	}

	service := inspect.NewService(db, store, report.NewPDFGenerator(), &slogAdapter{l: logger})

	return &App{
		cfg:     cfg,
		db:      db,
		store:   store,
		service: service,
		server:  server.New(service, store, logger),
		logFile: logFile,
	}, nil
}

// Service returns the wired inspection service, for CLI commands that
// bypass HTTP.
func (a *App) Service() *inspect.Service {
	return a.service
}

// Serve starts the HTTP server and blocks until it stops.
func (a *App) Serve() error {
	return a.server.Start(a.cfg.Server.Addr)
}

// Close releases the database connection and the log file.
func (a *App) Close() error {
	err := a.db.Close()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}
