package app

import (
	"io"
	"log/slog"

	"github.com/MiaAltieri/mongodb-operator/internal/catalog"
	"github.com/MiaAltieri/mongodb-operator/internal/config"
	"github.com/MiaAltieri/mongodb-operator/internal/plan"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	config  *Config
	loader  config.Loader
	catalog *catalog.Catalog
	rules   []plan.OrderingRule
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, the default role
// catalog and the default ordering policy.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loader:  loader,
		catalog: catalog.Default(),
		rules:   plan.DefaultOrderingRules(),
	}
}
