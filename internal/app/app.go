package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/mentionrank/internal/config"
	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/metrics"
	"github.com/vk/mentionrank/internal/report"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	appCfg   *Config
	config   *config.Model
	metrics  *metrics.Metrics
	registry *prometheus.Registry

	httpServer *http.Server

	mu   sync.RWMutex
	last *report.Summary // most recent completed run, nil until one exists
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW. It panics when the configuration cannot be loaded; the
// entrypoint recovers and turns that into an exit code.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var configPaths []string
	if appConfig.ConfigPath != "" {
		configPaths = append(configPaths, appConfig.ConfigPath)
	}

	cfgModel, err := loader.Load(ctx, configPaths...)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}

	appConfig.Overrides.Apply(cfgModel)
	if err := cfgModel.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}
	if cfgModel.Input.Path == "" {
		panic(fmt.Errorf("invalid configuration: no input path"))
	}
	logger.Debug("Configuration loaded and merged with command line overrides.",
		"input", cfgModel.Input.Path,
		"format", cfgModel.Output.Format,
		"top", cfgModel.Output.Top,
	)

	reg := prometheus.NewRegistry()
	m := metrics.New()
	if err := m.Register(reg); err != nil {
		// Fresh registry; a collision here is a programmer error.
		panic(err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		appCfg:   appConfig,
		config:   cfgModel,
		metrics:  m,
		registry: reg,
	}
}

// Model returns the effective configuration. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.config
}

// Last returns the summary of the most recent run, or nil.
func (a *App) Last() *report.Summary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

func (a *App) setLast(s *report.Summary) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.last = s
}
