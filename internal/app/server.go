package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/metrics"
	"github.com/vk/mentionrank/internal/report"
)

// Handler returns the HTTP surface: /health, /metrics and /ranking.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.Handle("/metrics", metrics.Handler(a.registry))
	mux.HandleFunc("/ranking", a.rankingHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// rankingHandler serves the last result as a JSON report.
func (a *App) rankingHandler(w http.ResponseWriter, r *http.Request) {
	last := a.Last()
	if last == nil {
		http.Error(w, "no ranking available yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := report.JSON(w, *last, a.config.Output.Top); err != nil {
		a.logger.Error("Failed to write ranking response.", "error", err)
	}
}

// startServer initializes and runs the HTTP server in the background.
func (a *App) startServer(ctx context.Context, port int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring HTTP server.")

	addr := fmt.Sprintf(":%d", port)
	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srv := a.httpServer
	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// ListenAndServe returns ErrServerClosed on graceful shutdown.
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed unexpectedly", "error", err)
		}
	}()
}

func (a *App) closeServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		logger.Debug("HTTP server was not running.")
		return nil
	}

	// The run context may already be cancelled in serve mode.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Debug("HTTP server shut down gracefully.")
	return nil
}
