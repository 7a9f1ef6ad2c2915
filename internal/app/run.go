package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/mentionrank/internal/builder"
	"github.com/vk/mentionrank/internal/ctxlog"
	"github.com/vk/mentionrank/internal/ingest"
	"github.com/vk/mentionrank/internal/metrics"
	"github.com/vk/mentionrank/internal/publish"
	"github.com/vk/mentionrank/internal/rank"
	"github.com/vk/mentionrank/internal/report"
)

// Run executes one ranking and, in serve mode, keeps the HTTP surface up
// until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.appCfg.HTTPPort > 0 {
		a.startServer(ctx, a.appCfg.HTTPPort)
		defer func() {
			if err := a.closeServer(ctx); err != nil {
				a.logger.Error("Failed to close HTTP server.", "error", err)
			}
		}()
	}

	summary, err := a.rankOnce(ctx)
	if err != nil {
		return err
	}

	if err := report.Write(a.outW, a.config.Output.Format, *summary, a.config.Output.Top); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if pubCfg := a.config.PublishConfig(); pubCfg != nil {
		publisher, err := publish.NewPublisher(*pubCfg)
		if err != nil {
			return fmt.Errorf("failed to configure publisher: %w", err)
		}
		if err := publisher.Publish(ctx, summary.Result, a.config.Output.Top); err != nil {
			return fmt.Errorf("failed to publish ranking: %w", err)
		}
	}

	if a.appCfg.Serve {
		a.logger.Info("Serving ranking until interrupted.", "port", a.appCfg.HTTPPort)
		<-ctx.Done()
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// rankOnce reads the input, builds the mention graph and ranks it. The
// summary is recorded in metrics and kept for the HTTP surface.
func (a *App) rankOnce(ctx context.Context) (*report.Summary, error) {
	logger := ctxlog.FromContext(ctx)

	input, err := ingest.Open(a.config.Input.Path)
	if err != nil {
		return nil, err
	}
	defer input.Close()

	reader := ingest.NewReader(ctx, input)
	g, buildStats := builder.Build(ctx, reader.Posts())
	if err := reader.Err(); err != nil {
		return nil, err
	}
	ingestStats := reader.Stats()
	logger.Info("Mention graph built.",
		"lines", ingestStats.Lines,
		"malformed", ingestStats.Malformed,
		"posts", buildStats.Posts,
		"skipped", buildStats.Skipped,
		"vertices", buildStats.Vertices,
		"edges", buildStats.Edges,
	)

	opts := a.config.RankOptions()
	started := time.Now()
	res, err := rank.Rank(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("ranking failed: %w", err)
	}
	elapsed := time.Since(started)

	if !res.Converged {
		logger.Warn("Ranking stopped before converging.", "rounds", res.Rounds, "max_iterations", opts.MaxIterations)
	} else {
		logger.Info("🏁 Ranking converged.", "rounds", res.Rounds, "duration", elapsed)
	}

	a.metrics.Observe(metrics.Run{
		Posts:          buildStats.Posts,
		SkippedPosts:   buildStats.Skipped,
		MalformedLines: ingestStats.Malformed,
		Vertices:       buildStats.Vertices,
		Edges:          buildStats.Edges,
		Rounds:         res.Rounds,
		Converged:      res.Converged,
		RankDuration:   elapsed,
		Finished:       time.Now(),
	})

	summary := &report.Summary{
		Ingest:  ingestStats,
		Build:   buildStats,
		Options: opts,
		Result:  res,
	}
	a.setLast(summary)
	return summary, nil
}
