package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/churnguard/churnguard/internal/api"
	"github.com/churnguard/churnguard/internal/config"
	"github.com/churnguard/churnguard/internal/metrics"
	"github.com/churnguard/churnguard/internal/model"
	"github.com/churnguard/churnguard/internal/pipeline"
)

func newServeCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "serve",
		Usage: "Run the scoring HTTP API",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    "config",
				Usage:   "Path to the config file",
				Value:   "config.yaml",
				Sources: urfave.EnvVars("CHURNGUARD_CONFIG"),
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *urfave.Command) error {
	initLogging(os.Stdout, true)

	path := cmd.String("config")
	levelPinned := cmd.IsSet(logLevelFlag)

	slog.Info("churnguard starting", "version", version, "config", path)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if !levelPinned {
		logLevel.Set(cfg.Log.SlogLevel())
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"model_path", cfg.Model.Path,
		"decision_threshold", cfg.Scoring.DecisionThreshold,
		"log_level", logLevel.Level(),
	)

	rec := metrics.New()
	reg := model.NewRegistry(cfg.Model.Path)
	err = reg.Reload()
	rec.ObserveModelReload(err)
	if err != nil {
		return err
	}

	p, err := pipeline.New(reg, cfg.Scoring.DecisionThreshold)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      api.New(api.Deps{Scorer: p, Models: reg, Metrics: rec}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("churnguard shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// Watchers are best-effort: a failure to start one is logged and the
	// server keeps running on the loaded state.
	g.Go(func() error {
		r := &reloader{current: cfg, pipeline: p, levelPinned: levelPinned}
		if err := config.Watch(gctx, path, r.apply); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
		return nil
	})

	if cfg.Model.Watch {
		g.Go(func() error {
			if err := model.Watch(gctx, reg, rec.ObserveModelReload); err != nil {
				slog.Error("model watcher stopped", "err", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// reloader applies the live-tunable parts of a reloaded config.
type reloader struct {
	current     *config.Config
	pipeline    *pipeline.Pipeline
	levelPinned bool
}

func (r *reloader) apply(next *config.Config) {
	if err := r.pipeline.SetThreshold(next.Scoring.DecisionThreshold); err != nil {
		slog.Error("config: threshold not applied", "err", err)
	} else if next.Scoring.DecisionThreshold != r.current.Scoring.DecisionThreshold {
		slog.Info("config: decision threshold changed",
			"from", r.current.Scoring.DecisionThreshold,
			"to", next.Scoring.DecisionThreshold)
	}

	if !r.levelPinned {
		logLevel.Set(next.Log.SlogLevel())
	}

	if next.Model.Path != r.current.Model.Path {
		slog.Warn("config: model.path changed, restart to apply",
			"active", r.current.Model.Path, "configured", next.Model.Path)
	}
	if next.Server != r.current.Server {
		slog.Warn("config: server settings changed, restart to apply")
	}

	// Keep restart-only settings pinned to what is actually running.
	applied := *next
	applied.Model = r.current.Model
	applied.Server = r.current.Server
	r.current = &applied
}
