package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/churnguard/churnguard/internal/config"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	logLevelFlag = "log-level"
)

var (
	version = "v0.0.1-default"
	commit  = ""

	// logLevel is shared by every handler installed during a run so a
	// config reload can change verbosity without rebuilding the logger.
	logLevel = new(slog.LevelVar)
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(os.Stderr, false)

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "err", err)
		os.Exit(1)
	}
}

// newApp builds a fresh command tree. Flags hold parse state and must not
// be shared between runs.
func newApp() *urfave.Command {
	return &urfave.Command{
		Name:    "churnguard",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Usage:   "Score customer churn risk with a fitted model artifact",
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Log level [debug, info, warn, error]; overrides log.level in the config file",
				Value:   "info",
				Sources: urfave.EnvVars("CHURNGUARD_LOG_LEVEL"),
			},
		},
		Commands: []*urfave.Command{
			newServeCmd(),
			newScoreCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			lvl, err := config.ParseLevel(cmd.String(logLevelFlag))
			if err != nil {
				return ctx, err
			}
			logLevel.Set(lvl)
			return ctx, nil
		},
	}
}

// initLogging installs the default logger: JSON for the long-running
// server, text for one-shot commands.
func initLogging(w io.Writer, asJSON bool) {
	opts := &slog.HandlerOptions{Level: logLevel}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if asJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	case formatJSON, "":
		e := json.NewEncoder(w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	}
	return fmt.Errorf("unknown output format %q", format)
}
