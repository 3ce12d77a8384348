package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Output holds recap output configuration
type Output struct {
	Dir        string
	WindowDays int64
	DryRun     bool
}

// Flags returns CLI flags for Output configuration
func (o *Output) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output-dir",
			Usage:       "Root directory the recap/ files are written under",
			Category:    "Output",
			Value:       ".",
			Sources:     cli.EnvVars("GHRECAP_OUTPUT_DIR"),
			Destination: &o.Dir,
		},
		&cli.Int64Flag{
			Name:        "window-days",
			Usage:       "Length of the trailing report window in days",
			Category:    "Output",
			Value:       7,
			Sources:     cli.EnvVars("GHRECAP_WINDOW_DAYS"),
			Destination: &o.WindowDays,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Render and write the file but skip publication",
			Category:    "Output",
			Sources:     cli.EnvVars("GHRECAP_DRY_RUN"),
			Destination: &o.DryRun,
		},
	}
}

// Validate validates the output configuration
func (o *Output) Validate() error {
	if o.Dir == "" {
		return goerr.New("output directory is required")
	}
	if o.WindowDays <= 0 {
		return goerr.New("window days must be positive", goerr.V("days", o.WindowDays))
	}
	return nil
}

// LogValue returns structured log value
func (o Output) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dir", o.Dir),
		slog.Int64("window_days", o.WindowDays),
		slog.Bool("dry_run", o.DryRun),
	)
}
