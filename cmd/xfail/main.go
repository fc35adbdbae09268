// xfail triages a partially failing inherited test suite.
//
// Usage:
//
//	xfail --test test_unicode --path Lib/test/test_unicode.py
//
// It runs the named test group under the configured interpreter in verbose
// mode, parses the textual report, and marks every failing or erroring test
// function in the given source file with a tracking comment and an
// @unittest.expectedFailure annotation, rewriting the file in place.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dkoosis/xfail/internal/config"
	"github.com/dkoosis/xfail/internal/version"
	"github.com/dkoosis/xfail/xfail"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "xfail: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "xfail",
		Usage:   "mark failing tests as expected failures",
		Version: fmt.Sprintf("%s-%s-%s", version.Version, version.CommitHash, version.BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "test",
				Usage:    "name of the test or test group to run",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "path",
				Usage:    "path to the test source file to patch",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "force modification (reserved for a future validation override)",
			},
			&cli.BoolFlag{
				Name:  "platform",
				Usage: "request a platform-specific annotation",
			},
			&cli.StringFlag{
				Name:  "runner",
				Usage: "interpreter used to run the test",
			},
			&cli.StringFlag{
				Name:  "marker",
				Usage: "tracking comment inserted above the annotation",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "disable styled output",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg := config.Load()
	cfg.MergeEnv()
	cfg.MergeFlags(config.Flags{
		Runner:     c.String("runner"),
		Marker:     c.String("marker"),
		NoColor:    c.Bool("no-color"),
		NoColorSet: c.IsSet("no-color"),
		Debug:      c.Bool("debug"),
		DebugSet:   c.IsSet("debug"),
	})

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log = log.With(zap.String("run_id", uuid.NewString()))

	runner := xfail.NewRunner(cfg.Runner, log)
	fixer := xfail.NewFixer(runner, xfail.NewPatcher(cfg.Marker), log)

	sum, err := fixer.Fix(c.Context, c.String("test"), c.String("path"), xfail.Options{
		Force:    c.Bool("force"),
		Platform: c.Bool("platform"),
	})
	if err != nil {
		return err
	}

	theme := xfail.ThemeFor(os.Stdout, cfg.NoColor)
	xfail.RenderSummary(os.Stdout, sum, theme, xfail.TermWidth(os.Stdout))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopmentConfig().Build()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg.Build()
}
