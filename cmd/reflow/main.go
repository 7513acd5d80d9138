package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/reflow-ui/reflow/internal/cliconfig"
	"github.com/reflow-ui/reflow/internal/sim"
	"github.com/reflow-ui/reflow/pkg/log"
)

const longHelp = `Replay a scripted action scenario through a frame-batched dispatcher
pipeline and trace every flush.

Scenarios are TOML files listing action submissions with time offsets:

  name = "burst"

  [[steps]]
  at = "5ms"
  target = "ui"
  kind = "increment"
  payload = "1"

Each step is frame-batched unless it sets deferred = false. With --watch
the scenario re-runs whenever the file changes.`

const exampleUsage = `  reflow --scenario burst.toml
  reflow --scenario burst.toml --frame-interval 50ms --watch`

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:     "reflow",
		Short:   "Replay action scenarios through a frame-batched dispatcher",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.reflow/config.toml),
			// then env, then flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := log.NewZerologAdapterWithLogger(cliconfig.Logger(cfg.Debug))
			logger.Info("configuration",
				log.String("scenario", cfg.ScenarioPath),
				log.Duration("frame_interval", cfg.FrameInterval),
				log.Float64("time_scale", cfg.TimeScale),
				log.Bool("watch", cfg.Watch))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			runner := sim.NewRunner(sim.Options{
				FrameInterval: cfg.FrameInterval,
				TimeScale:     cfg.TimeScale,
			}, logger)

			runOnce := func() {
				sc, err := sim.Load(cfg.ScenarioPath)
				if err != nil {
					logger.Error("load scenario", log.Err(err))
					return
				}
				if err := runner.Run(ctx, sc); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("run scenario", log.Err(err))
				}
			}

			if !cfg.Watch {
				sc, err := sim.Load(cfg.ScenarioPath)
				if err != nil {
					return fmt.Errorf("load scenario: %w", err)
				}
				return runner.Run(ctx, sc)
			}

			err := sim.Watch(ctx, cfg.ScenarioPath, 250*time.Millisecond, logger, runOnce)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to TOML config file (default $HOME/.reflow/config.toml)")
	flags.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "path to TOML scenario file")
	flags.DurationVar(&cfg.FrameInterval, "frame-interval", cfg.FrameInterval, "simulated display refresh interval")
	flags.Float64Var(&cfg.TimeScale, "time-scale", cfg.TimeScale, "replay speed multiplier for step offsets")
	flags.BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the scenario when the file changes")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
