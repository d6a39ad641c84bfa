package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathomics/slidecheck/internal/checker"
	"github.com/pathomics/slidecheck/internal/config"
	"github.com/pathomics/slidecheck/internal/convert"
	"github.com/pathomics/slidecheck/internal/download"
	"github.com/pathomics/slidecheck/internal/logging"
	"github.com/pathomics/slidecheck/internal/slide"
	"github.com/pathomics/slidecheck/internal/smoketest"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "slidecheck",
		Short: "Validate the whole-slide-image pipeline environment",
		Long: "slidecheck verifies that the WSI processing environment works end to end:\n" +
			"sample pathology slides are cached locally (downloaded when missing), the\n" +
			"pyramidal-TIFF converter runs, a slide can be opened and a region read, and\n" +
			"the distributed-computing smoke test succeeds.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.NewSettings()
			if cfgFile != "" {
				if err := settings.LoadFile(cfgFile); err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
			}
			if err := settings.BindFlags(cmd.Flags()); err != nil {
				return err
			}
			return run(cmd, settings)
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
	cmd.Flags().String("database-dir", "", "test database directory (default: ./test_database)")
	cmd.Flags().String("slide", "", "slide opened by the reader check (default: x40 sample in the database)")
	cmd.Flags().String("vips", config.DefaultVipsBin, "vips binary used for conversion and region reads")
	cmd.Flags().StringSlice("smoke-cmd", config.DefaultSmokeCommand, "smoke test command and arguments")
	cmd.Flags().Bool("skip-smoke-test", false, "skip the distributed-computing smoke test")
	cmd.Flags().String("log-mode", config.DefaultLogMode, "logger mode: dev or prod")

	return cmd
}

func run(cmd *cobra.Command, settings *config.Settings) error {
	log, err := logging.New(settings.GetLogMode())
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	log.Info("slidecheck starting", "version", version)

	vipsBin := settings.GetVipsBin()
	converter := convert.NewService(vipsBin, log)
	if !converter.Available() {
		return fmt.Errorf("vips binary %q not found on PATH", vipsBin)
	}

	var smoke checker.SmokeRunner
	if !settings.GetSkipSmokeTest() {
		runner, err := smoketest.NewRunner(settings.GetSmokeCommand(), log)
		if err != nil {
			return err
		}
		smoke = runner
	}

	chk := checker.New(checker.Params{
		DatabaseDir: settings.GetDatabaseDir(),
		SlidePath:   settings.GetSlidePath(),
		Fetcher:     download.NewService(log),
		Converter:   converter,
		Reader:      slide.NewReader(vipsBin, log),
		Smoke:       smoke,
		Log:         log,
	})

	report, runErr := chk.Run(cmd.Context())
	for _, step := range report.Steps {
		log.Info("step result",
			"step", step.Name,
			"status", step.Status.String(),
			"duration", step.Duration().String())
	}
	if runErr != nil {
		log.Error("environment check failed", "error", runErr)
		return runErr
	}

	return nil
}
