package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rrt-planner/internal/config"
	"rrt-planner/internal/render"
	"rrt-planner/internal/scenario"
	"rrt-planner/internal/session"
	"rrt-planner/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Plan across a sequence of random environments",
	Long: "run builds one environment per entry of obstacle_counts, places random free " +
		"start and goal points, grows a tree in each, and prints a summary. With --scenario " +
		"it plans the single fixed environment described by a TOML file.",
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("scenario", "", "TOML scenario file with fixed obstacles and endpoints")
	runCmd.Flags().String("out", "", "directory for PNG, GeoJSON and JSON output")
	runCmd.Flags().Uint64("seed", 0, "override the session seed")
	runCmd.Flags().IntSlice("obstacles", nil, "override obstacle counts, one per environment")
	runCmd.Flags().Duration("pause", 0, "override the pause between environments")

	_ = viper.BindPFlag("output_dir", runCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig("run")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	applyFlagOverrides(cmd, &cfg)

	envs := session.Environments(cfg)
	if path, _ := cmd.Flags().GetString("scenario"); path != "" {
		cfg, envs, err = scenarioEnvironments(path, cfg)
		if err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	printer := ui.New()
	printer.Banner(len(envs), cfg.Seed)

	connected := 0
	runner := &session.Runner{
		Config:   cfg,
		Log:      log,
		OnReport: reportTo(printer, cfg.OutputDir, &connected),
	}

	err = runner.Run(ctx, envs)
	printer.Totals(connected, len(envs))
	return err
}

// reportTo prints each environment card and writes its files when outDir is
// set. connected, if non-nil, counts environments that reached the goal.
func reportTo(printer *ui.Printer, outDir string, connected *int) func(session.Report) error {
	return func(rep session.Report) error {
		printer.Environment(rep)
		if rep.Result == nil {
			return nil
		}
		if connected != nil && rep.Result.Success {
			*connected++
		}
		if outDir == "" {
			return nil
		}
		paths, err := render.SaveAll(outDir, rep.Env, rep.Result)
		if err != nil {
			return err
		}
		printer.Saved(paths)
		return nil
	}
}

// applyFlagOverrides applies CLI flag values to the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("seed") {
		cfg.Seed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("obstacles") {
		cfg.ObstacleCounts, _ = cmd.Flags().GetIntSlice("obstacles")
	}
	if cmd.Flags().Changed("pause") {
		cfg.Pause, _ = cmd.Flags().GetDuration("pause")
	}
}

// scenarioEnvironments loads a scenario file and returns the adjusted config with
// its single environment.
func scenarioEnvironments(path string, cfg config.Config) (config.Config, []session.Environment, error) {
	sc, err := scenario.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	return sc.Apply(cfg), []session.Environment{sc.Environment()}, nil
}
