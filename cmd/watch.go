package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rrt-planner/internal/config"
	"rrt-planner/internal/scenario"
	"rrt-planner/internal/session"
	"rrt-planner/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario.toml>",
	Short: "Re-plan a scenario every time the file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().String("out", "", "directory for PNG, GeoJSON and JSON output")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	base, log, err := loadConfig("watch")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		base.OutputDir = out
	}

	path := args[0]
	w, err := scenario.NewWatcher(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := signalContext()
	defer cancel()

	printer := ui.New()
	replan(ctx, path, base, log, printer)
	log.Infow("watching", "scenario", w.Path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Changes:
			if !ok {
				return nil
			}
			log.Infow("scenario changed", "scenario", w.Path)
			replan(ctx, path, base, log, printer)
		}
	}
}

// replan loads the scenario fresh and runs it once. Errors are printed, not
// returned, so a broken edit does not end the watch.
func replan(ctx context.Context, path string, base config.Config, log *zap.SugaredLogger, printer *ui.Printer) {
	cfg, envs, err := scenarioEnvironments(path, base)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		printer.Error(err.Error())
		return
	}
	cfg.Pause = 0

	runner := &session.Runner{
		Config:   cfg,
		Log:      log,
		OnReport: reportTo(printer, cfg.OutputDir, nil),
	}
	if err := runner.Run(ctx, envs); err != nil && ctx.Err() == nil {
		printer.Error(err.Error())
	}
}
