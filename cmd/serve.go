package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rrt-planner/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Long: "serve exposes POST /plan, GET /lines and GET /health. Request fields that are " +
		"omitted fall back to the loaded configuration.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("listen", ":8080", "listen address")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig("serve")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signalContext()
	defer cancel()

	log.Infow("endpoints",
		"plan", "POST /plan",
		"lines", "GET /lines",
		"health", "GET /health",
	)
	return server.New(cfg, log).ListenAndServe(ctx)
}
