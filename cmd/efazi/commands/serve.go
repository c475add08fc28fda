package commands

import (
	"github.com/spf13/cobra"

	"efazi/internal/httpapi"
	"efazi/internal/rod"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report builder over HTTP (upload endpoint + health check)",
	RunE: func(cmd *cobra.Command, args []string) error {
		server := httpapi.NewServer(rod.NewPipeline(cfg.Thresholds), cfg.HTTPPort)
		return server.Listen()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
