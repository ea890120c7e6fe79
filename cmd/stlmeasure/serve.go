package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/stlmeasure/internal/metrics"
	"github.com/philipparndt/stlmeasure/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve measurements over HTTP",
	Long: `Start an HTTP service. POST an STL file to /v1/measure to receive its
measurements as JSON. Health and Prometheus metrics are exposed on /health and
/metrics.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("listen") {
			cfg.Server.Listen = serveListen
		}
		collector := metrics.NewCollector("stlmeasure")
		return server.New(cfg, logger, collector).Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", ":8080", "address to listen on")
}
