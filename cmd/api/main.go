package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title Firehose Dashboard API
// @version 1.0
// @description Health dashboard for the firehose data pipeline.
// @BasePath /

var (
	flagPeriod   int
	flagAddr     string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "firehose-dashboard",
	Short: "Serve the firehose pipeline health dashboard",
	Long: `Serves the firehose pipeline health dashboard over HTTP.

Connection settings come from the environment (POSTGRES_DSN or DB_*,
REDIS_ADDR, DASHBOARD_*). Flags override the matching variables.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().IntVar(&flagPeriod, "period", 0, "Default window length in days (overrides DASHBOARD_PERIOD)")
	rootCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
