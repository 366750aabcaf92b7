package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig string
	flagAPIURL string
	flagEnv    string
)

var rootCmd = &cobra.Command{
	Use:   "newsagg [path]",
	Short: "Terminal client for the News Aggregator API",
	Long: `newsagg is a terminal client for the News Aggregator API: a personalized
news feed for readers and an article dashboard for admins.

The optional path picks the starting view the way a URL would: "/admin" opens
the admin dashboard, anything else opens the reader.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "API base URL (overrides config and NEWSAGG_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env-file", ".env", "dotenv file to load before reading config")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(mockAPICmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsagg %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
