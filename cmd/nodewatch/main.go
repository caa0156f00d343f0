package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nodewatchhq/nodewatch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nodewatch",
		Short: "Chat-driven healthcheck bot for remote nodes",
		Long:  "nodewatch watches a fixed set of nodes and reports their health on demand through a Telegram bot.",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the bot and the ops HTTP server",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.GetInfo())
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
