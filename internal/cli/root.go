package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mascotd",
	Short: "Community virtual pet daemon",
	Long:  "Mascotd keeps one virtual pet per community alive: stats decay in real time, the pet evolves on care checkpoints, and neglect kills it. Single Go binary backed by SQLite.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}
