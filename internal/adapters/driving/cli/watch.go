package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/clindex-labs/clindex-cli/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Auto-ingest guideline files dropped into a directory",
	Long: `Watch a directory and ingest .txt and .md files as they appear.
Files already present are ingested first. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		return watch.New(ingestService).Run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
