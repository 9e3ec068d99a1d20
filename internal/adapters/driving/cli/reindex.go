package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the term index from stored documents",
	Long: `Rebuild the in-memory term index from the document store.

The rebuild happens off to the side and swaps in atomically, so queries
served meanwhile see either the old index or the new one, never a mix.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}
		n, err := ingestService.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Reindexed %d chunks\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
