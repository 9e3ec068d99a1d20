package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc"},
	Short:   "Manage ingested documents",
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ingested documents",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if documentService == nil {
			return errors.New("document service not configured")
		}

		docs, err := documentService.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			cmd.Println("No documents ingested.")
			return nil
		}

		for _, doc := range docs {
			title := doc.Title
			if title == "" {
				title = "(untitled)"
			}
			short := doc.ID
			if len(short) > 12 {
				short = short[:12]
			}
			line := short + "  " + title
			if doc.Organisation != "" {
				line += "  [" + doc.Organisation + "]"
			}
			if doc.Published != nil {
				line += "  " + doc.Published.Format("2006-01-02")
			}
			cmd.Println(line)
		}
		return nil
	},
}

var documentShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if documentService == nil {
			return errors.New("document service not configured")
		}

		content, err := documentService.GetContent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		cmd.Println(content)
		return nil
	},
}

var documentRemoveCmd = &cobra.Command{
	Use:     "remove [id]",
	Aliases: []string{"rm"},
	Short:   "Remove a document from the store and the index",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ingestService == nil {
			return errors.New("ingest service not configured")
		}

		if err := ingestService.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentShowCmd)
	documentCmd.AddCommand(documentRemoveCmd)
	rootCmd.AddCommand(documentCmd)
}
