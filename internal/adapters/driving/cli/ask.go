package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clindex-labs/clindex-cli/internal/adapters/driving/tui"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
)

var (
	askK          int
	askJSON       bool
	askParaphrase bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a clinical question from the local corpus",
	Long: `Answer a free-text clinical question using locally ingested
guidelines. The answer is extractive: four fixed sections of sentences
selected verbatim from the corpus, followed by citations.

With --paraphrase and a configured generator, a prose rendering is
printed after the extractive answer.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askK, "k", 0, "chunks considered after ranking (default from config)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the bundle as JSON")
	askCmd.Flags().BoolVar(&askParaphrase, "paraphrase", false, "add a prose rendering via the configured generator")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	result, err := answerService.Answer(cmd.Context(), args[0], driving.AnswerOptions{
		K:          askK,
		Paraphrase: askParaphrase,
	})
	if err != nil {
		return err
	}

	if askJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling answer: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(tui.RenderBundle(result.Bundle))

	if result.Paraphrase != "" {
		cmd.Println()
		cmd.Println(result.Paraphrase)
	}
	return nil
}
