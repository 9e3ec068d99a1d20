package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/clindex-labs/clindex-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive ask loop",
	Long: `Launch the interactive terminal interface: type a clinical
question, read the sectioned answer, scroll with the arrow keys.

Controls:
  Enter    - Ask
  ↑/↓      - Scroll the answer
  Esc      - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Panic recovery keeps a stack trace visible after altscreen exit.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if answerService == nil {
		return errors.New("answer service not configured")
	}

	return tui.Run(answerService)
}
