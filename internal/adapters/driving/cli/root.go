// Package cli wires the cobra command tree. Services are injected once
// at startup via Initialize; commands read them from package state.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Injected services.
var (
	answerService   driving.AnswerService
	ingestService   driving.IngestService
	documentService driving.DocumentService
)

// Persistent flag values.
var (
	flagVerbose bool

	// FlagConfig is the config file path, read by main before services
	// are built.
	FlagConfig string

	// FlagDataDir overrides the configured data directory.
	FlagDataDir string
)

var rootCmd = &cobra.Command{
	Use:   "clindex",
	Short: "Local clinical guideline retrieval and answering",
	Long: `clindex ingests clinical guideline documents into a local store and
answers free-text questions from them with structured, cited extracts.

All retrieval is local. The optional paraphrase step is the only feature
that leaves the machine, and it never alters the extractive answer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		if bootstrap != nil && answerService == nil {
			services, err := bootstrap()
			if err != nil {
				return err
			}
			Initialize(services)
		}
		return nil
	},
}

// bootstrap builds the services after flags are parsed. Set by main;
// nil in tests, which inject services directly.
var bootstrap func() (Services, error)

// SetBootstrap registers the service constructor run before commands.
func SetBootstrap(fn func() (Services, error)) {
	bootstrap = fn
}

// Services bundles everything Initialize injects.
type Services struct {
	Answer   driving.AnswerService
	Ingest   driving.IngestService
	Document driving.DocumentService
}

// Initialize injects the services the commands run against.
func Initialize(s Services) {
	answerService = s.Answer
	ingestService = s.Ingest
	documentService = s.Document
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose diagnostics on stderr")
	rootCmd.PersistentFlags().StringVar(&FlagConfig, "config", "", "config file path (default ~/.clindex/config.toml)")
	rootCmd.PersistentFlags().StringVar(&FlagDataDir, "data-dir", "", "data directory override")
}
