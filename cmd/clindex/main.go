// Command clindex is a local clinical guideline retrieval and answering
// tool. Guidelines are ingested into a SQLite store, indexed in memory,
// and queried with free-text questions that return structured, cited
// extractive answers.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	genopenai "github.com/clindex-labs/clindex-cli/internal/adapters/driven/generator/openai"
	indexmem "github.com/clindex-labs/clindex-cli/internal/adapters/driven/index/memory"
	"github.com/clindex-labs/clindex-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clindex-labs/clindex-cli/internal/adapters/driving/cli"
	"github.com/clindex-labs/clindex-cli/internal/chunker"
	"github.com/clindex-labs/clindex-cli/internal/config"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driving"
	"github.com/clindex-labs/clindex-cli/internal/core/services"
	"github.com/clindex-labs/clindex-cli/internal/lexicon"
	"github.com/clindex-labs/clindex-cli/internal/logger"
	"github.com/clindex-labs/clindex-cli/internal/normalisers"
	"github.com/clindex-labs/clindex-cli/internal/normalisers/markdown"
	"github.com/clindex-labs/clindex-cli/internal/normalisers/plaintext"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// .env is optional; it carries OPENAI_API_KEY for the generator.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetBootstrap(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices wires the full stack: config, store, index, normalisers
// and the core services. Runs once, after global flags are parsed.
func buildServices() (cli.Services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return cli.Services{}, err
	}

	dataDir := cfg.DataDir
	if cli.FlagDataDir != "" {
		dataDir = cli.FlagDataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("opening store: %w", err)
	}
	docStore := store.DocumentStore()

	lex := lexicon.New(lexicon.WithDeltas(cfg.Rules.Deltas()))
	splitter := chunker.New(chunker.WithMaxChars(cfg.Chunker.MaxChars))
	registry := normalisers.NewRegistry(plaintext.New(), markdown.New())
	index := indexmem.New()

	ingestService := services.NewIngestService(docStore, index, registry, splitter)

	// The index is derived state: rebuild it from the store at startup.
	if n, err := ingestService.Reindex(context.Background()); err != nil {
		return cli.Services{}, fmt.Errorf("building index: %w", err)
	} else if n > 0 {
		logger.Debug("Index ready: %d chunks", n)
	}

	answerService := services.NewAnswerService(docStore, index, buildGenerator(cfg), lex, services.AnswerTuning{
		K:                 cfg.Ranker.K,
		Authority:         cfg.Ranker.Authority,
		RecencyMaxBonus:   cfg.Ranker.RecencyMaxBonus,
		RecencyMaxAgeDays: cfg.Ranker.RecencyMaxAgeDays,
		Caps: driving.SectionCaps{
			Definition: cfg.Answer.Definition,
			Causes:     cfg.Answer.Causes,
			Immediate:  cfg.Answer.Immediate,
			Ongoing:    cfg.Answer.Ongoing,
		},
		MaxCitations:     cfg.Answer.MaxCitations,
		MinSentenceChars: cfg.Answer.MinSentenceChars,
		MaxSentenceChars: cfg.Answer.MaxSentenceChars,
	})

	return cli.Services{
		Answer:   answerService,
		Ingest:   ingestService,
		Document: services.NewDocumentService(docStore),
	}, nil
}

// loadConfig loads the TOML config from --config or the default path.
func loadConfig() (config.Config, error) {
	path := cli.FlagConfig
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// buildGenerator returns the paraphrase generator, or nil when disabled
// or unconfigured. A missing generator is not an error: the extractive
// pipeline works without it.
func buildGenerator(cfg config.Config) driven.Generator {
	if !cfg.Generator.Enabled {
		return nil
	}

	gen, err := genopenai.New(genopenai.Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   cfg.Generator.Model,
		BaseURL: cfg.Generator.BaseURL,
	})
	if err != nil {
		logger.Warn("Paraphrase generator disabled: %v", err)
		return nil
	}
	return gen
}
