// Package config loads the engine's tuning configuration from a TOML
// file. Every hand-tuned weight is exposed here rather than hard-coded:
// lexical rule deltas, the organisation authority table, recency decay
// and the per-section sentence caps.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultConfigDir is the directory under the home directory that holds
// the config file and the data directory.
const DefaultConfigDir = ".clindex"

// Config is the full engine configuration.
type Config struct {
	// DataDir holds the SQLite database. Empty means ~/.clindex/data.
	DataDir string `toml:"data_dir"`

	Chunker   ChunkerConfig   `toml:"chunker"`
	Ranker    RankerConfig    `toml:"ranker"`
	Rules     RulesConfig     `toml:"rules"`
	Answer    AnswerConfig    `toml:"answer"`
	Generator GeneratorConfig `toml:"generator"`
}

// ChunkerConfig bounds chunk sizes at ingestion.
type ChunkerConfig struct {
	// MaxChars is the chunk size bound in characters.
	MaxChars int `toml:"max_chars"`
}

// RankerConfig tunes chunk ranking.
type RankerConfig struct {
	// K is the default number of top chunks considered per query.
	K int `toml:"k"`

	// RecencyMaxBonus is the bonus at publication date = now, decaying
	// linearly to zero at RecencyMaxAgeDays. Documents with an unknown
	// publication date receive no bonus and no penalty.
	RecencyMaxBonus   float64 `toml:"recency_max_bonus"`
	RecencyMaxAgeDays int     `toml:"recency_max_age_days"`

	// Authority maps issuing organisations to additive score weights.
	// Unknown organisations contribute zero.
	Authority map[string]float64 `toml:"authority"`
}

// RulesConfig overrides the lexical rule deltas by rule name.
type RulesConfig struct {
	Urgency float64 `toml:"urgency"`
	Dose    float64 `toml:"dose"`
	Route   float64 `toml:"route"`
	Bullet  float64 `toml:"bullet"`
	Length  float64 `toml:"length"`
}

// AnswerConfig bounds answer assembly.
type AnswerConfig struct {
	// Per-section sentence caps. Immediate Management typically needs
	// more entries than Definition/Criteria.
	Definition int `toml:"definition"`
	Causes     int `toml:"causes"`
	Immediate  int `toml:"immediate"`
	Ongoing    int `toml:"ongoing"`

	// MaxCitations bounds the citation list.
	MaxCitations int `toml:"max_citations"`

	// Sentence length bounds in characters. Sentences shorter than
	// MinSentenceChars are noise; longer ones are clipped at
	// MaxSentenceChars.
	MinSentenceChars int `toml:"min_sentence_chars"`
	MaxSentenceChars int `toml:"max_sentence_chars"`
}

// GeneratorConfig configures the optional paraphrase generator.
type GeneratorConfig struct {
	// Enabled turns paraphrasing on. Requires OPENAI_API_KEY.
	Enabled bool `toml:"enabled"`

	// Model is the chat model used for paraphrasing.
	Model string `toml:"model"`

	// BaseURL overrides the API endpoint for compatible providers.
	BaseURL string `toml:"base_url"`
}

// Default returns the built-in configuration. The rule deltas and
// section caps are the tuning constants of the system this replaces.
func Default() Config {
	return Config{
		Chunker: ChunkerConfig{MaxChars: 1600},
		Ranker: RankerConfig{
			K:                 12,
			RecencyMaxBonus:   2.0,
			RecencyMaxAgeDays: 4 * 365,
			Authority:         map[string]float64{},
		},
		Rules: RulesConfig{
			Urgency: 8,
			Dose:    4,
			Route:   3,
			Bullet:  1,
			Length:  1,
		},
		Answer: AnswerConfig{
			Definition:       3,
			Causes:           3,
			Immediate:        6,
			Ongoing:          4,
			MaxCitations:     8,
			MinSentenceChars: 10,
			MaxSentenceChars: 500,
		},
		Generator: GeneratorConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDir, "config.toml"), nil
}

// Load reads the config file at path, applying it over the defaults.
// A missing file is not an error: defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Deltas returns the rule deltas keyed by rule name, for the lexicon.
func (r RulesConfig) Deltas() map[string]float64 {
	return map[string]float64{
		"urgency": r.Urgency,
		"dose":    r.Dose,
		"route":   r.Route,
		"bullet":  r.Bullet,
		"length":  r.Length,
	}
}
