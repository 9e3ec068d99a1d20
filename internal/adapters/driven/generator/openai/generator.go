// Package openai implements the Generator port against any
// OpenAI-compatible chat completion endpoint. The generator is strictly
// optional: callers must treat its failure as cosmetic.
package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
	"github.com/clindex-labs/clindex-cli/internal/core/ports/driven"
)

// Ensure Generator implements the interface.
var _ driven.Generator = (*Generator)(nil)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

const requestTimeout = 30 * time.Second

const systemPrompt = `You rewrite structured clinical guideline extracts into short readable prose.
Use ONLY the sentences provided. Do not add facts, doses or recommendations.
Keep the four-part structure: recognition, causes, immediate management, follow-up.`

// Config holds the generator settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints
}

// Generator renders answer bundles as prose via a chat model.
type Generator struct {
	client *openai.Client
	model  string
}

// New creates a generator from the config.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: missing API key", domain.ErrGeneratorUnavailable)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Paraphrase renders the bundle as prose for the question.
func (g *Generator) Paraphrase(ctx context.Context, question string, bundle *domain.AnswerBundle) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: renderPrompt(question, bundle),
			},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGeneratorUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", domain.ErrGeneratorUnavailable)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// renderPrompt lays the bundle out section by section for the model.
func renderPrompt(question string, bundle *domain.AnswerBundle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)

	for _, cat := range domain.Categories() {
		sentences := bundle.Section(cat)
		if len(sentences) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", cat.Heading())
		for _, s := range sentences {
			fmt.Fprintf(&b, "- %s\n", s.Text)
		}
	}

	return b.String()
}
