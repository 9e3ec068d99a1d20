// Package chunker splits extracted document text into bounded chunks by
// greedy sentence accumulation. The same boundary rule is reused at finer
// granularity to split chunks into sentences at query time.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxChars is the default chunk size bound in characters.
const DefaultMaxChars = 1600

var (
	sentenceEndRe = regexp.MustCompile(`([.!?])\s+`)
	bulletRe      = regexp.MustCompile(`^\s*(?:[-•*]|\d+[.)]|\(\d+\))\s`)
	spaceRe       = regexp.MustCompile(`[ \t]+`)
)

// Chunker accumulates sentences into chunks up to a size bound.
type Chunker struct {
	maxChars int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithMaxChars sets the chunk size bound in characters.
func WithMaxChars(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.maxChars = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{maxChars: DefaultMaxChars}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split divides text into chunks of at most maxChars characters, never
// splitting mid-sentence. A single sentence longer than maxChars becomes
// its own chunk, unsplit. Whitespace-only input yields no chunks.
// The result is deterministic for identical input.
func (c *Chunker) Split(text string) []string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []string
	var cur []string
	curLen := 0

	for _, s := range sentences {
		n := len(s)
		if len(cur) > 0 && curLen+n+1 > c.maxChars {
			chunks = append(chunks, strings.Join(cur, " "))
			cur = cur[:0]
			curLen = 0
		}
		cur = append(cur, s)
		curLen += n + 1
	}

	if len(cur) > 0 {
		chunks = append(chunks, strings.Join(cur, " "))
	}

	return chunks
}

// SplitSentences splits text into sentences and atomic bullet lines.
// Sentence boundaries are '.', '?' or '!' followed by whitespace. Lines
// starting with a bullet or numbered-list marker are kept whole, since
// guideline text is often bulleted and a marker line is one instruction.
func SplitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Normalise line endings and collapse runs of spaces and tabs.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRe.ReplaceAllString(line, " "))
		if line == "" {
			continue
		}

		if bulletRe.MatchString(line) {
			out = append(out, line)
			continue
		}

		for _, part := range splitLine(line) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// splitLine breaks a single line on sentence terminators, keeping the
// terminator attached to the preceding sentence.
func splitLine(line string) []string {
	locs := sentenceEndRe.FindAllStringIndex(line, -1)
	if len(locs) == 0 {
		return []string{line}
	}

	var parts []string
	start := 0
	for _, loc := range locs {
		// loc[0] is the terminator; include it, drop the whitespace.
		parts = append(parts, line[start:loc[0]+1])
		start = loc[1]
	}
	if start < len(line) {
		parts = append(parts, line[start:])
	}

	return parts
}
