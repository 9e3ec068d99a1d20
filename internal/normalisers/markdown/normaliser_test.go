package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

func TestExtractStripsFormatting(t *testing.T) {
	n := New()

	input := "# Sepsis\n\nGive **broad-spectrum** antibiotics, see [guidance](https://example.org).\n\n* Take blood cultures\n* Give IV fluids\n"
	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content:  []byte(input),
		MIMEType: "text/markdown",
	})
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.NotContains(t, result.Text, "#")
	assert.NotContains(t, result.Text, "**")
	assert.NotContains(t, result.Text, "](")
	assert.Contains(t, result.Text, "broad-spectrum antibiotics")
	assert.Contains(t, result.Text, "guidance")
}

func TestExtractKeepsBulletShape(t *testing.T) {
	n := New()

	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content: []byte("* Give calcium gluconate\n+ Monitor ECG\n"),
	})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "- Give calcium gluconate")
	assert.Contains(t, result.Text, "- Monitor ECG")
}

func TestExtractRemovesCodeBlocks(t *testing.T) {
	n := New()

	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content: []byte("Before\n\n```\nnot clinical text\n```\n\nAfter"),
	})
	require.NoError(t, err)

	assert.NotContains(t, result.Text, "not clinical text")
	assert.Contains(t, result.Text, "Before")
	assert.Contains(t, result.Text, "After")
}

func TestExtractInvalidUTF8(t *testing.T) {
	n := New()

	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content: []byte{0xff, 0xfe},
	})
	require.NoError(t, err)
	assert.True(t, result.Failed)
}
