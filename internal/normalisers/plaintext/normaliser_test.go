package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clindex-labs/clindex-cli/internal/core/domain"
)

func TestExtract(t *testing.T) {
	n := New()

	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content:  []byte("Hyperkalaemia is serum potassium above 5.5 mmol/L."),
		MIMEType: "text/plain",
	})
	require.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "Hyperkalaemia is serum potassium above 5.5 mmol/L.", result.Text)
}

func TestExtractInvalidUTF8(t *testing.T) {
	n := New()

	result, err := n.Extract(context.Background(), &domain.RawDocument{
		Content: []byte{0xff, 0xfe, 0x00},
	})
	require.NoError(t, err)
	assert.True(t, result.Failed)
	assert.NotEmpty(t, result.Reason)
}

func TestExtractNilDocument(t *testing.T) {
	n := New()
	_, err := n.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
