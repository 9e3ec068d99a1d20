package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrHashCollision,
		ErrExtractionFailed,
		ErrStoreUnavailable,
		ErrRebuildFailed,
		ErrGeneratorUnavailable,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("ingest: %w", ErrHashCollision)
	assert.True(t, errors.Is(err, ErrHashCollision))
	assert.False(t, errors.Is(err, ErrNotFound))
}
