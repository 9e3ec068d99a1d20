package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryDefinition, "Definition/Criteria"},
		{CategoryCauses, "Causes/Complications"},
		{CategoryImmediate, "Immediate Management"},
		{CategoryOngoing, "Ongoing Care"},
		{Category(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.String())
	}
}

func TestCategoriesOrder(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 4)
	assert.Equal(t, CategoryDefinition, cats[0])
	assert.Equal(t, CategoryOngoing, cats[3])
}

func TestAnswerBundleAppendAndSection(t *testing.T) {
	b := &AnswerBundle{}
	assert.True(t, b.Empty())

	for _, c := range Categories() {
		b.Append(c, Sentence{Text: c.String()})
	}

	assert.False(t, b.Empty())
	for _, c := range Categories() {
		section := b.Section(c)
		assert.Len(t, section, 1)
		assert.Equal(t, c.String(), section[0].Text)
	}

	// Unknown categories are ignored rather than mis-filed.
	b.Append(Category(99), Sentence{Text: "stray"})
	assert.Nil(t, b.Section(Category(99)))
}

func TestAnswerBundleEmpty(t *testing.T) {
	b := &AnswerBundle{Citations: []Citation{{Title: "t"}}}
	assert.True(t, b.Empty(), "citations alone do not make a bundle non-empty")

	b.Append(CategoryOngoing, Sentence{Text: "monitor"})
	assert.False(t, b.Empty())
}
