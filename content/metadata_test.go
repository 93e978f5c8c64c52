package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwellcms/inkwell-backend/models"
)

func TestWordCountStripsMarkup(t *testing.T) {
	assert.Equal(t, 2, WordCount("<p>Hello <b>world</b></p>"))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("<br/><hr>"))
	assert.Equal(t, 3, WordCount("one  two\n\tthree"))
	// Sibling elements must not glue their words together.
	assert.Equal(t, 2, WordCount("<p>first</p><p>second</p>"))
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, "1 min read", ReadingTime(""))
	assert.Equal(t, "1 min read", ReadingTime("word"))
	assert.Equal(t, "1 min read", ReadingTime(strings.Repeat("word ", 200)))
	assert.Equal(t, "2 min read", ReadingTime(strings.Repeat("word ", 201)))
	assert.Equal(t, "2 min read", ReadingTime(strings.Repeat("word ", 400)))
	assert.Equal(t, "3 min read", ReadingTime(strings.Repeat("word ", 401)))
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "🟡 Draft", StatusBadge(models.PostStatusDraft))
	assert.Equal(t, "🟢 Published", StatusBadge(models.PostStatusPublished))
	assert.Equal(t, "🔴 Archived", StatusBadge(models.PostStatusArchived))
}

func TestComputeMetadata(t *testing.T) {
	post := &models.Post{
		Content: strings.Repeat("lorem ipsum ", 150), // 300 words
		Status:  models.PostStatusPublished,
	}

	meta := ComputeMetadata(post)
	assert.Equal(t, 300, meta.WordCount)
	assert.Equal(t, "2 min read", meta.ReadingTime)
	assert.Equal(t, "🟢 Published", meta.StatusBadge)
}
