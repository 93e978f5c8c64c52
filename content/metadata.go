package content

import (
	"fmt"
	"strings"

	"github.com/inkwellcms/inkwell-backend/models"
)

// averageWordsPerMinute is the fixed reading speed used for reading-time
// estimates.
const averageWordsPerMinute = 200

// Metadata holds values derived from a post's stored fields on every read.
// Never persisted.
type Metadata struct {
	WordCount   int    `json:"wordCount"`
	ReadingTime string `json:"readingTime"`
	StatusBadge string `json:"statusBadge"`
}

// ComputeMetadata derives display metadata for a post.
func ComputeMetadata(post *models.Post) Metadata {
	words := WordCount(post.Content)
	return Metadata{
		WordCount:   words,
		ReadingTime: formatReadingTime(readingMinutes(words)),
		StatusBadge: StatusBadge(post.Status),
	}
}

// WordCount strips markup tags from content and counts whitespace-separated
// tokens. The content is otherwise opaque; no structural validation happens.
func WordCount(content string) int {
	return len(strings.Fields(stripTags(content)))
}

// ReadingTime estimates how long content takes to read at 200 words per
// minute, formatted as "N min read" with a floor of one minute.
func ReadingTime(content string) string {
	return formatReadingTime(readingMinutes(WordCount(content)))
}

func readingMinutes(words int) int {
	minutes := (words + averageWordsPerMinute - 1) / averageWordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func formatReadingTime(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

// StatusBadge maps a post status to its display label.
func StatusBadge(status string) string {
	switch status {
	case models.PostStatusDraft:
		return "🟡 Draft"
	case models.PostStatusPublished:
		return "🟢 Published"
	case models.PostStatusArchived:
		return "🔴 Archived"
	}
	return status
}

// stripTags drops everything between '<' and '>' and inserts a space in its
// place so adjacent words in sibling elements do not run together.
func stripTags(content string) string {
	var b strings.Builder
	b.Grow(len(content))

	inTag := false
	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
			b.WriteByte(' ')
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	return b.String()
}
