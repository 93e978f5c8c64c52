package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Go 1.23 Released!", "go-1-23-released"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---separators___here", "multiple-separators-here"},
		{"ALLCAPS", "allcaps"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus(PostStatusDraft))
	assert.True(t, ValidStatus(PostStatusPublished))
	assert.True(t, ValidStatus(PostStatusArchived))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("Published"))
	assert.False(t, ValidStatus("retracted"))
}
