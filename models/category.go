package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts; a post belongs to at most one category.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	Color       string    `json:"color" db:"color" gorm:"type:text;not null;default:'#3B82F6'"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	// Populated by aggregation queries, not a migrated column.
	PublishedPostsCount int64 `json:"publishedPostsCount,omitempty" gorm:"->;-:migration"`
}
