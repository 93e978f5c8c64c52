package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels posts; posts and tags are many-to-many via post_tags.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Color     string    `json:"color" db:"color" gorm:"type:text;not null;default:'#10B981'"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	// Populated by aggregation queries, not a migrated column.
	PublishedPostsCount int64 `json:"publishedPostsCount,omitempty" gorm:"->;-:migration"`
}
