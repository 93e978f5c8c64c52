package models

import (
	"time"

	"github.com/google/uuid"
)

// Post statuses
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post represents a content item with a publication lifecycle
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug          string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Excerpt       *string    `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	Content       string     `json:"content" db:"content" gorm:"type:text;not null"`
	FeaturedImage *string    `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	Status        string     `json:"status" db:"status" gorm:"type:text;not null;default:'draft';index"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp;index"`
	ViewsCount    int64      `json:"viewsCount" db:"views_count" gorm:"type:bigint;not null;default:0"`
	AuthorID      uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	CategoryID    *uuid.UUID `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at" gorm:"type:timestamp"`

	Author   User      `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags     []Tag     `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
}

// IsPublished returns true if the post is publicly readable.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// ValidStatus reports whether s is one of the three post statuses.
func ValidStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// HasTag reports whether the post carries the given tag id.
func (p *Post) HasTag(tagID uuid.UUID) bool {
	for _, t := range p.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
