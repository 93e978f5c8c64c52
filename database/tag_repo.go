package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwellcms/inkwell-backend/models"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindByIDs returns the tags matching ids; missing ids are silently skipped.
func (r *TagRepo) FindByIDs(ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by id, or nil when absent.
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// FindBySlug returns a tag by slug, or nil when absent.
func (r *TagRepo) FindBySlug(slug string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.First(&tag, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tag, nil
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

// Update updates an existing tag in the database
func (r *TagRepo) Update(tag *models.Tag) error {
	return r.db.Save(tag).Error
}

// Delete removes a tag and its post associations.
func (r *TagRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		tag := models.Tag{ID: id}
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// FindPopular returns tags with at least one published post, ordered by how
// many published posts carry them.
func (r *TagRepo) FindPopular(limit int) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Model(&models.Tag{}).
		Select("tags.*, COUNT(posts.id) AS published_posts_count").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Joins("JOIN posts ON posts.id = post_tags.post_id AND posts.status = ?", models.PostStatusPublished).
		Group("tags.id").
		Order("published_posts_count DESC").
		Limit(limit).
		Find(&tags).Error
	return tags, err
}

// Count returns the number of tags.
func (r *TagRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tag{}).Count(&count).Error
	return count, err
}
