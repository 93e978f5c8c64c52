package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwellcms/inkwell-backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by name
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by id, or nil when absent.
func (r *CategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// FindBySlug returns a category by slug, or nil when absent.
func (r *CategoryRepo) FindBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update updates an existing category in the database
func (r *CategoryRepo) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

// Delete removes a category, first detaching its posts so they survive with
// no category. The detach runs explicitly rather than relying on FK cascade
// behavior, which differs between drivers.
func (r *CategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Post{}).
			Where("category_id = ?", id).
			UpdateColumn("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}

// FindPopular returns categories with at least one published post, ordered by
// how many published posts they hold.
func (r *CategoryRepo) FindPopular(limit int) ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Model(&models.Category{}).
		Select("categories.*, COUNT(posts.id) AS published_posts_count").
		Joins("JOIN posts ON posts.category_id = categories.id AND posts.status = ?", models.PostStatusPublished).
		Group("categories.id").
		Order("published_posts_count DESC").
		Limit(limit).
		Find(&categories).Error
	return categories, err
}

// Count returns the number of categories.
func (r *CategoryRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	return count, err
}
