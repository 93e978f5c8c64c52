package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwellcms/inkwell-backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// FindAll returns posts newest-first for the admin listing, with the total
// count for pagination.
func (r *PostRepo) FindAll(page, limit int) ([]*models.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		Order("created_at DESC").
		Offset(offsetFor(page, limit)).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// FindByID returns a post with its associations, or nil when absent.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindBySlug returns a post by its URL slug, or nil when absent.
func (r *PostRepo) FindBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Author").Preload("Category").Preload("Tags").
		First(&post, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SlugTaken reports whether another post already uses slug.
func (r *PostRepo) SlugTaken(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update updates an existing post in the database
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Omit("Tags", "Author", "Category").Save(post).Error
}

// ReplaceTags resets the post's tag set to exactly tags.
func (r *PostRepo) ReplaceTags(post *models.Post, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

// Delete removes a post and its tag associations.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		post := models.Post{ID: id}
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
}

// IncrementViews bumps views_count by one in a single SQL statement, so
// concurrent readers never lose an update.
func (r *PostRepo) IncrementViews(id uuid.UUID) error {
	return r.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
}

// FindFeatured returns the most-viewed published posts.
func (r *PostRepo) FindFeatured(limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published().
		Order("views_count DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindLatest returns the most recently published posts.
func (r *PostRepo) FindLatest(limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.published().
		Order("published_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindPublishedByCategory pages through a category's published posts,
// newest-published first.
func (r *PostRepo) FindPublishedByCategory(categoryID uuid.UUID, page, limit int) ([]*models.Post, int64, error) {
	base := r.db.Model(&models.Post{}).
		Where("status = ? AND category_id = ?", models.PostStatusPublished, categoryID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err := r.published().
		Where("category_id = ?", categoryID).
		Order("published_at DESC").
		Offset(offsetFor(page, limit)).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// FindPublishedByTag pages through a tag's published posts, newest-published
// first.
func (r *PostRepo) FindPublishedByTag(tagID uuid.UUID, page, limit int) ([]*models.Post, int64, error) {
	inTag := r.db.Table("post_tags").Select("post_id").Where("tag_id = ?", tagID)

	var total int64
	err := r.db.Model(&models.Post{}).
		Where("status = ? AND id IN (?)", models.PostStatusPublished, inTag).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []*models.Post
	err = r.published().
		Where("id IN (?)", inTag).
		Order("published_at DESC").
		Offset(offsetFor(page, limit)).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// FindByAuthor returns an author's newest posts regardless of status.
func (r *PostRepo) FindByAuthor(authorID uuid.UUID, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Category").
		Where("author_id = ?", authorID).
		Order("created_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindRecent returns the newest posts regardless of status, for the admin
// dashboard.
func (r *PostRepo) FindRecent(limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Preload("Author").Preload("Category").
		Order("created_at DESC").Limit(limit).
		Find(&posts).Error
	return posts, err
}

// FindRelatedCandidates returns published posts sharing post's category or at
// least one of its tags, excluding post itself. Ranking happens in the content
// package; this only filters.
func (r *PostRepo) FindRelatedCandidates(post *models.Post) ([]*models.Post, error) {
	tagIDs := make([]uuid.UUID, 0, len(post.Tags))
	for _, t := range post.Tags {
		tagIDs = append(tagIDs, t.ID)
	}

	if post.CategoryID == nil && len(tagIDs) == 0 {
		return nil, nil
	}

	var match *gorm.DB
	if post.CategoryID != nil {
		match = r.db.Where("category_id = ?", *post.CategoryID)
	}
	if len(tagIDs) > 0 {
		byTag := r.db.Where("id IN (?)", r.db.Table("post_tags").Select("post_id").Where("tag_id IN ?", tagIDs))
		if match != nil {
			match = match.Or(byTag)
		} else {
			match = byTag
		}
	}

	var posts []*models.Post
	err := r.published().
		Where("id <> ?", post.ID).
		Where(match).
		Find(&posts).Error
	return posts, err
}

// Count returns the number of posts; onlyPublished narrows to published ones.
func (r *PostRepo) Count(onlyPublished bool) (int64, error) {
	q := r.db.Model(&models.Post{})
	if onlyPublished {
		q = q.Where("status = ?", models.PostStatusPublished)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *PostRepo) published() *gorm.DB {
	return r.db.Preload("Author").Preload("Category").Preload("Tags").
		Where("status = ?", models.PostStatusPublished)
}

func offsetFor(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
