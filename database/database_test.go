package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwellcms/inkwell-backend/models"
)

// openTestDB returns a migrated in-memory database. A single connection keeps
// the :memory: database alive and serializes access from concurrent tests.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	))

	return db
}

func seedAuthor(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Author",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, post *models.Post) *models.Post {
	t.Helper()
	if post.Title == "" {
		post.Title = "Post " + uuid.NewString()
	}
	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	if post.Content == "" {
		post.Content = "<p>body</p>"
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
