package database

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/inkwellcms/inkwell-backend/models"
)

// Seed populates an empty database with an admin account and a small set of
// categories, tags and posts. Safe to call repeatedly: it bails out as soon as
// it sees existing users.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	categories := []models.Category{
		{Name: "Engineering", Slug: "engineering", Color: "#3B82F6"},
		{Name: "Product", Slug: "product", Color: "#10B981"},
		{Name: "Design", Slug: "design", Color: "#F59E0B"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("create categories: %w", err)
	}

	tags := []models.Tag{
		{Name: "Go", Slug: "go", Color: "#10B981"},
		{Name: "Databases", Slug: "databases", Color: "#3B82F6"},
		{Name: "Tutorial", Slug: "tutorial", Color: "#8B5CF6"},
	}
	if err := db.Create(&tags).Error; err != nil {
		return fmt.Errorf("create tags: %w", err)
	}

	now := time.Now()
	welcome := models.Post{
		Title:       "Welcome to Inkwell",
		Slug:        "welcome-to-inkwell",
		Content:     "<p>This is your first post. Edit or delete it, then start writing.</p>",
		Status:      models.PostStatusPublished,
		PublishedAt: &now,
		AuthorID:    admin.ID,
		CategoryID:  &categories[0].ID,
		Tags:        []models.Tag{tags[0], tags[2]},
	}
	if err := db.Create(&welcome).Error; err != nil {
		return fmt.Errorf("create welcome post: %w", err)
	}

	draft := models.Post{
		Title:      "Drafting in the open",
		Slug:       "drafting-in-the-open",
		Content:    "<p>Unpublished notes only admins can see.</p>",
		Status:     models.PostStatusDraft,
		AuthorID:   admin.ID,
		CategoryID: &categories[1].ID,
	}
	if err := db.Create(&draft).Error; err != nil {
		return fmt.Errorf("create draft post: %w", err)
	}

	return nil
}
