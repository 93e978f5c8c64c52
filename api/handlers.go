package api

import (
	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, store storage.Storage, jwtSecret string) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(db.UserRepo(), jwtSecret),
		blogHandler:      newBlogHandler(db.PostRepo(), db.CategoryRepo(), db.TagRepo()),
		postHandler:      newPostHandler(db.PostRepo(), db.CategoryRepo(), db.TagRepo(), store),
		categoryHandler:  newCategoryHandler(db.CategoryRepo(), db.PostRepo()),
		tagHandler:       newTagHandler(db.TagRepo(), db.PostRepo()),
		imageHandler:     newImageHandler(store),
		dashboardHandler: newDashboardHandler(db.PostRepo(), db.CategoryRepo(), db.TagRepo()),
	}
}
