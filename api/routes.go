package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires public blog routes, authenticated routes and the
// admin-only management surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, uploadsDir string) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.withViewer)

		// Public endpoints
		r.Get("/health", handlers.blogHandler.health())
		r.Post("/login", handlers.authHandler.login())
		r.Get("/blog", handlers.blogHandler.index())
		r.Get("/blog/{slug}", handlers.blogHandler.show())
		r.Get("/categories/{slug}", handlers.categoryHandler.show())
		r.Get("/tags/{slug}", handlers.tagHandler.show())

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(auth.requireAuth)
			r.Get("/dashboard", handlers.dashboardHandler.show())
		})

		// Admin-only content management
		r.Group(func(r chi.Router) {
			r.Use(auth.requireAdmin)

			r.Get("/posts", handlers.postHandler.getAllPosts())
			r.Post("/posts", handlers.postHandler.createPost())
			r.Get("/posts/{postID}", handlers.postHandler.getPost())
			r.Put("/posts/{postID}", handlers.postHandler.updatePost())
			r.Delete("/posts/{postID}", handlers.postHandler.deletePost())

			r.Get("/categories", handlers.categoryHandler.getAllCategories())
			r.Post("/categories", handlers.categoryHandler.createCategory())
			r.Put("/categories/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Delete("/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

			r.Get("/tags", handlers.tagHandler.getAllTags())
			r.Post("/tags", handlers.tagHandler.createTag())
			r.Put("/tags/{tagID}", handlers.tagHandler.updateTag())
			r.Delete("/tags/{tagID}", handlers.tagHandler.deleteTag())

			r.Post("/images", handlers.imageHandler.upload())
			r.Delete("/images", handlers.imageHandler.remove())
		})
	})

	// Locally stored uploads are served directly; S3-backed deployments serve
	// from the bucket URL instead.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)
}
