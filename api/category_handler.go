package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/errs"
	"github.com/inkwellcms/inkwell-backend/models"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	postRepo     *database.PostRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo, postRepo *database.PostRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		postRepo:     postRepo,
	}
}

// CategoryRequest is the create/update payload for a category.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

// CategoryPage is a category together with its published posts.
type CategoryPage struct {
	Category   models.Category `json:"category"`
	Posts      []*models.Post  `json:"posts"`
	Pagination Pagination      `json:"pagination"`
}

// show serves a public category page: the category and its published posts,
// newest-published first.
func (h categoryHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		category, err := h.categoryRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFound("category"))
			return
		}

		page, limit := pageParams(r, 12)
		posts, total, err := h.postRepo.FindPublishedByCategory(category.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, CategoryPage{
			Category:   *category,
			Posts:      posts,
			Pagination: Pagination{Page: page, Limit: limit, Total: total},
		})
	}
}

func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "categories", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"categories": categories})
	}
}

func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		category := models.Category{
			ID:          uuid.New(),
			Name:        req.Name,
			Slug:        models.Slugify(req.Name),
			Description: req.Description,
		}
		if req.Color != "" {
			category.Color = req.Color
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "category", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.resolveCategory(w, r)
		if !ok {
			return
		}

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		category.Name = req.Name
		category.Slug = models.Slugify(req.Name)
		category.Description = req.Description
		if req.Color != "" {
			category.Color = req.Color
		}
		category.UpdatedAt = time.Now()

		if err := h.categoryRepo.Update(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update category", "category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, ok := h.resolveCategory(w, r)
		if !ok {
			return
		}

		if err := h.categoryRepo.Delete(category.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete category", "category", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "category deleted successfully",
		})
	}
}

func (h categoryHandler) resolveCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	categoryIDStr := chi.URLParam(r, "categoryID")
	if categoryIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing categoryID"))
		return nil, false
	}

	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid categoryID"))
		return nil, false
	}

	category, err := h.categoryRepo.FindByID(categoryID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find category", "category", err))
		return nil, false
	}
	if category == nil {
		h.responder.WriteError(w, errs.NewNotFound("category"))
		return nil, false
	}
	return category, true
}
