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

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
	postRepo  *database.PostRepo
}

func newTagHandler(tagRepo *database.TagRepo, postRepo *database.PostRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
		postRepo:  postRepo,
	}
}

// TagRequest is the create/update payload for a tag.
type TagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagPage is a tag together with its published posts.
type TagPage struct {
	Tag        models.Tag     `json:"tag"`
	Posts      []*models.Post `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

// show serves a public tag page: the tag and its published posts,
// newest-published first.
func (h tagHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		tag, err := h.tagRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFound("tag"))
			return
		}

		page, limit := pageParams(r, 12)
		posts, total, err := h.postRepo.FindPublishedByTag(tag.ID, page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tag posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, TagPage{
			Tag:        *tag,
			Posts:      posts,
			Pagination: Pagination{Page: page, Limit: limit, Total: total},
		})
	}
}

func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find tags", "tags", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{"tags": tags})
	}
}

func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		tag := models.Tag{
			ID:   uuid.New(),
			Name: req.Name,
			Slug: models.Slugify(req.Name),
		}
		if req.Color != "" {
			tag.Color = req.Color
		}

		if err := h.tagRepo.Add(&tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create tag", "tag", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, ok := h.resolveTag(w, r)
		if !ok {
			return
		}

		var req TagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if req.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		tag.Name = req.Name
		tag.Slug = models.Slugify(req.Name)
		if req.Color != "" {
			tag.Color = req.Color
		}
		tag.UpdatedAt = time.Now()

		if err := h.tagRepo.Update(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update tag", "tag", err))
			return
		}

		h.responder.WriteJSON(w, tag)
	}
}

func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag, ok := h.resolveTag(w, r)
		if !ok {
			return
		}

		if err := h.tagRepo.Delete(tag.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete tag", "tag", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "tag deleted successfully",
		})
	}
}

func (h tagHandler) resolveTag(w http.ResponseWriter, r *http.Request) (*models.Tag, bool) {
	tagIDStr := chi.URLParam(r, "tagID")
	if tagIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing tagID"))
		return nil, false
	}

	tagID, err := uuid.Parse(tagIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid tagID"))
		return nil, false
	}

	tag, err := h.tagRepo.FindByID(tagID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find tag", "tag", err))
		return nil, false
	}
	if tag == nil {
		h.responder.WriteError(w, errs.NewNotFound("tag"))
		return nil, false
	}
	return tag, true
}
