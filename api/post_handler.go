package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwellcms/inkwell-backend/content"
	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/errs"
	"github.com/inkwellcms/inkwell-backend/models"
	"github.com/inkwellcms/inkwell-backend/storage"
)

type postHandler struct {
	responder    Responder
	logger       zerolog.Logger
	postRepo     *database.PostRepo
	categoryRepo *database.CategoryRepo
	tagRepo      *database.TagRepo
	store        storage.Storage
}

func newPostHandler(postRepo *database.PostRepo, categoryRepo *database.CategoryRepo, tagRepo *database.TagRepo, store storage.Storage) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		store:        store,
	}
}

// PostRequest is the create/update payload for a post. The featured image is
// a storage reference previously returned by the image-upload endpoint.
type PostRequest struct {
	Title         string      `json:"title"`
	Slug          string      `json:"slug"`
	Excerpt       *string     `json:"excerpt"`
	Content       string      `json:"content"`
	FeaturedImage *string     `json:"featuredImage"`
	Status        string      `json:"status"`
	CategoryID    *uuid.UUID  `json:"categoryId"`
	TagIDs        []uuid.UUID `json:"tagIds"`
}

// PostCollection represents a paged admin listing of posts.
type PostCollection struct {
	Posts      []*models.Post `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

// getAllPosts retrieves every post regardless of status for the admin area
// @Summary Get all posts
// @Description Retrieves all posts, newest first, with pagination
// @Tags Posts
// @Accept json
// @Produce json
// @Success 200 {object} PostCollection "Paged list of posts"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching posts"
// @Router /posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := pageParams(r, 12)

		posts, total, err := h.postRepo.FindAll(page, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, PostCollection{
			Posts:      posts,
			Pagination: Pagination{Page: page, Limit: limit, Total: total},
		})
	}
}

// getPost retrieves a specific post by ID, any status
// @Summary Get post
// @Description Retrieves a post by ID with author, category and tags
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} PostView "Post with derived metadata"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		h.responder.WriteJSON(w, PostView{
			Post:     *post,
			Metadata: content.ComputeMetadata(post),
		})
	}
}

// createPost creates a new post owned by the authenticated viewer
// @Summary Create post
// @Description Creates a post; the owning author is always the request's authenticated identity
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body PostRequest true "Post data"
// @Success 201 {object} PostView "Created post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already taken"
// @Router /posts [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := h.validate(&req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		taken, err := h.postRepo.SlugTaken(req.Slug, uuid.Nil)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug", "post", err))
			return
		}
		if taken {
			h.responder.WriteError(w, errs.NewConflictError("slug already taken"))
			return
		}

		viewer := ctxGetViewer(r.Context())
		post := models.Post{
			ID:            uuid.New(),
			Title:         req.Title,
			Slug:          req.Slug,
			Excerpt:       req.Excerpt,
			Content:       req.Content,
			FeaturedImage: req.FeaturedImage,
			Status:        models.PostStatusDraft,
			AuthorID:      viewer.ID,
			CategoryID:    req.CategoryID,
		}

		if err := content.ApplyStatus(&post, req.Status, time.Now()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.Add(&post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create post", "post", err))
			return
		}

		if err := h.syncTags(&post, req.TagIDs); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.postRepo.FindByID(post.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created post", "post", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, PostView{
			Post:     *created,
			Metadata: content.ComputeMetadata(created),
		})
	}
}

// updatePost updates an existing post
// @Summary Update post
// @Description Updates a post; entering the published status stamps publishedAt once
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body PostRequest true "Updated post data"
// @Success 200 {object} PostView "Updated post"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid post data"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		var req PostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewInvalidJSONError(err))
			return
		}

		if err := h.validate(&req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if req.Slug != post.Slug {
			taken, err := h.postRepo.SlugTaken(req.Slug, post.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check slug", "post", err))
				return
			}
			if taken {
				h.responder.WriteError(w, errs.NewConflictError("slug already taken"))
				return
			}
		}

		oldImage := post.FeaturedImage

		post.Title = req.Title
		post.Slug = req.Slug
		post.Excerpt = req.Excerpt
		post.Content = req.Content
		post.FeaturedImage = req.FeaturedImage
		post.CategoryID = req.CategoryID
		post.UpdatedAt = time.Now()

		if err := content.ApplyStatus(post, req.Status, time.Now()); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update post", "post", err))
			return
		}

		// A replaced or cleared featured image removes the old stored file,
		// but only once the row no longer references it.
		if oldImage != nil && (req.FeaturedImage == nil || *req.FeaturedImage != *oldImage) {
			h.deleteStoredImage(r, *oldImage)
		}

		if err := h.syncTags(post, req.TagIDs); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.postRepo.FindByID(post.ID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated post", "post", err))
			return
		}

		h.responder.WriteJSON(w, PostView{
			Post:     *updated,
			Metadata: content.ComputeMetadata(updated),
		})
	}
}

// deletePost deletes a post, its tag associations and its stored image
// @Summary Delete post
// @Description Deletes a post; the stored featured-image file is removed as well
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 404 {object} ErrorResponse "Not Found - Post not found"
// @Router /posts/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.resolvePost(w, r)
		if !ok {
			return
		}

		if err := h.postRepo.Delete(post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete post", "post", err))
			return
		}

		if post.FeaturedImage != nil {
			h.deleteStoredImage(r, *post.FeaturedImage)
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "post deleted successfully",
		})
	}
}

func (h postHandler) resolvePost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postIDStr := chi.URLParam(r, "postID")
	if postIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing postID"))
		return nil, false
	}

	postID, err := uuid.Parse(postIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid postID"))
		return nil, false
	}

	post, err := h.postRepo.FindByID(postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
		return nil, false
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFound("post"))
		return nil, false
	}
	return post, true
}

func (h postHandler) validate(req *PostRequest) error {
	if req.Title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if req.Content == "" {
		return errs.NewMissingRequiredFieldError("content")
	}
	if req.Slug == "" {
		req.Slug = models.Slugify(req.Title)
	}
	if req.Slug == "" {
		return errs.NewMissingRequiredFieldError("slug")
	}
	if !models.ValidStatus(req.Status) {
		return errs.NewInvalidFieldError("status", "must be one of draft, published, archived")
	}
	return nil
}

func (h postHandler) syncTags(post *models.Post, tagIDs []uuid.UUID) error {
	tags, err := h.tagRepo.FindByIDs(tagIDs)
	if err != nil {
		return wrapDatabaseError("find tags", "tags", err)
	}
	if err := h.postRepo.ReplaceTags(post, tags); err != nil {
		return wrapDatabaseError("sync tags", "post", err)
	}
	return nil
}

func (h postHandler) deleteStoredImage(r *http.Request, path string) {
	if err := h.store.Delete(r.Context(), path); err != nil && err != storage.ErrNotFound {
		h.logger.Error().Err(err).Str("path", path).Msg("failed to delete stored image")
	}
}

func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			page = n
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return page, limit
}
