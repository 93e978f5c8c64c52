package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkwellcms/inkwell-backend/content"
	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/errs"
	"github.com/inkwellcms/inkwell-backend/models"
)

type blogHandler struct {
	responder    Responder
	logger       zerolog.Logger
	postRepo     *database.PostRepo
	categoryRepo *database.CategoryRepo
	tagRepo      *database.TagRepo
}

func newBlogHandler(postRepo *database.PostRepo, categoryRepo *database.CategoryRepo, tagRepo *database.TagRepo) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// BlogIndex is the public blog landing payload.
type BlogIndex struct {
	FeaturedPosts []*models.Post     `json:"featuredPosts"`
	LatestPosts   []*models.Post     `json:"latestPosts"`
	Categories    []*models.Category `json:"categories"`
	PopularTags   []*models.Tag      `json:"popularTags"`
}

// PostView is a post annotated for display: derived metadata recomputed on
// every read, plus related published posts.
type PostView struct {
	Post     models.Post      `json:"post"`
	Metadata content.Metadata `json:"metadata"`
	Related  []*models.Post   `json:"relatedPosts"`
}

func (h blogHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// index serves the blog landing page: most-viewed published posts, the latest
// published posts, and the categories/tags with the most published content.
// The four independent queries run concurrently.
func (h blogHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload BlogIndex

		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			payload.FeaturedPosts, err = h.postRepo.FindFeatured(3)
			return err
		})
		g.Go(func() (err error) {
			payload.LatestPosts, err = h.postRepo.FindLatest(9)
			return err
		})
		g.Go(func() (err error) {
			payload.Categories, err = h.categoryRepo.FindPopular(6)
			return err
		})
		g.Go(func() (err error) {
			payload.PopularTags, err = h.tagRepo.FindPopular(10)
			return err
		})

		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load blog index", "posts", err))
			return
		}

		h.responder.WriteJSON(w, payload)
	}
}

// show serves a single post by slug. Posts that are not visible to the viewer
// respond 404, never 403: the existence of unpublished content stays hidden.
// Every qualifying read increments the view counter.
func (h blogHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing slug"))
			return
		}

		post, err := h.postRepo.FindBySlug(slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find post", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFound("post"))
			return
		}

		viewer := ctxGetViewer(r.Context())
		if err := content.GateVisibility(post, viewer); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.IncrementViews(post.ID); err != nil {
			// A failed counter bump should not take down the page.
			h.logger.Error().Err(err).Str("slug", slug).Msg("failed to increment view count")
		} else {
			post.ViewsCount++
		}

		candidates, err := h.postRepo.FindRelatedCandidates(post)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find related posts", "posts", err))
			return
		}

		h.responder.WriteJSON(w, PostView{
			Post:     *post,
			Metadata: content.ComputeMetadata(post),
			Related:  content.RankRelated(post, candidates, content.DefaultRelatedLimit),
		})
	}
}
