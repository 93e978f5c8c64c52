package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/models"
)

type dashboardHandler struct {
	responder    Responder
	logger       zerolog.Logger
	postRepo     *database.PostRepo
	categoryRepo *database.CategoryRepo
	tagRepo      *database.TagRepo
}

func newDashboardHandler(postRepo *database.PostRepo, categoryRepo *database.CategoryRepo, tagRepo *database.TagRepo) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

// Dashboard summarizes content totals plus either the whole site's recent
// posts (admins) or the viewer's own (everyone else).
type Dashboard struct {
	TotalPosts      int64          `json:"totalPosts"`
	PublishedPosts  int64          `json:"publishedPosts"`
	TotalCategories int64          `json:"totalCategories"`
	TotalTags       int64          `json:"totalTags"`
	RecentPosts     []*models.Post `json:"recentPosts,omitempty"`
	UserPosts       []*models.Post `json:"userPosts,omitempty"`
}

func (h dashboardHandler) show() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer := ctxGetViewer(r.Context())

		var payload Dashboard

		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			payload.TotalPosts, err = h.postRepo.Count(false)
			return err
		})
		g.Go(func() (err error) {
			payload.PublishedPosts, err = h.postRepo.Count(true)
			return err
		})
		g.Go(func() (err error) {
			payload.TotalCategories, err = h.categoryRepo.Count()
			return err
		})
		g.Go(func() (err error) {
			payload.TotalTags, err = h.tagRepo.Count()
			return err
		})
		g.Go(func() (err error) {
			if viewer.IsAdmin {
				payload.RecentPosts, err = h.postRepo.FindRecent(5)
			} else {
				payload.UserPosts, err = h.postRepo.FindByAuthor(viewer.ID, 5)
			}
			return err
		})

		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load dashboard", "posts", err))
			return
		}

		h.responder.WriteJSON(w, payload)
	}
}
