package content

import (
	"time"

	"github.com/inkwellcms/inkwell-backend/errs"
	"github.com/inkwellcms/inkwell-backend/models"
)

// IsVisible decides whether a viewer may read a post. Published posts are
// visible to everyone; admins may read any status by direct reference.
func IsVisible(post *models.Post, viewer Viewer) bool {
	if post == nil {
		return false
	}
	if post.IsPublished() {
		return true
	}
	return viewer.IsAdmin
}

// GateVisibility returns a not-found error when the post is not visible to the
// viewer. Deliberately not a 403: the existence of unpublished content is never
// revealed to non-privileged viewers.
func GateVisibility(post *models.Post, viewer Viewer) error {
	if !IsVisible(post, viewer) {
		return errs.NewNotFound("post")
	}
	return nil
}

// ApplyStatus transitions a post to newStatus. Any status is reachable from
// any other; the only side effect is stamping PublishedAt on the first
// transition into published. An already-set PublishedAt is never touched.
func ApplyStatus(post *models.Post, newStatus string, now time.Time) error {
	if !models.ValidStatus(newStatus) {
		return errs.NewInvalidFieldError("status", "must be one of draft, published, archived")
	}

	if newStatus == models.PostStatusPublished && post.Status != models.PostStatusPublished && post.PublishedAt == nil {
		stamp := now
		post.PublishedAt = &stamp
	}
	post.Status = newStatus

	return nil
}
