package content

import (
	"sort"

	"github.com/inkwellcms/inkwell-backend/models"
)

// DefaultRelatedLimit is how many related posts a detail view shows.
const DefaultRelatedLimit = 3

// RankRelated orders candidate posts by relevance to post and returns at most
// limit of them. Candidates are expected to already be published, exclude the
// post itself, and match on category or share a tag; this function only ranks.
// Order: shared-tag count descending, then PublishedAt descending, then ID for
// a stable tie-break.
func RankRelated(post *models.Post, candidates []*models.Post, limit int) []*models.Post {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	ranked := make([]*models.Post, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || c.ID == post.ID || !c.IsPublished() {
			continue
		}
		ranked = append(ranked, c)
	}

	shared := make(map[string]int, len(ranked))
	for _, c := range ranked {
		shared[c.ID.String()] = sharedTagCount(post, c)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := shared[ranked[i].ID.String()], shared[ranked[j].ID.String()]
		if si != sj {
			return si > sj
		}
		pi, pj := ranked[i].PublishedAt, ranked[j].PublishedAt
		switch {
		case pi != nil && pj != nil && !pi.Equal(*pj):
			return pi.After(*pj)
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func sharedTagCount(a, b *models.Post) int {
	count := 0
	for _, t := range b.Tags {
		if a.HasTag(t.ID) {
			count++
		}
	}
	return count
}
