package database

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellcms/inkwell-backend/models"
)

func TestPostRepoFindBySlug(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	tag := models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(&tag).Error)

	seedPost(t, db, &models.Post{
		Title:    "Hello World",
		Slug:     "hello-world",
		AuthorID: author.ID,
		Tags:     []models.Tag{tag},
	})

	post, err := repo.FindBySlug("hello-world")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Hello World", post.Title)
	assert.Equal(t, author.ID, post.Author.ID)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "go", post.Tags[0].Slug)

	missing, err := repo.FindBySlug("no-such-slug")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepoSlugTaken(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	existing := seedPost(t, db, &models.Post{Slug: "taken", AuthorID: author.ID})

	taken, err := repo.SlugTaken("taken", uuid.New())
	require.NoError(t, err)
	assert.True(t, taken)

	// The post itself is excluded so updates keeping the slug pass.
	taken, err = repo.SlugTaken("taken", existing.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.SlugTaken("free", uuid.New())
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestPostRepoIncrementViews(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	post := seedPost(t, db, &models.Post{AuthorID: author.ID, Status: models.PostStatusPublished})

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.IncrementViews(post.ID))
	}

	got, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(5), got.ViewsCount)
}

func TestPostRepoIncrementViewsConcurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	post := seedPost(t, db, &models.Post{AuthorID: author.ID, Status: models.PostStatusPublished})

	const viewers = 20
	var wg sync.WaitGroup
	wg.Add(viewers)
	for i := 0; i < viewers; i++ {
		go func() {
			defer wg.Done()
			_ = repo.IncrementViews(post.ID)
		}()
	}
	wg.Wait()

	got, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	// Read-modify-write would lose updates here; the single-statement bump
	// must not.
	assert.Equal(t, int64(viewers), got.ViewsCount)
}

func TestPostRepoFindFeaturedOrdersByViews(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	seedPost(t, db, &models.Post{Slug: "low", AuthorID: author.ID, Status: models.PostStatusPublished, ViewsCount: 3})
	seedPost(t, db, &models.Post{Slug: "high", AuthorID: author.ID, Status: models.PostStatusPublished, ViewsCount: 90})
	seedPost(t, db, &models.Post{Slug: "mid", AuthorID: author.ID, Status: models.PostStatusPublished, ViewsCount: 40})
	seedPost(t, db, &models.Post{Slug: "hidden", AuthorID: author.ID, Status: models.PostStatusDraft, ViewsCount: 999})

	featured, err := repo.FindFeatured(3)
	require.NoError(t, err)
	require.Len(t, featured, 3)
	assert.Equal(t, "high", featured[0].Slug)
	assert.Equal(t, "mid", featured[1].Slug)
	assert.Equal(t, "low", featured[2].Slug)
}

func TestPostRepoFindLatestOrdersByPublishedAt(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	base := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, slug := range []string{"oldest", "middle", "newest"} {
		at := base.Add(time.Duration(i) * time.Hour)
		seedPost(t, db, &models.Post{
			Slug: slug, AuthorID: author.ID,
			Status: models.PostStatusPublished, PublishedAt: &at,
		})
	}
	seedPost(t, db, &models.Post{Slug: "draft", AuthorID: author.ID})

	latest, err := repo.FindLatest(2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "newest", latest[0].Slug)
	assert.Equal(t, "middle", latest[1].Slug)
}

func TestPostRepoFindPublishedByTag(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	tag := models.Tag{Name: "Go", Slug: "go"}
	other := models.Tag{Name: "Rust", Slug: "rust"}
	require.NoError(t, db.Create(&tag).Error)
	require.NoError(t, db.Create(&other).Error)

	seedPost(t, db, &models.Post{Slug: "tagged", AuthorID: author.ID, Status: models.PostStatusPublished, Tags: []models.Tag{tag}})
	seedPost(t, db, &models.Post{Slug: "tagged-draft", AuthorID: author.ID, Status: models.PostStatusDraft, Tags: []models.Tag{tag}})
	seedPost(t, db, &models.Post{Slug: "other-tag", AuthorID: author.ID, Status: models.PostStatusPublished, Tags: []models.Tag{other}})

	posts, total, err := repo.FindPublishedByTag(tag.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "tagged", posts[0].Slug)
}

func TestPostRepoFindRelatedCandidates(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	category := models.Category{Name: "Engineering", Slug: "engineering"}
	require.NoError(t, db.Create(&category).Error)
	tag := models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(&tag).Error)

	subject := seedPost(t, db, &models.Post{
		Slug: "subject", AuthorID: author.ID,
		Status: models.PostStatusPublished, CategoryID: &category.ID,
		Tags: []models.Tag{tag},
	})
	sameCategory := seedPost(t, db, &models.Post{
		Slug: "same-category", AuthorID: author.ID,
		Status: models.PostStatusPublished, CategoryID: &category.ID,
	})
	sameTag := seedPost(t, db, &models.Post{
		Slug: "same-tag", AuthorID: author.ID,
		Status: models.PostStatusPublished, Tags: []models.Tag{tag},
	})
	seedPost(t, db, &models.Post{
		Slug: "same-category-draft", AuthorID: author.ID,
		Status: models.PostStatusDraft, CategoryID: &category.ID,
	})
	seedPost(t, db, &models.Post{
		Slug: "unrelated", AuthorID: author.ID,
		Status: models.PostStatusPublished,
	})

	candidates, err := repo.FindRelatedCandidates(subject)
	require.NoError(t, err)

	slugs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		assert.NotEqual(t, subject.ID, c.ID)
		slugs = append(slugs, c.Slug)
	}
	assert.ElementsMatch(t, []string{sameCategory.Slug, sameTag.Slug}, slugs)
}

func TestPostRepoFindRelatedCandidatesNoCategoryNoTags(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	bare := seedPost(t, db, &models.Post{Slug: "bare", AuthorID: author.ID, Status: models.PostStatusPublished})
	seedPost(t, db, &models.Post{Slug: "noise", AuthorID: author.ID, Status: models.PostStatusPublished})

	candidates, err := repo.FindRelatedCandidates(bare)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestPostRepoDeleteClearsTagAssociations(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	tag := models.Tag{Name: "Go", Slug: "go"}
	require.NoError(t, db.Create(&tag).Error)
	post := seedPost(t, db, &models.Post{AuthorID: author.ID, Tags: []models.Tag{tag}})

	require.NoError(t, repo.Delete(post.ID))

	got, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	var joinRows int64
	require.NoError(t, db.Table("post_tags").Where("post_id = ?", post.ID).Count(&joinRows).Error)
	assert.Zero(t, joinRows)

	// The tag itself survives the post.
	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)
}

func TestPostRepoReplaceTags(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	first := models.Tag{Name: "First", Slug: "first"}
	second := models.Tag{Name: "Second", Slug: "second"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	post := seedPost(t, db, &models.Post{AuthorID: author.ID, Tags: []models.Tag{first}})

	require.NoError(t, repo.ReplaceTags(post, []models.Tag{second}))

	got, err := repo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Tags, 1)
	assert.Equal(t, "second", got.Tags[0].Slug)
}

func TestPostRepoCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostRepo(db)
	author := seedAuthor(t, db)

	seedPost(t, db, &models.Post{AuthorID: author.ID, Status: models.PostStatusPublished})
	seedPost(t, db, &models.Post{AuthorID: author.ID, Status: models.PostStatusDraft})
	seedPost(t, db, &models.Post{AuthorID: author.ID, Status: models.PostStatusArchived})

	all, err := repo.Count(false)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all)

	published, err := repo.Count(true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), published)
}
