package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwellcms/inkwell-backend/database"
	"github.com/inkwellcms/inkwell-backend/models"
	"github.com/inkwellcms/inkwell-backend/storage"
)

const testJWTSecret = "test-secret"

// fakeStorage is an in-memory storage.Storage that records deletes, so tests
// can assert how handlers interact with stored files.
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deletes map[string]int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		objects: make(map[string][]byte),
		deletes: make(map[string]int),
	}
}

func (f *fakeStorage) Save(ctx context.Context, path string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return f.URL(path), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes[path]++
	if _, ok := f.objects[path]; !ok {
		return storage.ErrNotFound
	}
	delete(f.objects, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "http://cdn.test/" + path
}

func (f *fakeStorage) deleteCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[path]
}

type testEnv struct {
	router *chi.Mux
	db     *gorm.DB
	store  *fakeStorage
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	))

	store := newFakeStorage()
	router := newRouter(database.New(db), store, withConfig(map[string]string{
		"JWT_SECRET": testJWTSecret,
	}))

	return &testEnv{router: router, db: db, store: store}
}

func (e *testEnv) createUser(t *testing.T, email, password string, isAdmin bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"adm": user.IsAdmin,
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) createPost(t *testing.T, post *models.Post) *models.Post {
	t.Helper()
	if post.Title == "" {
		post.Title = "Post " + uuid.NewString()
	}
	if post.Slug == "" {
		post.Slug = models.Slugify(post.Title)
	}
	if post.Content == "" {
		post.Content = "<p>body</p>"
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}
	require.NoError(t, e.db.Create(post).Error)
	return post
}

// request performs an HTTP request against the router. A non-empty token is
// sent as a bearer token; a non-nil body is JSON-encoded.
func (e *testEnv) request(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func strPtr(s string) *string { return &s }
