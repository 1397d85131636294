package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"github.com/balludanga/merikahani-backend/db"
	"github.com/balludanga/merikahani-backend/internal/model"
)

type fakeSEOPosts struct {
	posts []model.PostWithAuthor
	err   error
	calls int
}

func (f *fakeSEOPosts) GetPublishedWithAuthors(limit int) ([]model.PostWithAuthor, error) {
	f.calls++
	return f.posts, f.err
}

type fakeSEOUsers struct {
	users []model.User
	err   error
}

func (f *fakeSEOUsers) GetAuthorsWithPublishedPosts() ([]model.User, error) {
	return f.users, f.err
}

type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Get(key string) (string, bool) {
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) Set(key, value string, ttl time.Duration) error {
	f.entries[key] = value
	f.sets++
	return nil
}

func seoPost(title, slug, username string) model.PostWithAuthor {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return model.PostWithAuthor{
		Post: model.Post{
			Title:     title,
			Content:   "content of " + title,
			Slug:      slug,
			Published: true,
			CreatedAt: created,
			UpdatedAt: created,
		},
		AuthorUsername: username,
		AuthorEmail:    username + "@example.com",
	}
}

func newSEORouter(posts SEOPostStore, users SEOUserStore, cache SEOCache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSEOHandler(posts, users, cache, "https://example.com")
	r.GET("/api/sitemap.xml", h.Sitemap)
	r.GET("/api/rss.xml", h.RSS)
	return r
}

func TestSitemap(t *testing.T) {
	posts := &fakeSEOPosts{posts: []model.PostWithAuthor{
		seoPost("Story One", "story-one", "writer"),
	}}
	users := &fakeSEOUsers{users: []model.User{{Username: "writer"}}}

	router := newSEORouter(posts, users, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sitemap.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "<loc>https://example.com/</loc>"))
	assert.Equal(t, true, strings.Contains(body, "<loc>https://example.com/post/story-one</loc>"))
	assert.Equal(t, true, strings.Contains(body, "<loc>https://example.com/profile/writer</loc>"))
}

func TestSitemapServedFromCache(t *testing.T) {
	posts := &fakeSEOPosts{}
	cache := newFakeCache()
	cache.entries[db.SitemapCacheKey] = "<urlset>cached</urlset>"

	router := newSEORouter(posts, &fakeSEOUsers{}, cache)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sitemap.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<urlset>cached</urlset>", w.Body.String())
	assert.Equal(t, 0, posts.calls)
}

func TestSitemapPopulatesCache(t *testing.T) {
	posts := &fakeSEOPosts{posts: []model.PostWithAuthor{
		seoPost("Story One", "story-one", "writer"),
	}}
	cache := newFakeCache()

	router := newSEORouter(posts, &fakeSEOUsers{}, cache)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sitemap.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, cache.sets)

	cached, ok := cache.Get(db.SitemapCacheKey)
	assert.Equal(t, true, ok)
	assert.Equal(t, w.Body.String(), cached)
}

func TestSitemapDatabaseError(t *testing.T) {
	posts := &fakeSEOPosts{err: sql.ErrConnDone}

	router := newSEORouter(posts, &fakeSEOUsers{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/sitemap.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRSS(t *testing.T) {
	post := seoPost("Chai & Politics", "chai-politics", "writer")
	post.Subtitle = sql.NullString{String: "A <strong> subtitle", Valid: true}
	posts := &fakeSEOPosts{posts: []model.PostWithAuthor{post}}

	router := newSEORouter(posts, &fakeSEOUsers{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/rss.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, true, strings.Contains(body, "<title>Chai &amp; Politics</title>"))
	assert.Equal(t, true, strings.Contains(body, "<description>A &lt;strong&gt; subtitle</description>"))
	assert.Equal(t, true, strings.Contains(body, "<link>https://example.com/post/chai-politics</link>"))
	assert.Equal(t, true, strings.Contains(body, "<pubDate>Sun, 01 Jun 2025 12:00:00 +0000</pubDate>"))
}

func TestRSSDescriptionFallsBackToContent(t *testing.T) {
	post := seoPost("No Subtitle", "no-subtitle", "writer")
	post.Content = strings.Repeat("x", 300)
	posts := &fakeSEOPosts{posts: []model.PostWithAuthor{post}}

	router := newSEORouter(posts, &fakeSEOUsers{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/rss.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, strings.Contains(w.Body.String(), "<description>"+strings.Repeat("x", 200)+"</description>"))
}

func TestRSSServedFromCache(t *testing.T) {
	posts := &fakeSEOPosts{}
	cache := newFakeCache()
	cache.entries[db.RSSCacheKey] = "<rss>cached</rss>"

	router := newSEORouter(posts, &fakeSEOUsers{}, cache)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/rss.xml", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<rss>cached</rss>", w.Body.String())
	assert.Equal(t, 0, posts.calls)
}
