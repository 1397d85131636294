package handler

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balludanga/merikahani-backend/internal/bot"
	"github.com/balludanga/merikahani-backend/internal/model"
)

type PostStore interface {
	Create(post *model.Post) error
	GetByID(id int64) (*model.Post, error)
	GetBySlug(slug string) (*model.Post, error)
	GetFeed(published *bool, limit, offset int) ([]model.Post, error)
	GetByAuthor(authorID int64, published *bool) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(id int64) error
	SlugExists(slug string) (bool, error)
}

type PostHandler struct {
	posts PostStore
}

func NewPostHandler(posts PostStore) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) GetPosts(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	// Only published posts unless the filter is given explicitly.
	published := boolPtr(true)
	if raw := c.Query("published"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid published filter"})
			return
		}
		published = &parsed
	}

	posts, err := h.posts.GetFeed(published, limit, offset)
	if err != nil {
		slog.Error("error fetching posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toPostResponses(posts))
}

// GetPost resolves a numeric id or, failing that, a slug.
func (h *PostHandler) GetPost(c *gin.Context) {
	key := c.Param("id")

	var post *model.Post
	var err error

	if id, parseErr := strconv.ParseInt(key, 10, 64); parseErr == nil {
		post, err = h.posts.GetByID(id)
	} else {
		post, err = h.posts.GetBySlug(key)
	}

	if err != nil {
		slog.Error("error fetching post", "key", key, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) GetUserPosts(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var published *bool
	if raw := c.Query("published"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid published filter"})
			return
		}
		published = &parsed
	}

	posts, err := h.posts.GetByAuthor(userID, published)
	if err != nil {
		slog.Error("error fetching user posts", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toPostResponses(posts))
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	var req PostCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug, err := h.uniqueSlug(req.Title)
	if err != nil {
		slog.Error("error resolving slug", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now().UTC()
	post := &model.Post{
		Title:      req.Title,
		Subtitle:   sql.NullString{String: req.Subtitle, Valid: req.Subtitle != ""},
		Content:    req.Content,
		Slug:       slug,
		CoverImage: sql.NullString{String: req.CoverImage, Valid: req.CoverImage != ""},
		AuthorID:   user.ID,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.posts.Create(post); err != nil {
		slog.Error("error creating post", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toPostResponse(post))
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	var req PostUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		slog.Error("error fetching post", "post_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this post"})
		return
	}

	if req.Title != nil && *req.Title != post.Title {
		post.Title = *req.Title
		slug, err := h.uniqueSlug(post.Title)
		if err != nil {
			slog.Error("error resolving slug", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		post.Slug = slug
	}
	if req.Subtitle != nil {
		post.Subtitle = sql.NullString{String: *req.Subtitle, Valid: *req.Subtitle != ""}
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverImage != nil {
		post.CoverImage = sql.NullString{String: *req.CoverImage, Valid: *req.CoverImage != ""}
	}
	if req.Published != nil {
		post.Published = *req.Published
	}
	post.UpdatedAt = time.Now().UTC()

	if err := h.posts.Update(post); err != nil {
		slog.Error("error updating post", "post_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.GetByID(id)
	if err != nil {
		slog.Error("error fetching post", "post_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.AuthorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this post"})
		return
	}

	if err := h.posts.Delete(id); err != nil {
		slog.Error("error deleting post", "post_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) GetHealth(c *gin.Context) {
	_, err := h.posts.GetFeed(boolPtr(true), 1, 0)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// uniqueSlug appends a timestamp when the derived slug is taken, matching
// the manual-author path. The bot pipeline uses counter suffixes instead.
func (h *PostHandler) uniqueSlug(title string) (string, error) {
	slug := bot.Slugify(title)
	if slug == "" {
		slug = "post"
	}

	exists, err := h.posts.SlugExists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().Unix())
	}

	return slug, nil
}

func toPostResponse(post *model.Post) PostResponse {
	return PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Subtitle:   post.Subtitle.String,
		Content:    post.Content,
		Slug:       post.Slug,
		CoverImage: post.CoverImage.String,
		AuthorID:   post.AuthorID,
		Published:  post.Published,
		CreatedAt:  post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  post.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostResponses(posts []model.Post) []PostResponse {
	res := make([]PostResponse, 0, len(posts))
	for i := range posts {
		res = append(res, toPostResponse(&posts[i]))
	}
	return res
}

func boolPtr(b bool) *bool {
	return &b
}
