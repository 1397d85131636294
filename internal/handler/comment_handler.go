package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balludanga/merikahani-backend/internal/model"
)

type CommentStore interface {
	Create(comment *model.Comment) error
	GetByID(id int64) (*model.Comment, error)
	GetByPost(postID int64) ([]model.Comment, error)
	Delete(id int64) error
}

type CommentHandler struct {
	comments CommentStore
	posts    PostStore
}

func NewCommentHandler(comments CommentStore, posts PostStore) *CommentHandler {
	return &CommentHandler{comments: comments, posts: posts}
}

func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post id"})
		return
	}

	post, err := h.posts.GetByID(postID)
	if err != nil {
		slog.Error("error fetching post", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comments, err := h.comments.GetByPost(postID)
	if err != nil {
		slog.Error("error fetching comments", "post_id", postID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		res = append(res, toCommentResponse(&comments[i]))
	}

	c.JSON(http.StatusOK, res)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	var req CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.posts.GetByID(req.PostID)
	if err != nil {
		slog.Error("error fetching post", "post_id", req.PostID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	now := time.Now().UTC()
	comment := &model.Comment{
		Content:   req.Content,
		PostID:    req.PostID,
		AuthorID:  user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.comments.Create(comment); err != nil {
		slog.Error("error creating comment", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate credentials"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id"})
		return
	}

	comment, err := h.comments.GetByID(id)
	if err != nil {
		slog.Error("error fetching comment", "comment_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if comment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if comment.AuthorID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this comment"})
		return
	}

	if err := h.comments.Delete(id); err != nil {
		slog.Error("error deleting comment", "comment_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func toCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}
