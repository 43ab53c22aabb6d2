package rest

import (
	"context"
	"net/http"
	"strconv"

	"miniblog/internal/model"
	"miniblog/internal/service"

	"github.com/gin-gonic/gin"
)

type PostService interface {
	CreatePost(ctx context.Context, req service.CreatePostRequest) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	GetPostWithComments(ctx context.Context, postID int64) (model.Post, []model.Comment, error)
	UpdatePost(ctx context.Context, postID int64, req service.UpdatePostRequest) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

type CommentService interface {
	CreateComment(ctx context.Context, postID int64, req service.CreateCommentRequest) (model.Comment, error)
}

type Handler struct {
	posts    PostService
	comments CommentService
}

func NewHandler(posts PostService, comments CommentService) *Handler {
	return &Handler{
		posts:    posts,
		comments: comments,
	}
}

// parseID rejects non-integer path segments up front: "abc" is a client
// error, not an unknown post.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), service.CreatePostRequest{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Post created successfully", toPostNode(post))
}

func (h *Handler) GetPosts(c *gin.Context) {
	posts, err := h.posts.GetPosts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Posts retrieved successfully", toPostNodes(posts))
}

func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	post, comments, err := h.posts.GetPostWithComments(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Post retrieved successfully", toPostDetailNode(post, comments))
}

func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), id, req.toService())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Post updated successfully", toPostNode(post))
}

func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.posts.DeletePost(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, "Post deleted successfully", nil)
}

func (h *Handler) CreateComment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.CreateComment(c.Request.Context(), id, service.CreateCommentRequest{
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Comment added successfully", toCommentNode(comment))
}
