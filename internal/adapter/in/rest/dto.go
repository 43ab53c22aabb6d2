package rest

import (
	"time"

	"miniblog/internal/model"
	"miniblog/internal/service"
)

type createPostRequest struct {
	Title   string `json:"title" binding:"required,max=200"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required,max=100"`
}

type updatePostRequest struct {
	Title   *string `json:"title" binding:"omitnil,min=1,max=200"`
	Content *string `json:"content" binding:"omitnil,min=1"`
	Author  *string `json:"author" binding:"omitnil,min=1,max=100"`
}

func (r updatePostRequest) toService() service.UpdatePostRequest {
	return service.UpdatePostRequest{
		Title:   r.Title,
		Content: r.Content,
		Author:  r.Author,
	}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required,max=100"`
}

type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// postDetailResponse always carries the comments relation, as an empty array
// when the post has none.
type postDetailResponse struct {
	postResponse
	Comments []commentResponse `json:"comments"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	PostID    int64     `json:"postId"`
}

func toPostNode(p model.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostDetailNode(p model.Post, comments []model.Comment) postDetailResponse {
	return postDetailResponse{
		postResponse: toPostNode(p),
		Comments:     toCommentNodes(comments),
	}
}

func toPostNodes(posts []model.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostNode(p))
	}
	return out
}

func toCommentNode(c model.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
		PostID:    c.PostID,
	}
}

func toCommentNodes(comments []model.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentNode(c))
	}
	return out
}
