package service

import (
	"context"
	"fmt"

	"miniblog/internal/model"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service miniblog/internal/service CommentStorage
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	DeleteCommentsByPost(ctx context.Context, postID int64) error
}

// PostProvider is the slice of PostStorage the comment service needs for the
// parent-post existence guard.
type PostProvider interface {
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostProvider
	tx             TxManager
}

func NewCommentService(commentStorage CommentStorage, postStorage PostProvider, tx TxManager) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
		tx:             tx,
	}
}

// CreateComment verifies the parent post exists before inserting, so a
// missing post surfaces as ErrNotFound rather than a constraint failure.
// Both steps share a transaction: a concurrent post delete either happens
// before the guard (caller gets ErrNotFound) or after the insert (the
// cascade removes the comment too).
func (s *CommentService) CreateComment(ctx context.Context, postID int64, req CreateCommentRequest) (model.Comment, error) {
	if postID <= 0 {
		return model.Comment{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	if err := validator.New().Struct(req); err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	var out model.Comment
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
			return err
		}
		var err error
		out, err = s.commentStorage.CreateComment(ctx, model.Comment{
			PostID:  postID,
			Content: req.Content,
			Author:  req.Author,
		})
		return err
	})
	if err != nil {
		return model.Comment{}, err
	}
	return out, nil
}
