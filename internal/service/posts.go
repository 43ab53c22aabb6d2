package service

import (
	"context"
	"fmt"

	"miniblog/internal/model"

	"github.com/go-playground/validator/v10"
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service miniblog/internal/service PostStorage
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context) ([]model.Post, error)
	UpdatePost(ctx context.Context, postID int64, req UpdatePostRequest) (model.Post, error)
	DeletePost(ctx context.Context, postID int64) error
}

// TxManager opens a transaction boundary around fn; storage calls made with
// the ctx passed to fn join it. Satisfied by trm's manager.Manager.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type PostService struct {
	postStorage    PostStorage
	commentStorage CommentStorage
	tx             TxManager
}

func NewPostService(postStorage PostStorage, commentStorage CommentStorage, tx TxManager) *PostService {
	return &PostService{
		postStorage:    postStorage,
		commentStorage: commentStorage,
		tx:             tx,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.postStorage.CreatePost(ctx, model.Post{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
	})
}

func (s *PostService) GetPosts(ctx context.Context) ([]model.Post, error) {
	return s.postStorage.GetPosts(ctx)
}

func (s *PostService) UpdatePost(ctx context.Context, postID int64, req UpdatePostRequest) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	if req.IsEmpty() {
		return model.Post{}, fmt.Errorf("%w: no fields to update", ErrInvalidRequest)
	}
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.postStorage.UpdatePost(ctx, postID, req)
}

// GetPostWithComments loads the post and its comments in one transaction, so
// a concurrent delete cannot strip the comments out from under a detail read.
func (s *PostService) GetPostWithComments(ctx context.Context, postID int64) (model.Post, []model.Comment, error) {
	if postID <= 0 {
		return model.Post{}, nil, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}

	var (
		post     model.Post
		comments []model.Comment
	)
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		if post, err = s.postStorage.GetPostByID(ctx, postID); err != nil {
			return err
		}
		comments, err = s.commentStorage.GetCommentsByPost(ctx, postID)
		return err
	})
	if err != nil {
		return model.Post{}, nil, err
	}
	return post, comments, nil
}

// DeletePost removes the post and all its comments in one transaction, so a
// reader never observes the post gone while its comments remain.
func (s *PostService) DeletePost(ctx context.Context, postID int64) error {
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.commentStorage.DeleteCommentsByPost(ctx, postID); err != nil {
			return err
		}
		return s.postStorage.DeletePost(ctx, postID)
	})
}
