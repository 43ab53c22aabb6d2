package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"miniblog/internal/model"
	"miniblog/internal/service"
)

type txKey struct{}

func inTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(struct{})
	return ok
}

// Store keeps posts and comments behind a single lock, so a cascade delete
// can never interleave with a comment insert for the same post, and a reader
// sees a post either fully present or fully absent.
type Store struct {
	mu sync.RWMutex

	posts    map[int64]model.Post
	order    []int64
	comments map[int64][]model.Comment

	nextPostID    int64
	nextCommentID int64
}

func NewStore() *Store {
	return &Store{
		posts:    make(map[int64]model.Post),
		comments: make(map[int64][]model.Comment),
	}
}

// Do runs fn while holding the store's write lock. Storage calls made with
// the ctx passed to fn reuse that lock instead of taking their own, which
// gives fn the all-or-nothing visibility a database transaction would.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func (s *Store) CreatePost(ctx context.Context, in model.Post) (model.Post, error) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	s.nextPostID++
	in.ID = s.nextPostID
	now := time.Now()
	in.CreatedAt = now
	in.UpdatedAt = now

	s.posts[in.ID] = in
	s.order = append(s.order, in.ID)
	return in, nil
}

func (s *Store) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	p, ok := s.posts[postID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}
	return p, nil
}

// GetPosts returns posts newest first.
func (s *Store) GetPosts(ctx context.Context) ([]model.Post, error) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	out := make([]model.Post, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		if p, ok := s.posts[s.order[i]]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) UpdatePost(ctx context.Context, postID int64, req service.UpdatePostRequest) (model.Post, error) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	p, ok := s.posts[postID]
	if !ok {
		return model.Post{}, service.ErrNotFound
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.Author != nil {
		p.Author = *req.Author
	}

	// updated_at must grow strictly even on coarse clocks.
	now := time.Now()
	if !now.After(p.UpdatedAt) {
		now = p.UpdatedAt.Add(time.Nanosecond)
	}
	p.UpdatedAt = now

	s.posts[postID] = p
	return p, nil
}

// DeletePost removes the post and all its comments in one step.
func (s *Store) DeletePost(ctx context.Context, postID int64) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	if _, ok := s.posts[postID]; !ok {
		return service.ErrNotFound
	}
	delete(s.posts, postID)
	delete(s.comments, postID)
	if i := slices.Index(s.order, postID); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

func (s *Store) CreateComment(ctx context.Context, in model.Comment) (model.Comment, error) {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	if _, ok := s.posts[in.PostID]; !ok {
		return model.Comment{}, service.ErrNotFound
	}

	s.nextCommentID++
	in.ID = s.nextCommentID
	in.CreatedAt = time.Now()
	if prev := s.comments[in.PostID]; len(prev) > 0 {
		if last := prev[len(prev)-1].CreatedAt; !in.CreatedAt.After(last) {
			in.CreatedAt = last.Add(time.Nanosecond)
		}
	}

	s.comments[in.PostID] = append(s.comments[in.PostID], in)
	return in, nil
}

// GetCommentsByPost returns comments oldest first. An unknown post yields an
// empty slice, matching a WHERE clause that matches nothing.
func (s *Store) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if !inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	return slices.Clone(s.comments[postID]), nil
}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID int64) error {
	if !inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	delete(s.comments, postID)
	return nil
}
