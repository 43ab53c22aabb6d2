package client

import (
	"context"
	"strconv"
	"sync"
)

const keyPosts = "posts"

func keyPost(id int64) string {
	return "post:" + strconv.FormatInt(id, 10)
}

// Store caches server state behind a single normalized map keyed by post id;
// the list and the current post are projections of the same entries, so a
// mutation can never leave the two views disagreeing.
//
// Every asynchronous operation walks pending -> fulfilled/rejected. A
// per-resource generation counter is bumped when an operation starts and
// checked before its result is applied: when two requests for the same
// resource overlap, only the newest one may touch the cache.
type Store struct {
	api *Client

	mu      sync.RWMutex
	byID    map[int64]Post
	order   []int64
	current int64
	loading bool
	err     string
	gens    map[string]uint64
}

func NewStore(api *Client) *Store {
	return &Store{
		api:  api,
		byID: make(map[int64]Post),
		gens: make(map[string]uint64),
	}
}

// begin marks the pending transition and claims a generation for key.
func (s *Store) begin(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = true
	s.err = ""
	s.gens[key]++
	return s.gens[key]
}

// stale reports whether a newer operation claimed key after gen. Callers must
// hold the lock.
func (s *Store) stale(key string, gen uint64) bool {
	return s.gens[key] != gen
}

// upsert merges an incoming post into the map. A nil Comments slice means
// the relation was not loaded; the cached comments are kept in that case so
// a list refresh cannot wipe what a detail fetch brought in.
func (s *Store) upsert(p Post) {
	if p.Comments == nil {
		if prev, ok := s.byID[p.ID]; ok {
			p.Comments = prev.Comments
		}
	}
	s.byID[p.ID] = p
}

func (s *Store) FetchPosts(ctx context.Context) ([]Post, error) {
	gen := s.begin(keyPosts)

	posts, err := s.api.GetPosts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(keyPosts, gen) {
		return posts, err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return nil, err
	}

	s.order = make([]int64, 0, len(posts))
	for _, p := range posts {
		s.order = append(s.order, p.ID)
		s.upsert(p)
	}
	return posts, nil
}

func (s *Store) FetchPost(ctx context.Context, id int64) (Post, error) {
	key := keyPost(id)
	gen := s.begin(key)

	post, err := s.api.GetPost(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, gen) {
		return post, err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return Post{}, err
	}

	// The detail response is authoritative, comments included.
	if post.Comments == nil {
		post.Comments = []Comment{}
	}
	s.byID[post.ID] = post
	s.current = post.ID
	return post, nil
}

func (s *Store) CreatePost(ctx context.Context, data CreatePostData) (Post, error) {
	key := keyPosts
	gen := s.begin(key)

	post, err := s.api.CreatePost(ctx, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, gen) {
		return post, err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return Post{}, err
	}

	s.upsert(post)
	s.order = append([]int64{post.ID}, s.order...)
	return post, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, data UpdatePostData) (Post, error) {
	key := keyPost(id)
	gen := s.begin(key)

	post, err := s.api.UpdatePost(ctx, id, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, gen) {
		return post, err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return Post{}, err
	}

	s.upsert(post)
	return post, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	key := keyPost(id)
	gen := s.begin(key)

	err := s.api.DeletePost(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, gen) {
		return err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return err
	}

	delete(s.byID, id)
	for i, ordered := range s.order {
		if ordered == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.current == id {
		s.current = 0
	}
	return nil
}

// AddComment appends the created comment to the cached post. Both the list
// and the current-post views observe it, since they project the same entry.
func (s *Store) AddComment(ctx context.Context, postID int64, data CreateCommentData) (Comment, error) {
	key := keyPost(postID)
	gen := s.begin(key)

	comment, err := s.api.AddComment(ctx, postID, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale(key, gen) {
		return comment, err
	}
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return Comment{}, err
	}

	if p, ok := s.byID[postID]; ok {
		p.Comments = append(p.Comments, comment)
		s.byID[postID] = p
	}
	return comment, nil
}

// Posts projects the list view from the normalized map.
func (s *Store) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

// CurrentPost projects the detail view from the normalized map.
func (s *Store) CurrentPost() (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == 0 {
		return Post{}, false
	}
	p, ok := s.byID[s.current]
	return p, ok
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Store) ClearCurrentPost() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = 0
}
