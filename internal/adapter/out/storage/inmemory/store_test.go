package inmemory

import (
	"context"
	"testing"
	"time"

	"miniblog/internal/model"
	"miniblog/internal/service"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestStore_CreateAndGetPost(t *testing.T) {
	t.Parallel()

	st := NewStore()

	tests := []struct {
		name   string
		input  model.Post
		wantID int64
	}{
		{
			name:   "first post",
			input:  model.Post{Title: "t1", Content: "c1", Author: "alice"},
			wantID: 1,
		},
		{
			name:   "second post",
			input:  model.Post{Title: "t2", Content: "c2", Author: "bob"},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := st.CreatePost(context.Background(), tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.wantID, out.ID)
			require.Equal(t, tt.input.Title, out.Title)
			require.Equal(t, tt.input.Content, out.Content)
			require.Equal(t, tt.input.Author, out.Author)
			require.WithinDuration(t, time.Now(), out.CreatedAt, time.Second)
			require.True(t, out.CreatedAt.Equal(out.UpdatedAt))

			got, err := st.GetPostByID(context.Background(), tt.wantID)
			require.NoError(t, err)
			require.Equal(t, out, got)
		})
	}
}

func TestStore_GetPostByID_NotFound(t *testing.T) {
	t.Parallel()

	st := NewStore()
	_, err := st.GetPostByID(context.Background(), 999999)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestStore_GetPosts_NewestFirst(t *testing.T) {
	t.Parallel()

	st := NewStore()
	for _, title := range []string{"a", "b", "c"} {
		_, err := st.CreatePost(context.Background(), model.Post{Title: title, Content: "x", Author: "alice"})
		require.NoError(t, err)
	}

	posts, err := st.GetPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "c", posts[0].Title)
	require.Equal(t, "b", posts[1].Title)
	require.Equal(t, "a", posts[2].Title)
}

func TestStore_UpdatePost(t *testing.T) {
	t.Parallel()

	st := NewStore()
	created, err := st.CreatePost(context.Background(), model.Post{Title: "old", Content: "body", Author: "alice"})
	require.NoError(t, err)

	got, err := st.UpdatePost(context.Background(), created.ID, service.UpdatePostRequest{Title: strptr("new")})
	require.NoError(t, err)
	require.Equal(t, "new", got.Title)
	require.Equal(t, created.Content, got.Content)
	require.Equal(t, created.Author, got.Author)
	require.True(t, got.CreatedAt.Equal(created.CreatedAt))
	require.True(t, got.UpdatedAt.After(created.UpdatedAt))

	reread, err := st.GetPostByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, got, reread)

	_, err = st.UpdatePost(context.Background(), 42, service.UpdatePostRequest{Title: strptr("x")})
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestStore_DeletePost_Cascades(t *testing.T) {
	t.Parallel()

	st := NewStore()
	post, err := st.CreatePost(context.Background(), model.Post{Title: "t", Content: "c", Author: "alice"})
	require.NoError(t, err)

	for _, text := range []string{"one", "two"} {
		_, err := st.CreateComment(context.Background(), model.Comment{PostID: post.ID, Content: text, Author: "bob"})
		require.NoError(t, err)
	}

	require.NoError(t, st.DeletePost(context.Background(), post.ID))

	_, err = st.GetPostByID(context.Background(), post.ID)
	require.ErrorIs(t, err, service.ErrNotFound)

	comments, err := st.GetCommentsByPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	require.ErrorIs(t, st.DeletePost(context.Background(), post.ID), service.ErrNotFound)
}

func TestStore_CreateComment(t *testing.T) {
	t.Parallel()

	st := NewStore()
	post, err := st.CreatePost(context.Background(), model.Post{Title: "t", Content: "c", Author: "alice"})
	require.NoError(t, err)

	_, err = st.CreateComment(context.Background(), model.Comment{PostID: 999999, Content: "x", Author: "bob"})
	require.ErrorIs(t, err, service.ErrNotFound)

	first, err := st.CreateComment(context.Background(), model.Comment{PostID: post.ID, Content: "first", Author: "bob"})
	require.NoError(t, err)
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, post.ID, first.PostID)

	second, err := st.CreateComment(context.Background(), model.Comment{PostID: post.ID, Content: "second", Author: "carol"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
	require.True(t, second.CreatedAt.After(first.CreatedAt))

	comments, err := st.GetCommentsByPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "first", comments[0].Content)
	require.Equal(t, "second", comments[1].Content)
}

func TestStore_IDsNeverReused(t *testing.T) {
	t.Parallel()

	st := NewStore()
	first, err := st.CreatePost(context.Background(), model.Post{Title: "a", Content: "c", Author: "alice"})
	require.NoError(t, err)
	require.NoError(t, st.DeletePost(context.Background(), first.ID))

	second, err := st.CreatePost(context.Background(), model.Post{Title: "b", Content: "c", Author: "alice"})
	require.NoError(t, err)
	require.Greater(t, second.ID, first.ID)
}

func TestStore_DoSharesLock(t *testing.T) {
	t.Parallel()

	st := NewStore()
	post, err := st.CreatePost(context.Background(), model.Post{Title: "t", Content: "c", Author: "alice"})
	require.NoError(t, err)
	_, err = st.CreateComment(context.Background(), model.Comment{PostID: post.ID, Content: "x", Author: "bob"})
	require.NoError(t, err)

	err = st.Do(context.Background(), func(ctx context.Context) error {
		if err := st.DeleteCommentsByPost(ctx, post.ID); err != nil {
			return err
		}
		return st.DeletePost(ctx, post.ID)
	})
	require.NoError(t, err)

	_, err = st.GetPostByID(context.Background(), post.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}
