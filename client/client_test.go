package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"miniblog/internal/adapter/in/rest"
	"miniblog/internal/adapter/out/storage/inmemory"
	"miniblog/internal/service"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := inmemory.NewStore()
	posts := service.NewPostService(st, st, st)
	comments := service.NewCommentService(st, st, st)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(rest.NewRouter(log, posts, comments))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_RoundTrip(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	created, err := c.CreatePost(ctx, CreatePostData{Title: "Hello", Content: "World", Author: "Alice"})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)
	require.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	fetched, err := c.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Hello", fetched.Title)

	title := "Hello again"
	updated, err := c.UpdatePost(ctx, created.ID, UpdatePostData{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Hello again", updated.Title)
	require.Equal(t, "World", updated.Content)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	comment, err := c.AddComment(ctx, created.ID, CreateCommentData{Content: "Nice!", Author: "Bob"})
	require.NoError(t, err)
	require.Equal(t, created.ID, comment.PostID)

	detail, err := c.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	require.Equal(t, "Nice!", detail.Comments[0].Content)

	posts, err := c.GetPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)

	require.NoError(t, c.DeletePost(ctx, created.ID))

	_, err = c.GetPost(ctx, created.ID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 404")
}

func TestClient_ServerErrorsCarryMessage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.AddComment(ctx, 999999, CreateCommentData{Content: "x", Author: "bob"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Post not found")

	_, err = c.CreatePost(ctx, CreatePostData{Content: "c", Author: "a"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 400")
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.Close()

	c := New(srv.URL)
	_, err := c.GetPosts(context.Background())
	require.Error(t, err)
}
