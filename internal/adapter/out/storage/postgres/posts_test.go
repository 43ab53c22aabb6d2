package postgres

import (
	"testing"

	"miniblog/internal/model"
	"miniblog/internal/service"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func Test_buildInsertPost(t *testing.T) {
	t.Parallel()

	query, args, err := buildInsertPost(model.Post{
		Title:   "Hello",
		Content: "World",
		Author:  "Alice",
	})
	require.NoError(t, err)
	require.Contains(t, query, "INSERT INTO posts")
	require.Contains(t, query, "(title,content,author)")
	require.Contains(t, query, "RETURNING id, title, content, author, created_at, updated_at")
	require.Equal(t, []any{"Hello", "World", "Alice"}, args)
}

func Test_buildUpdatePost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      service.UpdatePostRequest
		wantSets []string
		wantArgs []any
	}{
		{
			name:     "title only",
			req:      service.UpdatePostRequest{Title: strptr("X")},
			wantSets: []string{"updated_at = now()", "title = $1"},
			wantArgs: []any{"X", int64(5)},
		},
		{
			name: "all fields",
			req: service.UpdatePostRequest{
				Title:   strptr("t"),
				Content: strptr("c"),
				Author:  strptr("a"),
			},
			wantSets: []string{"updated_at = now()", "title = $1", "content = $2", "author = $3"},
			wantArgs: []any{"t", "c", "a", int64(5)},
		},
		{
			name:     "empty patch still touches updated_at",
			req:      service.UpdatePostRequest{},
			wantSets: []string{"updated_at = now()"},
			wantArgs: []any{int64(5)},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdatePost(5, tt.req)
			require.NoError(t, err)
			require.Contains(t, query, "UPDATE posts SET")
			for _, set := range tt.wantSets {
				require.Contains(t, query, set)
			}
			require.Contains(t, query, "WHERE id = $")
			require.Contains(t, query, "RETURNING id, title, content, author, created_at, updated_at")
			require.Equal(t, tt.wantArgs, args)
		})
	}
}
