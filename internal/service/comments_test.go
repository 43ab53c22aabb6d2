package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"miniblog/internal/model"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		postID  int64
		req     CreateCommentRequest
		setup   func(posts *MockPostProvider, comments *MockCommentStorage)
		wantErr error
	}{
		{
			name:    "invalid post id",
			postID:  0,
			req:     CreateCommentRequest{Content: "x", Author: "bob"},
			setup:   func(_ *MockPostProvider, _ *MockCommentStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "missing content",
			postID:  1,
			req:     CreateCommentRequest{Author: "bob"},
			setup:   func(_ *MockPostProvider, _ *MockCommentStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:    "author too long",
			postID:  1,
			req:     CreateCommentRequest{Content: "x", Author: strings.Repeat("b", 101)},
			setup:   func(_ *MockPostProvider, _ *MockCommentStorage) {},
			wantErr: ErrInvalidRequest,
		},
		{
			name:   "parent post missing, nothing inserted",
			postID: 999999,
			req:    CreateCommentRequest{Content: "x", Author: "bob"},
			setup: func(posts *MockPostProvider, _ *MockCommentStorage) {
				posts.EXPECT().
					GetPostByID(gomock.Any(), int64(999999)).
					Return(model.Post{}, ErrNotFound)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "storage error",
			postID: 1,
			req:    CreateCommentRequest{Content: "x", Author: "bob"},
			setup: func(posts *MockPostProvider, comments *MockCommentStorage) {
				posts.EXPECT().
					GetPostByID(gomock.Any(), int64(1)).
					Return(model.Post{ID: 1}, nil)
				comments.EXPECT().
					CreateComment(gomock.Any(), model.Comment{PostID: 1, Content: "x", Author: "bob"}).
					Return(model.Comment{}, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
		{
			name:   "success",
			postID: 1,
			req:    CreateCommentRequest{Content: "Nice!", Author: "Bob"},
			setup: func(posts *MockPostProvider, comments *MockCommentStorage) {
				posts.EXPECT().
					GetPostByID(gomock.Any(), int64(1)).
					Return(model.Post{ID: 1}, nil)
				comments.EXPECT().
					CreateComment(gomock.Any(), model.Comment{PostID: 1, Content: "Nice!", Author: "Bob"}).
					Return(model.Comment{ID: 1, PostID: 1, Content: "Nice!", Author: "Bob", CreatedAt: now}, nil)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			posts := NewMockPostProvider(ctrl)
			comments := NewMockCommentStorage(ctrl)
			tx := NewMockTxManager(ctrl)
			passthroughTx(tx)
			tt.setup(posts, comments)

			svc := NewCommentService(comments, posts, tx)
			got, err := svc.CreateComment(context.Background(), tt.postID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, ErrInvalidRequest) || errors.Is(tt.wantErr, ErrNotFound) {
					require.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.postID, got.PostID)
			require.Equal(t, tt.req.Content, got.Content)
			require.Equal(t, tt.req.Author, got.Author)
		})
	}
}

