package postgres

import (
	"context"
	"errors"
	"fmt"

	"miniblog/internal/model"
	"miniblog/internal/service"
	"miniblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrBuildingQuery = errors.New("error building sql-query")

type PostStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPostStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *PostStorage {
	return &PostStorage{
		pool:   pool,
		getter: getter,
	}
}

func postColumns() []string {
	return []string{
		tableinfo.PostIDColumn,
		tableinfo.PostTitleColumn,
		tableinfo.PostContentColumn,
		tableinfo.PostAuthorColumn,
		tableinfo.PostCreatedAtColumn,
		tableinfo.PostUpdatedAtColumn,
	}
}

func scanPost(row pgx.Row, out *model.Post) error {
	return row.Scan(
		&out.ID,
		&out.Title,
		&out.Content,
		&out.Author,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
}

func buildInsertPost(post model.Post) (string, []any, error) {
	return sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostAuthorColumn,
		).
		Values(post.Title, post.Content, post.Author).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostAuthorColumn,
			tableinfo.PostCreatedAtColumn,
			tableinfo.PostUpdatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (s *PostStorage) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := buildInsertPost(post)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, fmt.Errorf("%w: exec insert post: %v", service.ErrInternalError, err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Select(postColumns()...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("%w: exec select post by id: %v", service.ErrInternalError, err)
	}
	return out, nil
}

func (s *PostStorage) GetPosts(ctx context.Context) ([]model.Post, error) {
	query, args, err := sq.
		Select(postColumns()...).
		From(tableinfo.PostsTableName).
		OrderBy(
			fmt.Sprintf("%s DESC", tableinfo.PostCreatedAtColumn),
			fmt.Sprintf("%s DESC", tableinfo.PostIDColumn),
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: exec select posts: %v", service.ErrInternalError, err)
	}
	defer rows.Close()

	var out []model.Post
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, fmt.Errorf("%w: scan post: %v", service.ErrInternalError, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", service.ErrInternalError, err)
	}
	return out, nil
}

func buildUpdatePost(postID int64, req service.UpdatePostRequest) (string, []any, error) {
	b := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostUpdatedAtColumn, sq.Expr("now()"))

	if req.Title != nil {
		b = b.Set(tableinfo.PostTitleColumn, *req.Title)
	}
	if req.Content != nil {
		b = b.Set(tableinfo.PostContentColumn, *req.Content)
	}
	if req.Author != nil {
		b = b.Set(tableinfo.PostAuthorColumn, *req.Author)
	}

	return b.
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostContentColumn,
			tableinfo.PostAuthorColumn,
			tableinfo.PostCreatedAtColumn,
			tableinfo.PostUpdatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// UpdatePost applies only the supplied fields and refreshes updated_at.
func (s *PostStorage) UpdatePost(ctx context.Context, postID int64, req service.UpdatePostRequest) (model.Post, error) {
	var out model.Post

	query, args, err := buildUpdatePost(postID, req)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanPost(tr.QueryRow(ctx, query, args...), &out); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("%w: exec update post: %v", service.ErrInternalError, err)
	}
	return out, nil
}

func (s *PostStorage) DeletePost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		Suffix(fmt.Sprintf("RETURNING %s", tableinfo.PostIDColumn)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)

	var dummy int64
	if err := tr.QueryRow(ctx, query, args...).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return service.ErrNotFound
		}
		return fmt.Errorf("%w: exec delete post: %v", service.ErrInternalError, err)
	}
	return nil
}
