package postgres

import (
	"context"
	"fmt"

	"miniblog/internal/model"
	"miniblog/internal/service"
	"miniblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentStorage struct {
	pool   *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCommentStorage(pool *pgxpool.Pool, getter *trmpgx.CtxGetter) *CommentStorage {
	return &CommentStorage{pool: pool, getter: getter}
}

func commentColumns() []string {
	return []string{
		tableinfo.CommentIDColumn,
		tableinfo.CommentPostIDColumn,
		tableinfo.CommentContentColumn,
		tableinfo.CommentAuthorColumn,
		tableinfo.CommentCreatedAtColumn,
	}
}

func scanComment(row pgx.Row, out *model.Comment) error {
	return row.Scan(
		&out.ID,
		&out.PostID,
		&out.Content,
		&out.Author,
		&out.CreatedAt,
	)
}

func buildInsertComment(comment model.Comment) (string, []any, error) {
	return sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentContentColumn,
			tableinfo.CommentAuthorColumn,
		).
		Values(comment.PostID, comment.Content, comment.Author).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s",
			tableinfo.CommentIDColumn,
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentContentColumn,
			tableinfo.CommentAuthorColumn,
			tableinfo.CommentCreatedAtColumn,
		)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func (s *CommentStorage) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	var out model.Comment

	query, args, err := buildInsertComment(comment)
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if err := scanComment(tr.QueryRow(ctx, query, args...), &out); err != nil {
		return out, fmt.Errorf("%w: exec insert comment: %v", service.ErrInternalError, err)
	}
	return out, nil
}

func buildSelectCommentsByPost(postID int64) (string, []any, error) {
	return sq.
		Select(commentColumns()...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		OrderBy(
			fmt.Sprintf("%s ASC", tableinfo.CommentCreatedAtColumn),
			fmt.Sprintf("%s ASC", tableinfo.CommentIDColumn),
		).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// GetCommentsByPost returns the post's comments oldest first.
func (s *CommentStorage) GetCommentsByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query, args, err := buildSelectCommentsByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	rows, err := tr.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: exec select comments: %v", service.ErrInternalError, err)
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := scanComment(rows, &c); err != nil {
			return nil, fmt.Errorf("%w: scan comment: %v", service.ErrInternalError, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", service.ErrInternalError, err)
	}
	return out, nil
}

// DeleteCommentsByPost removes all comments of a post. Deleting zero rows is
// not an error; the caller decides whether the post itself exists.
func (s *CommentStorage) DeleteCommentsByPost(ctx context.Context, postID int64) error {
	query, args, err := sq.
		Delete(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	tr := s.getter.DefaultTrOrDB(ctx, s.pool)
	if _, err := tr.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: exec delete comments: %v", service.ErrInternalError, err)
	}
	return nil
}
