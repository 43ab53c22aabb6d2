package service

type CreatePostRequest struct {
	Title   string `validate:"required,max=200"`
	Content string `validate:"required"`
	Author  string `validate:"required,max=100"`
}

// UpdatePostRequest carries a partial update. Nil fields are left untouched;
// the storage layer refreshes updated_at regardless.
type UpdatePostRequest struct {
	Title   *string `validate:"omitnil,min=1,max=200"`
	Content *string `validate:"omitnil,min=1"`
	Author  *string `validate:"omitnil,min=1,max=100"`
}

func (r UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Author == nil
}

type CreateCommentRequest struct {
	Content string `validate:"required"`
	Author  string `validate:"required,max=100"`
}
