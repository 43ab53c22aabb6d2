package model

import "time"

type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	Author    string
	CreatedAt time.Time
}
