package model

import "time"

type Comment struct {
	ID        int64
	Content   string
	PostID    int64
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
