package model

import (
	"database/sql"
	"time"
)

type Post struct {
	ID         int64
	Title      string
	Subtitle   sql.NullString
	Content    string
	Slug       string
	CoverImage sql.NullString
	AuthorID   int64
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostWithAuthor joins the author columns needed by the feed and RSS output.
type PostWithAuthor struct {
	Post
	AuthorUsername string
	AuthorEmail    string
	AuthorFullName sql.NullString
}
