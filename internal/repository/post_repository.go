package repository

import (
	"database/sql"

	"github.com/balludanga/merikahani-backend/internal/model"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.QueryRow(`
		INSERT INTO posts(title, subtitle, content, slug, cover_image, author_id, published, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, post.Title, post.Subtitle, post.Content, post.Slug, post.CoverImage, post.AuthorID, post.Published, post.CreatedAt, post.UpdatedAt).Scan(&post.ID)
}

func (r *PostRepository) SlugExists(slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)
	`, slug).Scan(&exists)
	return exists, err
}

func (r *PostRepository) GetByID(id int64) (*model.Post, error) {
	var p model.Post
	err := r.db.QueryRow(`
		SELECT id, title, subtitle, content, slug, cover_image, author_id, published, created_at, updated_at
		FROM posts
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Title, &p.Subtitle, &p.Content, &p.Slug, &p.CoverImage, &p.AuthorID, &p.Published, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PostRepository) GetBySlug(slug string) (*model.Post, error) {
	var p model.Post
	err := r.db.QueryRow(`
		SELECT id, title, subtitle, content, slug, cover_image, author_id, published, created_at, updated_at
		FROM posts
		WHERE slug = $1
	`, slug).Scan(&p.ID, &p.Title, &p.Subtitle, &p.Content, &p.Slug, &p.CoverImage, &p.AuthorID, &p.Published, &p.CreatedAt, &p.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PostRepository) GetFeed(published *bool, limit, offset int) ([]model.Post, error) {
	rows, err := r.db.Query(`
		SELECT id, title, subtitle, content, slug, cover_image, author_id, published, created_at, updated_at
		FROM posts
		WHERE ($1::boolean IS NULL OR published = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, nullableBool(published), limit, offset)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *PostRepository) GetByAuthor(authorID int64, published *bool) ([]model.Post, error) {
	rows, err := r.db.Query(`
		SELECT id, title, subtitle, content, slug, cover_image, author_id, published, created_at, updated_at
		FROM posts
		WHERE author_id = $1 AND ($2::boolean IS NULL OR published = $2)
		ORDER BY created_at DESC
	`, authorID, nullableBool(published))

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *PostRepository) Update(post *model.Post) error {
	_, err := r.db.Exec(`
		UPDATE posts
		SET title = $1, subtitle = $2, content = $3, slug = $4, cover_image = $5, published = $6, updated_at = $7
		WHERE id = $8
	`, post.Title, post.Subtitle, post.Content, post.Slug, post.CoverImage, post.Published, post.UpdatedAt, post.ID)
	return err
}

func (r *PostRepository) Delete(id int64) error {
	_, err := r.db.Exec(`
		DELETE FROM posts WHERE id = $1
	`, id)
	return err
}

func (r *PostRepository) GetPublishedWithAuthors(limit int) ([]model.PostWithAuthor, error) {
	rows, err := r.db.Query(`
		SELECT p.id, p.title, p.subtitle, p.content, p.slug, p.cover_image, p.author_id, p.published, p.created_at, p.updated_at,
			u.username, u.email, u.full_name
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.published = TRUE
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.PostWithAuthor
	for rows.Next() {
		var p model.PostWithAuthor
		err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Content, &p.Slug, &p.CoverImage, &p.AuthorID, &p.Published, &p.CreatedAt, &p.UpdatedAt,
			&p.AuthorUsername, &p.AuthorEmail, &p.AuthorFullName)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanPosts(rows *sql.Rows) ([]model.Post, error) {
	var posts []model.Post
	for rows.Next() {
		var p model.Post
		err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Content, &p.Slug, &p.CoverImage, &p.AuthorID, &p.Published, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func nullableBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
