package repository

import (
	"database/sql"

	"github.com/balludanga/merikahani-backend/internal/model"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.QueryRow(`
		INSERT INTO comments(content, post_id, author_id, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, comment.Content, comment.PostID, comment.AuthorID, comment.CreatedAt, comment.UpdatedAt).Scan(&comment.ID)
}

func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRow(`
		SELECT id, content, post_id, author_id, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *CommentRepository) GetByPost(postID int64) ([]model.Comment, error) {
	rows, err := r.db.Query(`
		SELECT id, content, post_id, author_id, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC
	`, postID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var c model.Comment
		err := rows.Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *CommentRepository) Delete(id int64) error {
	_, err := r.db.Exec(`
		DELETE FROM comments WHERE id = $1
	`, id)
	return err
}
