package repository

import (
	"database/sql"

	"github.com/balludanga/merikahani-backend/internal/model"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.QueryRow(`
		INSERT INTO users(email, username, full_name, bio, avatar_url, hashed_password, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, user.Email, user.Username, user.FullName, user.Bio, user.AvatarURL, user.HashedPassword, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(`
		SELECT id, email, username, full_name, bio, avatar_url, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(`
		SELECT id, email, username, full_name, bio, avatar_url, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(`
		SELECT id, email, username, full_name, bio, avatar_url, hashed_password, created_at, updated_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *UserRepository) GetAuthorsWithPublishedPosts() ([]model.User, error) {
	rows, err := r.db.Query(`
		SELECT DISTINCT u.id, u.email, u.username, u.full_name, u.bio, u.avatar_url, u.hashed_password, u.created_at, u.updated_at
		FROM users u
		JOIN posts p ON p.author_id = u.id
		WHERE p.published = TRUE
	`)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.Bio, &u.AvatarURL, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
