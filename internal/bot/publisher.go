package bot

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/balludanga/merikahani-backend/internal/model"
	"github.com/balludanga/merikahani-backend/pkg/llm"
)

type PostStore interface {
	SlugExists(slug string) (bool, error)
	Create(post *model.Post) error
}

type UserStore interface {
	GetByID(id int64) (*model.User, error)
}

// Publisher persists generated articles as published posts authored by
// the bot account.
type Publisher struct {
	posts     PostStore
	users     UserStore
	botUserID int64
}

func NewPublisher(posts PostStore, users UserStore, botUserID int64) *Publisher {
	return &Publisher{
		posts:     posts,
		users:     users,
		botUserID: botUserID,
	}
}

// Publish writes exactly one post row on success and none on failure.
// The bot account must already exist; it is never created here.
func (p *Publisher) Publish(article llm.Article) bool {
	user, err := p.users.GetByID(p.botUserID)
	if err != nil {
		slog.Error("error looking up bot user", "user_id", p.botUserID, "error", err)
		return false
	}

	if user == nil {
		slog.Error("bot user not found", "user_id", p.botUserID)
		return false
	}

	slug, err := AllocateSlug(p.posts, article.Title)
	if err != nil {
		slog.Error("error allocating slug", "title", article.Title, "error", err)
		return false
	}

	now := time.Now().UTC()
	post := &model.Post{
		Title:     article.Title,
		Subtitle:  sql.NullString{String: article.Subtitle, Valid: article.Subtitle != ""},
		Content:   article.Body,
		Slug:      slug,
		AuthorID:  user.ID,
		Published: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := p.posts.Create(post); err != nil {
		slog.Error("error creating post", "slug", slug, "error", err)
		return false
	}

	slog.Info("post published", "post_id", post.ID, "title", post.Title, "slug", post.Slug)
	return true
}
