package bot

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/balludanga/merikahani-backend/internal/model"
)

type fakeProvisionStore struct {
	byUsername map[string]*model.User
	created    []*model.User
}

func (f *fakeProvisionStore) GetByUsername(username string) (*model.User, error) {
	return f.byUsername[username], nil
}

func (f *fakeProvisionStore) Create(user *model.User) error {
	user.ID = int64(len(f.created) + 1)
	f.created = append(f.created, user)
	f.byUsername[user.Username] = user
	return nil
}

func TestProvisionBotUserCreatesAccount(t *testing.T) {
	store := &fakeProvisionStore{byUsername: map[string]*model.User{}}

	user, err := ProvisionBotUser(store, "bot-password")

	assert.Equal(t, nil, err)
	assert.Equal(t, botUsername, user.Username)
	assert.Equal(t, true, user.Bio.Valid)
	assert.Equal(t, 1, len(store.created))
}

func TestProvisionBotUserIsIdempotent(t *testing.T) {
	store := &fakeProvisionStore{byUsername: map[string]*model.User{}}

	first, err := ProvisionBotUser(store, "bot-password")
	assert.Equal(t, nil, err)

	second, err := ProvisionBotUser(store, "bot-password")
	assert.Equal(t, nil, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, len(store.created))
}

func TestBotUserIDFromEnv(t *testing.T) {
	t.Setenv("BOT_USER_ID", "42")
	assert.Equal(t, int64(42), BotUserID())

	t.Setenv("BOT_USER_ID", "not-a-number")
	assert.Equal(t, int64(defaultBotUserID), BotUserID())
}
