package bot

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/balludanga/merikahani-backend/internal/auth"
	"github.com/balludanga/merikahani-backend/internal/model"
	"github.com/balludanga/merikahani-backend/pkg/llm"
	"github.com/balludanga/merikahani-backend/pkg/news"
)

const (
	defaultBotUserID = 3
	botUsername      = "satirical_bot"
	botEmail         = "satirical.bot@merikahani.com"
	botFullName      = "व्यंग्य लेखक"
	botBio           = "दुनिया की खबरों पर व्यंग्यात्मक नज़रिया। सच को मजाकिया अंदाज में पेश करना हमारा काम है! 🎭📰"
)

// NewEnvPipeline assembles a pipeline from environment configuration.
// News provider keys are optional (the adapter degrades to evergreen
// topics); a generative text key is required.
func NewEnvPipeline(posts PostStore, users UserStore, ledger *Ledger, rng *rand.Rand) (*Pipeline, error) {
	var primary news.PrimarySource
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		primary = news.NewNewsAPIClient(key)
	}

	var secondary news.SecondarySource
	if key := os.Getenv("GNEWS_API_KEY"); key != "" {
		secondary = news.NewGNewsClient(key)
	}

	adapter := news.NewSourceAdapter(primary, secondary, ledger, rng)

	var generator llm.Generator
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		generator = llm.NewOpenAIClient(key)
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		generator = llm.NewAnthropicClient(key)
	} else {
		return nil, fmt.Errorf("no generative text API key configured")
	}

	publisher := NewPublisher(posts, users, BotUserID())

	return NewPipeline(adapter, generator, publisher, ledger, rng), nil
}

func BotUserID() int64 {
	if raw := os.Getenv("BOT_USER_ID"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id
		}
	}
	return defaultBotUserID
}

type userProvisioner interface {
	GetByUsername(username string) (*model.User, error)
	Create(user *model.User) error
}

// ProvisionBotUser creates the bot account if it does not exist yet and
// returns it either way. The pipeline itself never creates the account.
func ProvisionBotUser(users userProvisioner, password string) (*model.User, error) {
	existing, err := users.GetByUsername(botUsername)
	if err != nil {
		return nil, fmt.Errorf("lookup bot user: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash bot password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Email:          botEmail,
		Username:       botUsername,
		FullName:       sql.NullString{String: botFullName, Valid: true},
		Bio:            sql.NullString{String: botBio, Valid: true},
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := users.Create(user); err != nil {
		return nil, fmt.Errorf("create bot user: %w", err)
	}

	return user, nil
}
