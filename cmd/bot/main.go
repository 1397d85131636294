package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/balludanga/merikahani-backend/db"
	"github.com/balludanga/merikahani-backend/internal/bot"
	"github.com/balludanga/merikahani-backend/internal/repository"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)

	if len(os.Args) > 1 && os.Args[1] == "setup" {
		password := os.Getenv("BOT_PASSWORD")
		if password == "" {
			log.Fatal("BOT_PASSWORD is required for setup")
		}

		user, err := bot.ProvisionBotUser(userRepo, password)
		if err != nil {
			log.Fatalf("error provisioning bot user: %v", err)
		}

		slog.Info("bot user ready", "user_id", user.ID, "username", user.Username)
		return
	}

	ledger := bot.NewLedger(bot.DefaultLedgerCap)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	pipeline, err := bot.NewEnvPipeline(postRepo, userRepo, ledger, rng)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	pipeline.Run(context.Background())
}
