package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
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

	ledger := bot.NewLedger(bot.DefaultLedgerCap)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	pipeline, err := bot.NewEnvPipeline(postRepo, userRepo, ledger, rng)
	if err != nil {
		log.Fatalf("error building pipeline: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := bot.NewScheduler(pipeline, bot.DefaultInterval)
	scheduler.Start(ctx)
}
