package main

import (
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/balludanga/merikahani-backend/db"
	"github.com/balludanga/merikahani-backend/internal/bot"
	"github.com/balludanga/merikahani-backend/internal/handler"
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

	var seoCache handler.SEOCache
	if os.Getenv("REDIS_URL") != "" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("error connecting to Redis, SEO caching disabled", "error", err)
		} else {
			defer db.CloseRedis()
			seoCache = db.KeyValueCache{}
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "https://kahanighargharki.vercel.app"
	}

	userRepo := repository.NewUserRepository(db.DB)
	postRepo := repository.NewPostRepository(db.DB)
	commentRepo := repository.NewCommentRepository(db.DB)

	authHandler := handler.NewAuthHandler(userRepo, jwtSecret, os.Getenv("GOOGLE_CLIENT_ID"))
	postHandler := handler.NewPostHandler(postRepo)
	commentHandler := handler.NewCommentHandler(commentRepo, postRepo)
	seoHandler := handler.NewSEOHandler(postRepo, userRepo, seoCache, baseURL)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Bot-Secret"},
	}))

	requireAuth := handler.AuthMiddleware(jwtSecret, userRepo)

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/google-login", authHandler.GoogleLogin)
	api.GET("/auth/me", requireAuth, authHandler.Me)

	api.GET("/posts", postHandler.GetPosts)
	api.GET("/posts/:id", postHandler.GetPost)
	api.GET("/users/:id/posts", postHandler.GetUserPosts)
	api.POST("/posts", requireAuth, postHandler.CreatePost)
	api.PUT("/posts/:id", requireAuth, postHandler.UpdatePost)
	api.DELETE("/posts/:id", requireAuth, postHandler.DeletePost)

	api.GET("/posts/:id/comments", commentHandler.GetPostComments)
	api.POST("/comments", requireAuth, commentHandler.CreateComment)
	api.DELETE("/comments/:id", requireAuth, commentHandler.DeleteComment)

	api.GET("/sitemap.xml", seoHandler.Sitemap)
	api.GET("/rss.xml", seoHandler.RSS)

	// The manual trigger keeps its own ledger: each process carries
	// process-local dedup state, same as the scheduler binary.
	ledger := bot.NewLedger(bot.DefaultLedgerCap)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	pipeline, err := bot.NewEnvPipeline(postRepo, userRepo, ledger, rng)
	if err != nil {
		slog.Warn("pipeline unavailable, trigger endpoint disabled", "error", err)
	} else {
		botHandler := handler.NewBotHandler(os.Getenv("BOT_TRIGGER_SECRET"), pipeline)
		api.POST("/trigger-ai-bot", botHandler.Trigger)
	}

	r.GET("/health", postHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
