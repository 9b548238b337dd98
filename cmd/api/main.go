package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"arab_ai_go_backend/cmd/api/config"
	"arab_ai_go_backend/internal/api"
	"arab_ai_go_backend/internal/auth"
	"arab_ai_go_backend/internal/database"
	"arab_ai_go_backend/internal/models"
	"arab_ai_go_backend/internal/ratelimit"
	"arab_ai_go_backend/internal/services"
	"arab_ai_go_backend/internal/store"
	"arab_ai_go_backend/internal/token"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	cfg := config.New()
	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		log.Fatal().Msg("JWT_SECRET and JWT_REFRESH_SECRET must be set in the environment")
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal().Msg("GEMINI_API_KEY is not set in the environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create GenAI client")
	}
	defer genaiClient.Close()

	// Stores and services, all over the injected handle
	userStore := store.NewUserStore(db)
	conversationStore := store.NewConversationStore(db)
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTRefreshSecret)
	authService := services.NewAuthService(userStore, tokens)
	chatService := services.NewChatService(conversationStore, map[models.Provider]services.AIClient{
		models.ProviderGemini: services.NewGeminiClient(genaiClient),
	})

	if !cfg.IsProduction() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestID())
	r.Use(api.RequestLogger())
	r.Use(api.BodySizeLimit(cfg.MaxBodyBytes))

	// CORS middleware configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiting is enabled only when Redis is configured
	var authLimiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		global := ratelimit.NewFixedWindowLimiter(redisClient, "arabai:ratelimit:global", cfg.GlobalRateLimit, cfg.GlobalRateWindow)
		r.Use(global.Middleware("Too many requests, please try again later"))

		authWindow := ratelimit.NewFixedWindowLimiter(redisClient, "arabai:ratelimit:auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
		authLimiter = authWindow.Middleware("Too many authentication attempts, please try again later")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, rate limiting disabled")
	}

	auth.SetupRoutes(r, authService, tokens, userStore, cfg.IsProduction(), authLimiter)
	api.SetupRoutes(r, chatService, auth.AuthMiddleware(tokens, userStore))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
