package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/redis/go-redis/v9"

	"github.com/openlance/vouch/adapters/challenge"
	"github.com/openlance/vouch/adapters/events"
	"github.com/openlance/vouch/adapters/tokenizer"
	"github.com/openlance/vouch/adapters/users"
	"github.com/openlance/vouch/config"
	"github.com/openlance/vouch/ports"
	"github.com/openlance/vouch/service"
	"github.com/openlance/vouch/transport/http"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	mode := service.ModeEnforced
	if cfg.BypassEnabled() {
		mode = service.ModeBypass
		slog.Warn("signature verification bypass enabled; do not run this configuration in production")
	}

	// Challenge store: shared through Redis when configured, otherwise
	// in-process.
	var challenges ports.ChallengeStore = challenge.NewMemoryStore(cfg.ChallengeTTL)
	var eventPub ports.EventPublisher

	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient := redis.NewClient(opts)
		challenges = challenge.NewRedisStore(redisClient, cfg.ChallengeTTL)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: redisClient},
			watermill.NewSlogLogger(slog.Default()),
		)
		if err != nil {
			log.Fatalf("Failed to create Redis publisher: %v", err)
		}
		eventPub = events.NewWatermillPublisher(publisher)
	}

	userStore, err := users.NewSQLiteStore(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open user store: %v", err)
	}
	defer userStore.Close()

	jwtTokenizer := tokenizer.NewJWTTokenizer(cfg.JWTSecret)

	authService := service.NewAuthService(challenges, userStore, jwtTokenizer, eventPub, mode)

	router := http.SetupRouter(authService, userStore, cfg.CookieName, cfg.Production())

	slog.Info("starting auth service", "addr", cfg.ListenAddr, "env", cfg.AppEnv)
	if err := router.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
