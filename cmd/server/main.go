package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hugh/agencyhub/internal/api"
	"github.com/hugh/agencyhub/internal/auth"
	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database"
	"github.com/hugh/agencyhub/pkg/config"
	"github.com/hugh/agencyhub/pkg/crypto"
	"github.com/hugh/agencyhub/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := util.NewLogger(cfg.Server.Env, cfg.Server.LogLevel)
	slog.SetDefault(logger)

	logger.Info("starting agencyhub server",
		"env", cfg.Server.Env,
		"addr", cfg.Server.Addr(),
	)

	// Connect to database
	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := database.Migrate(ctx, db, logger)
		cancel()
		if err != nil {
			logger.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// SMTP passwords are stored in plaintext without a key
	var encryptor *crypto.Encryptor
	if cfg.Encryption.Key != "" {
		encryptor, err = crypto.NewEncryptor(cfg.Encryption.Key)
		if err != nil {
			logger.Error("failed to create encryptor", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("ENCRYPTION_KEY not set, SMTP passwords will be stored unencrypted")
	}

	service := crm.NewService(db, encryptor, logger)

	var verifier auth.TokenVerifier
	if cfg.Auth.Enabled() {
		verifier = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	} else {
		logger.Warn("AUTH_JWT_SECRET not set, RPC endpoints are unauthenticated")
	}

	// Create router
	router := api.NewRouter(api.RouterConfig{
		DB:              db,
		Logger:          logger,
		Service:         service,
		Verifier:        verifier,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		RateLimitReqs:   cfg.RateLimit.Requests,
		RateLimitWindow: cfg.RateLimit.Window(),
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()

	logger.Info("server stopped")
}
