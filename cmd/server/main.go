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

	"careerpath/internal/auth"
	"careerpath/internal/career"
	"careerpath/internal/config"
	"careerpath/internal/http_server/handlers/profile"
	"careerpath/internal/http_server/router"
	"careerpath/internal/lib/jwt"
	sl "careerpath/internal/lib/logger/sl"
	"careerpath/internal/lib/password"
	"careerpath/internal/models"
	"careerpath/internal/rabbitmq"
	"careerpath/internal/storage/memory"
	"careerpath/internal/storage/postgres"
)

// store is everything the server needs from a storage driver.
type store interface {
	auth.AccountSaver
	auth.AccountProvider
	auth.SignInRecorder
	profile.Store
	router.CareerStore
	router.Pinger
	SeedMarketTrends(ctx context.Context, trends []models.MarketTrend) error
	Close()
}

func main() {
	cfg := config.MustLoad()

	log := sl.New(cfg.Env)

	log.Info("starting careerpath", slog.String("env", cfg.Env), slog.String("storage", cfg.Storage.Driver))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, err := openStorage(ctx, cfg)
	if err != nil {
		log.Error("failed to open storage", sl.Err(err))
		os.Exit(1)
	}
	defer repo.Close()

	if err := repo.SeedMarketTrends(ctx, career.MarketTrends(time.Now().UTC())); err != nil {
		log.Error("failed to seed market trends", sl.Err(err))
		os.Exit(1)
	}

	hasher, err := password.New(cfg.Password.BcryptCost)
	if err != nil {
		log.Error("failed to init password hasher", sl.Err(err))
		os.Exit(1)
	}

	var publisher auth.Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		msgBroker, err := rabbitmq.New(&cfg.RabbitMQ)
		if err != nil {
			log.Error("failed to connect rabbitmq", sl.Err(err))
			os.Exit(1)
		}
		defer msgBroker.Close()

		publisher = msgBroker
	}

	authService := auth.New(
		log,
		repo,
		repo,
		repo,
		hasher,
		jwt.NewIssuer(&cfg.Tokens),
		publisher,
	)

	handler := router.New(router.Deps{
		Log:            log,
		Auth:           authService,
		Verifier:       jwt.NewVerifier(&cfg.Tokens),
		Profiles:       repo,
		Career:         repo,
		Health:         repo,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", sl.Err(err))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", sl.Err(err))
	} else {
		log.Info("Server stopped gracefully")
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (store, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return memory.New(), nil
	}

	repo, err := postgres.New(ctx, &cfg.Postgres)
	if err != nil {
		return nil, err
	}

	if err := repo.EnsureSchema(ctx); err != nil {
		repo.Close()

		return nil, err
	}

	return repo, nil
}
