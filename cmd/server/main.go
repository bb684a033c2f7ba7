package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/nanomedia/social-backend/internal/router"
	"github.com/nanomedia/social-backend/internal/services"
	"github.com/nanomedia/social-backend/pkg/config"
	"github.com/nanomedia/social-backend/pkg/firebase"
	"github.com/nanomedia/social-backend/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync() //nolint:errcheck

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return err
	}
	log.Info("PostgreSQL auto-migrations completed")

	mongoDB := db.Mongo.Database(cfg.Database.MongoDatabase)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	if err := postRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	var tokens repositories.TokenStore = repositories.NewMemoryTokenStore()
	if db.Redis != nil {
		tokens = repositories.NewRedisTokenStore(db.Redis)
	} else {
		log.Warn("REDIS_ADDR not set, tokens are kept in memory")
	}

	var verifier services.FirebaseVerifier
	if cfg.Auth.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.Auth.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		verifier = app.AuthClient
		log.Info("firebase login enabled")
	}

	e := echo.New()
	e.HideBanner = true
	router.SetupMiddleware(e, log)
	router.SetupRoutes(e, router.Deps{
		Postgres: db.Postgres,
		Posts:    postRepo,
		Files:    repositories.NewGridFSFileRepository(mongoDB),
		Tokens:   tokens,
		Firebase: verifier,
		Auth:     services.AuthConfig{JWTSecret: cfg.Auth.JWTSecret, TokenTTL: cfg.Auth.TokenTTL},
		Feed:     services.FeedConfig{ForceDateDesc: cfg.Feed.ForceDateDesc, PublicURL: cfg.Server.PublicURL},
		Log:      log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
