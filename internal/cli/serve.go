package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"quiz-backend/internal/config"
	"quiz-backend/internal/database"
	"quiz-backend/internal/ratelimit"
	"quiz-backend/internal/router"
	"quiz-backend/internal/services"
	"quiz-backend/internal/store"
	"quiz-backend/internal/store/memory"
	"quiz-backend/internal/store/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(configPath *string) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg, !skipMigrations)
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on startup")
	return cmd
}

func runServer(ctx context.Context, cfg *config.Config, migrate bool) error {
	slog.Info("starting quiz backend", "config", cfg)

	st, err := openStore(cfg, migrate)
	if err != nil {
		return err
	}
	defer st.Close()

	limiters, closeRedis, err := openLimiters(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRedis()

	tokens := services.NewTokenService(cfg.JWTSecret)
	handler := router.NewRouter(st, tokens, router.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Limiters:       limiters,
		TrustProxy:     cfg.RateLimit.TrustProxy,
	})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openStore(cfg *config.Config, migrate bool) (store.Store, error) {
	if cfg.StoreDriver == config.StoreMemory {
		slog.Warn("using in-memory store; data is lost on exit")
		return memory.New(), nil
	}

	if migrate {
		if err := database.Migrate(cfg.DatabaseURL, 0); err != nil {
			return nil, err
		}
	}

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return postgres.New(db), nil
}

func openLimiters(ctx context.Context, cfg *config.Config) (router.Limiters, func(), error) {
	if cfg.Redis.Addr == "" {
		return router.Limiters{}, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return router.Limiters{}, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	limiters := router.Limiters{
		Auth:   ratelimit.NewRedisLimiter(client, "auth", cfg.RateLimit.AuthRequests, cfg.RateLimit.Window),
		Submit: ratelimit.NewRedisLimiter(client, "submit", cfg.RateLimit.SubmitRequests, cfg.RateLimit.Window),
	}
	return limiters, func() { client.Close() }, nil
}
