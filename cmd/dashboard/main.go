// Package main запускает дашборд прачечной.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/doctordoom101/laundryapp-dashboard/internal/api"
	"github.com/doctordoom101/laundryapp-dashboard/internal/config"
	"github.com/doctordoom101/laundryapp-dashboard/internal/handler"
	"github.com/doctordoom101/laundryapp-dashboard/internal/middleware"
	"github.com/doctordoom101/laundryapp-dashboard/internal/session"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	_ = godotenv.Load()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := newBackend(ctx, cfg)
	if err != nil {
		sugar.Fatalw("session backend initialization error", "error", err.Error())
	}
	defer closeBackend()

	client := api.NewClient(cfg.APIBaseURL, api.WithTimeout(cfg.APITimeout))
	codec := session.NewUserCodec(cfg.SessionSecret)
	limiter := middleware.NewRateLimiter(cfg.CheckRateLimit, 5)

	h := handler.NewHandler(client, backend, codec, logger, handler.Options{
		SessionTTL:  cfg.SessionTTL,
		PublicURL:   cfg.PublicURL,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	})

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Очистка счётчиков ограничителя частоты
	g.Go(func() error {
		limiter.Run(ctx.Done())
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting dashboard server",
			"addr", cfg.RunAddress,
			"api", cfg.APIBaseURL,
			"session_backend", cfg.SessionBackend,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

// newBackend выбирает хранилище сессий: cookie браузера или redis.
func newBackend(ctx context.Context, cfg *config.Config) (session.Backend, func(), error) {
	if cfg.SessionBackend != config.BackendRedis {
		return session.CookieBackend{Secure: cfg.SecureCookies}, func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return session.NewRedisBackend(rdb, cfg.SessionTTL, cfg.SecureCookies), func() { _ = rdb.Close() }, nil
}
