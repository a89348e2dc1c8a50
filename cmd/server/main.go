package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fireballs/brady-stats/internal/config"
	"github.com/fireballs/brady-stats/internal/handlers"
	"github.com/fireballs/brady-stats/internal/logic"
	"github.com/fireballs/brady-stats/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	client := upstream.NewClient(upstream.ClientConfig{
		APIRoot:    cfg.UpstreamAPIRoot,
		Timeout:    cfg.UpstreamTimeout,
		MaxRetries: cfg.UpstreamMaxRetries,
		Logger:     logger,
	})

	// Shared mode: redis when configured so every replica shows the same
	// mode, otherwise one in-process cell.
	var modes logic.ModeSource = logic.NewLocalModeSource(nil)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			sugar.Warnw("Redis not reachable yet, mode reads fall back to total until it is", "error", err)
		}
		cancel()
		modes = logic.NewRedisModeSource(rdb, cfg.ModeKey, cfg.ModeTTL)
	}

	hcfg := handlers.Config{
		Logger:      logger,
		Upstream:    client,
		Matches:     logic.NewMatchViewService(client, cfg.LeaderboardMatches, cfg.FetchConcurrency),
		Tournaments: logic.NewTournamentViewService(client),
		Modes:       modes,
	}
	if rdb != nil {
		hcfg.Redis = rdb
	}
	h := handlers.New(hcfg)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"upstream", cfg.UpstreamAPIRoot,
			"shared_mode", rdb != nil,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Infow("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		sugar.Errorw("Server forced to shutdown", "error", err)
		return
	}
	sugar.Infow("Server exited properly")
}
