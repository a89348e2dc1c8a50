package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fireballs/brady-stats/internal/logic"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RedisPinger is the subset of the redis client used by the readiness probe.
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type Config struct {
	Logger   *zap.Logger
	Upstream Pinger
	Redis    RedisPinger // nil when the mode is kept in process
	// Services
	Matches     logic.MatchViewService
	Tournaments logic.TournamentViewService
	Modes       logic.ModeSource
}

type Handler struct {
	logger      *zap.SugaredLogger
	validator   *validator.Validate
	upstream    Pinger
	redis       RedisPinger
	matches     logic.MatchViewService
	tournaments logic.TournamentViewService
	modes       logic.ModeSource
}

func New(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	modes := cfg.Modes
	if modes == nil {
		modes = logic.NewLocalModeSource(nil)
	}
	return &Handler{
		logger:      logger.Sugar(),
		validator:   validator.New(),
		upstream:    cfg.Upstream,
		redis:       cfg.Redis,
		matches:     cfg.Matches,
		tournaments: cfg.Tournaments,
		modes:       modes,
	}
}
