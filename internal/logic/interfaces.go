package logic

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fireballs/brady-stats/internal/models"
)

// ModeStoreClient is the subset of the redis client used by RedisModeSource.
type ModeStoreClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// ModeSource reads and cycles the shared normalization mode.
type ModeSource interface {
	Current(ctx context.Context) (Mode, error)
	Cycle(ctx context.Context) (Mode, error)
}

// DataSource is the upstream stats API.
type DataSource interface {
	ListMatches(ctx context.Context) ([]models.Match, error)
	GetMatchUber(ctx context.Context, id int) (*models.Uber, error)
	ListTournaments(ctx context.Context) ([]models.TournamentListItem, error)
	GetTournament(ctx context.Context, id int) (*models.TournamentDetail, error)
}

// MatchViewService builds match views.
type MatchViewService interface {
	RecentMatches(ctx context.Context) (*MatchGrid, error)
	MatchStats(ctx context.Context, id int, opts GridOptions) (*MatchStatsView, error)
	Leaderboard(ctx context.Context, limit int, opts GridOptions) (*LeaderboardView, error)
}

// TournamentViewService builds tournament views.
type TournamentViewService interface {
	Tournaments(ctx context.Context) ([]TournamentSummary, error)
	Tournament(ctx context.Context, id int, opts GridOptions) (*TournamentView, error)
	PlayerCard(ctx context.Context, id int, uuid string, mode Mode) (*HoverCard, error)
}
