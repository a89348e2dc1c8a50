package handlers

import (
	"context"

	"github.com/fireballs/brady-stats/internal/logic"
)

// MockMatchViewService
type MockMatchViewService struct {
	RecentMatchesFunc func(ctx context.Context) (*logic.MatchGrid, error)
	MatchStatsFunc    func(ctx context.Context, id int, opts logic.GridOptions) (*logic.MatchStatsView, error)
	LeaderboardFunc   func(ctx context.Context, limit int, opts logic.GridOptions) (*logic.LeaderboardView, error)
}

func (m *MockMatchViewService) RecentMatches(ctx context.Context) (*logic.MatchGrid, error) {
	if m.RecentMatchesFunc != nil {
		return m.RecentMatchesFunc(ctx)
	}
	return &logic.MatchGrid{}, nil
}

func (m *MockMatchViewService) MatchStats(ctx context.Context, id int, opts logic.GridOptions) (*logic.MatchStatsView, error) {
	if m.MatchStatsFunc != nil {
		return m.MatchStatsFunc(ctx, id, opts)
	}
	return &logic.MatchStatsView{}, nil
}

func (m *MockMatchViewService) Leaderboard(ctx context.Context, limit int, opts logic.GridOptions) (*logic.LeaderboardView, error) {
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx, limit, opts)
	}
	return &logic.LeaderboardView{}, nil
}

// MockTournamentViewService
type MockTournamentViewService struct {
	TournamentsFunc func(ctx context.Context) ([]logic.TournamentSummary, error)
	TournamentFunc  func(ctx context.Context, id int, opts logic.GridOptions) (*logic.TournamentView, error)
	PlayerCardFunc  func(ctx context.Context, id int, uuid string, mode logic.Mode) (*logic.HoverCard, error)
}

func (m *MockTournamentViewService) Tournaments(ctx context.Context) ([]logic.TournamentSummary, error) {
	if m.TournamentsFunc != nil {
		return m.TournamentsFunc(ctx)
	}
	return []logic.TournamentSummary{}, nil
}

func (m *MockTournamentViewService) Tournament(ctx context.Context, id int, opts logic.GridOptions) (*logic.TournamentView, error) {
	if m.TournamentFunc != nil {
		return m.TournamentFunc(ctx, id, opts)
	}
	return &logic.TournamentView{}, nil
}

func (m *MockTournamentViewService) PlayerCard(ctx context.Context, id int, uuid string, mode logic.Mode) (*logic.HoverCard, error) {
	if m.PlayerCardFunc != nil {
		return m.PlayerCardFunc(ctx, id, uuid, mode)
	}
	return &logic.HoverCard{}, nil
}

// MockModeSource
type MockModeSource struct {
	CurrentFunc func(ctx context.Context) (logic.Mode, error)
	CycleFunc   func(ctx context.Context) (logic.Mode, error)
}

func (m *MockModeSource) Current(ctx context.Context) (logic.Mode, error) {
	if m.CurrentFunc != nil {
		return m.CurrentFunc(ctx)
	}
	return logic.ModeTotal, nil
}

func (m *MockModeSource) Cycle(ctx context.Context) (logic.Mode, error) {
	if m.CycleFunc != nil {
		return m.CycleFunc(ctx)
	}
	return logic.ModePerMatch, nil
}

// MockPinger
type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
