package logic

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/fireballs/brady-stats/internal/models"
)

// Leaderboard defaults
const (
	DefaultLeaderboardMatches = 20
	DefaultFetchConcurrency   = 4
)

// Upstream team ids of a single match.
const (
	TeamOne = 1
	TeamTwo = 2
)

// MatchSummary is the header of a match stats page.
type MatchSummary struct {
	ID        int    `json:"id"`
	Server    string `json:"server"`
	Map       string `json:"map"`
	Score     string `json:"score"`
	Duration  string `json:"duration"`
	StartTime string `json:"startTime"`
	IsTourney bool   `json:"isTourney"`
	Winner    int    `json:"winner"`
	TeamOne   string `json:"teamOne"`
	TeamTwo   string `json:"teamTwo"`
}

// MatchStatsView is a match header plus its player grid.
type MatchStatsView struct {
	Match MatchSummary `json:"match"`
	Grid  *Grid        `json:"grid"`
}

// LeaderboardView ranks players aggregated over recent matches.
type LeaderboardView struct {
	Matches int    `json:"matches"`
	Skipped int    `json:"skipped"`
	Grid    *Grid  `json:"grid"`
	Awards  Awards `json:"awards"`
}

// TournamentSummary is one row of the tournament list.
type TournamentSummary struct {
	ID          int                     `json:"id"`
	Name        string                  `json:"name"`
	Date        string                  `json:"date"`
	MatchCount  int                     `json:"matchCount"`
	PlayerCount int                     `json:"playerCount"`
	Captains    []models.PlayerIdentity `json:"captains"`
	WinnerTeam  int                     `json:"winnerTeamId"`
	sortKey     int64
}

// TournamentTeamView is a drafted team as listed on a tournament page.
type TournamentTeamView struct {
	ID      int                     `json:"id"`
	Name    string                  `json:"name"`
	Captain models.PlayerIdentity   `json:"captain"`
	Players []models.PlayerIdentity `json:"players"`
	Winner  bool                    `json:"winner"`
}

// TournamentMatchRow is one match of a tournament bracket.
type TournamentMatchRow struct {
	MatchID   int    `json:"matchId"`
	Server    string `json:"server"`
	TeamOne   string `json:"teamOne"`
	TeamTwo   string `json:"teamTwo"`
	Score     string `json:"score"`
	Duration  string `json:"duration"`
	StartTime string `json:"startTime"`
}

// TournamentView is a full tournament page.
type TournamentView struct {
	ID            int                     `json:"id"`
	Name          string                  `json:"name"`
	Date          string                  `json:"date"`
	WinnerTeam    int                     `json:"winnerTeamId"`
	Teams         []TournamentTeamView    `json:"teams"`
	Matches       []TournamentMatchRow    `json:"matches"`
	Awards        []AwardWinner           `json:"awards"`
	AllTournament []models.PlayerIdentity `json:"allTournament"`
	Grid          *Grid                   `json:"grid"`
}

type matchViewService struct {
	src         DataSource
	matches     int
	concurrency int
}

// NewMatchViewService builds match views over src. matches is how many recent
// matches the leaderboard aggregates by default; concurrency bounds the number
// of match fetches in flight.
func NewMatchViewService(src DataSource, matches, concurrency int) MatchViewService {
	if matches <= 0 {
		matches = DefaultLeaderboardMatches
	}
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}
	return &matchViewService{src: src, matches: matches, concurrency: concurrency}
}

// RecentMatches renders the recent matches grid, newest first.
func (s *matchViewService) RecentMatches(ctx context.Context) (*MatchGrid, error) {
	matches, err := s.src.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return BuildMatchGrid(matches), nil
}

// MatchStats renders one match. Every player gets a single-match context so
// the per-match and per-minute modes apply to match pages too.
func (s *matchViewService) MatchStats(ctx context.Context, id int, opts GridOptions) (*MatchStatsView, error) {
	uber, err := s.src.GetMatchUber(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", id, err)
	}

	records := make([]models.PlayerRecord, len(uber.Players))
	for i, p := range uber.Players {
		records[i] = p
		if p.Context == nil {
			records[i].Context = &models.PlayerContext{
				MatchesPlayed: 1,
				TimePlayed:    float64(uber.Data.Duration),
			}
		}
	}

	meta := matchMeta(uber.Data)
	return &MatchStatsView{
		Match: MatchSummary{
			ID:        uber.ID,
			Server:    uber.Data.Server,
			Map:       uber.Data.Map,
			Score:     FormatScore(uber.Data.TeamOneScore, uber.Data.TeamTwoScore),
			Duration:  FormatDuration(uber.Data.Duration),
			StartTime: FormatTimestamp(uber.Data.StartTime),
			IsTourney: uber.Data.IsTourney,
			Winner:    uber.Data.Winner,
			TeamOne:   meta.TeamName(TeamOne),
			TeamTwo:   meta.TeamName(TeamTwo),
		},
		Grid: BuildPlayerGrid(records, opts, meta),
	}, nil
}

func matchMeta(d models.MatchData) GridMeta {
	meta := GridMeta{TeamNames: map[int]string{
		TeamOne: d.TeamOneName,
		TeamTwo: d.TeamTwoName,
	}}
	if d.Winner == TeamOne || d.Winner == TeamTwo {
		w := d.Winner
		meta.WinnerTeam = &w
	}
	return meta
}

// Leaderboard aggregates the limit most recent matches into one rated grid.
// Matches that disappeared upstream between listing and fetching are skipped.
func (s *matchViewService) Leaderboard(ctx context.Context, limit int, opts GridOptions) (*LeaderboardView, error) {
	if limit <= 0 {
		limit = s.matches
	}

	list, err := s.src.ListMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	list = append([]models.Match(nil), list...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Data.StartTime > list[j].Data.StartTime
	})
	if len(list) > limit {
		list = list[:limit]
	}

	ubers := make([]*models.Uber, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, m := range list {
		i, m := i, m
		g.Go(func() error {
			uber, err := s.src.GetMatchUber(gctx, m.ID)
			if errors.Is(err, models.ErrNotFound) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("match %d: %w", m.ID, err)
			}
			ubers[i] = uber
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fetched := make([]models.Uber, 0, len(ubers))
	for _, u := range ubers {
		if u != nil {
			fetched = append(fetched, *u)
		}
	}

	records := ComputeIndexes(AggregatePlayers(fetched))
	if len(opts.Sort) == 0 {
		opts.Sort = []SortKey{{Column: "kills", Desc: true}}
	}
	return &LeaderboardView{
		Matches: len(fetched),
		Skipped: len(list) - len(fetched),
		Grid:    BuildPlayerGrid(records, opts, GridMeta{}),
		Awards:  DetermineAwards(records),
	}, nil
}

type tournamentViewService struct {
	src DataSource
}

// NewTournamentViewService builds tournament views over src.
func NewTournamentViewService(src DataSource) TournamentViewService {
	return &tournamentViewService{src: src}
}

// Tournaments lists tournaments newest first.
func (s *tournamentViewService) Tournaments(ctx context.Context) ([]TournamentSummary, error) {
	items, err := s.src.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}

	out := make([]TournamentSummary, 0, len(items))
	for _, t := range items {
		out = append(out, TournamentSummary{
			ID:          t.ID,
			Name:        t.Name,
			Date:        FormatTimestamp(t.Date),
			MatchCount:  t.MatchCount,
			PlayerCount: t.PlayerCount,
			Captains:    t.Captains,
			WinnerTeam:  t.WinnerTeamID,
			sortKey:     t.Date,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].sortKey != out[j].sortKey {
			return out[i].sortKey > out[j].sortKey
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Tournament renders a tournament page. Players are grouped by their drafted
// team rather than the side they played on in any one match.
func (s *tournamentViewService) Tournament(ctx context.Context, id int, opts GridOptions) (*TournamentView, error) {
	t, err := s.src.GetTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tournament %d: %w", id, err)
	}

	meta := tournamentMeta(t)
	teams := make([]TournamentTeamView, 0, len(t.Teams))
	var records []models.PlayerRecord
	for _, team := range t.Teams {
		view := TournamentTeamView{
			ID:      team.ID,
			Name:    meta.TeamName(team.ID),
			Captain: team.Captain,
			Winner:  team.ID == t.WinnerTeamID,
		}
		for _, p := range team.Players {
			view.Players = append(view.Players, p.PlayerIdentity)
			p.Stats.Team = team.ID
			records = append(records, p)
		}
		teams = append(teams, view)
	}

	matches := make([]TournamentMatchRow, 0, len(t.Matches))
	for _, m := range t.Matches {
		matches = append(matches, TournamentMatchRow{
			MatchID:   m.MatchID,
			Server:    m.Server,
			TeamOne:   meta.TeamName(m.TeamOneID),
			TeamTwo:   meta.TeamName(m.TeamTwoID),
			Score:     FormatScore(m.TeamOneScore, m.TeamTwoScore),
			Duration:  FormatDuration(m.Duration),
			StartTime: FormatTimestamp(m.StartTime),
		})
	}

	return &TournamentView{
		ID:            id,
		Name:          t.Name,
		Date:          FormatTimestamp(t.Date),
		WinnerTeam:    t.WinnerTeamID,
		Teams:         teams,
		Matches:       matches,
		Awards:        tournamentAwards(t),
		AllTournament: t.AllTournament,
		Grid:          BuildPlayerGrid(records, opts, meta),
	}, nil
}

func tournamentMeta(t *models.TournamentDetail) GridMeta {
	meta := GridMeta{TeamNames: make(map[int]string, len(t.Teams))}
	for _, team := range t.Teams {
		if team.Captain.Username != "" {
			meta.TeamNames[team.ID] = "Team " + team.Captain.Username
		}
	}
	if t.WinnerTeamID != 0 {
		w := t.WinnerTeamID
		meta.WinnerTeam = &w
	}
	return meta
}

// tournamentAwards lists the upstream award winners in priority order,
// attaching each winner's score from their index record when present.
func tournamentAwards(t *models.TournamentDetail) []AwardWinner {
	winners := map[Award]models.PlayerIdentity{
		AwardMVP:      t.MVP.MVP,
		AwardOPOT:     t.MVP.OPOT,
		AwardDPOT:     t.MVP.DPOT,
		AwardOLDL:     t.MVP.OLDL,
		AwardPasser:   t.MVP.Passer,
		AwardReceiver: t.MVP.Receiver,
	}

	var out []AwardWinner
	for _, a := range AwardPriority {
		p := winners[a]
		if p.Username == "" && p.UUID == "" {
			continue
		}
		w := AwardWinner{Award: a, Label: a.Label(), Color: a.Color(), Player: p}
		if p.UUID == "" {
			out = append(out, w)
			continue
		}
		if rec, ok := t.FindPlayer(p.UUID); ok && rec.Indexes != nil {
			w.Score = a.score(*rec.Indexes)
		}
		out = append(out, w)
	}
	return out
}

// PlayerCard renders the hover card of one tournament player.
func (s *tournamentViewService) PlayerCard(ctx context.Context, id int, uuid string, mode Mode) (*HoverCard, error) {
	t, err := s.src.GetTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tournament %d: %w", id, err)
	}
	rec, ok := t.FindPlayer(uuid)
	if !ok {
		return nil, fmt.Errorf("player %s in tournament %d: %w", uuid, id, models.ErrNotFound)
	}
	return BuildHoverCard(rec, mode), nil
}
