package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fireballs/brady-stats/internal/logic"
	"github.com/fireballs/brady-stats/internal/models"
)

func TestParseGridFlagsInterleaved(t *testing.T) {
	opts, rest, err := parseGridFlags("match", []string{"-mode", "perMinute", "42", "-sort", "-kills", "-team", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"42"}, rest)
	assert.Equal(t, logic.ModePerMinute, opts.Mode)
	require.Len(t, opts.Sort, 1)
	assert.Equal(t, logic.SortKey{Column: "kills", Desc: true}, opts.Sort[0])
	require.NotNil(t, opts.Team)
	assert.Equal(t, 1, *opts.Team)
}

func TestParseGridFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown mode", []string{"-mode", "perSecond"}},
		{"unknown flag", []string{"-bogus"}},
		{"bad sort column", []string{"-sort", "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseGridFlags("match", tt.args)
			require.Error(t, err)
			assert.IsType(t, usageError{}, err)
		})
	}
}

func TestPositionalID(t *testing.T) {
	id, err := positionalID([]string{"7"}, 0, "match id")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-3"}} {
		_, err := positionalID(args, 0, "match id")
		assert.Error(t, err, "args %v", args)
	}
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "usage: statsview")

	stderr.Reset()
	assert.Equal(t, 2, run([]string{"frobnicate"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "frobnicate"`)
}

type stubMatches struct {
	logic.MatchViewService
	view *logic.MatchStatsView
	got  logic.GridOptions
}

func (s *stubMatches) MatchStats(ctx context.Context, id int, opts logic.GridOptions) (*logic.MatchStatsView, error) {
	s.got = opts
	return s.view, nil
}

func TestDispatchMatch(t *testing.T) {
	winner := logic.TeamOne
	records := []models.PlayerRecord{
		{
			PlayerIdentity: models.PlayerIdentity{Username: "alice", UUID: "a"},
			Stats:          models.RawStats{Kills: 6, Team: logic.TeamOne},
		},
		{
			PlayerIdentity: models.PlayerIdentity{Username: "bob", UUID: "b"},
			Stats:          models.RawStats{Kills: 2, Team: logic.TeamTwo},
		},
	}
	stub := &stubMatches{view: &logic.MatchStatsView{
		Match: logic.MatchSummary{ID: 9, Server: "NA", Map: "field", Score: "3 - 1", Duration: "5:00"},
		Grid:  logic.BuildPlayerGrid(records, logic.GridOptions{}, logic.GridMeta{WinnerTeam: &winner}),
	}}

	var out bytes.Buffer
	a := &app{out: &out, matches: stub}
	require.NoError(t, a.dispatch(context.Background(), "match", []string{"9", "-mode", "perMatch"}))

	assert.Equal(t, logic.ModePerMatch, stub.got.Mode)
	text := out.String()
	assert.True(t, strings.HasPrefix(text, "Match #9  NA  field  3 - 1  5:00"))
	assert.Contains(t, text, "*alice")
	assert.NotContains(t, text, "*bob")
}

func TestRenderHoverCard(t *testing.T) {
	rec := models.PlayerRecord{
		PlayerIdentity: models.PlayerIdentity{Username: "alice", UUID: "a"},
		Stats:          models.RawStats{Kills: 10, Deaths: 5},
		Context:        &models.PlayerContext{MatchesPlayed: 2, TimePlayed: 600},
		Indexes:        &models.PlayerIndexScores{Total: 1.26},
	}
	var out bytes.Buffer
	require.NoError(t, renderHoverCard(&out, logic.BuildHoverCard(rec, logic.ModePerMatch)))

	text := out.String()
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "2 matches, 10 minutes")
	assert.Contains(t, text, "1.3")
}
