// Command statsview prints match and tournament stat grids in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fireballs/brady-stats/internal/logic"
	"github.com/fireballs/brady-stats/internal/models"
	"github.com/fireballs/brady-stats/internal/upstream"
)

const usage = `usage: statsview [-api URL] [-timeout D] [-v] <command> [flags]

commands:
  matches                     recent matches
  match <id>                  one match grid
  leaderboard                 players aggregated over recent matches
  tournaments                 tournament list
  tournament <id>             tournament grid, teams and awards
  player <tournament> <uuid>  hover card of one tournament player

grid flags: -mode total|perMatch|perMinute  -sort team,-kills  -q name  -team n
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("statsview", flag.ContinueOnError)
	global.SetOutput(stderr)
	global.Usage = func() { fmt.Fprint(stderr, usage) }
	apiRoot := global.String("api", upstream.DefaultAPIRoot, "upstream API root")
	timeout := global.Duration("timeout", 30*time.Second, "overall timeout")
	verbose := global.Bool("v", false, "log upstream requests")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	client := upstream.NewClient(upstream.ClientConfig{APIRoot: *apiRoot, Logger: logger})
	app := &app{
		out:         stdout,
		matches:     logic.NewMatchViewService(client, 0, 0),
		tournaments: logic.NewTournamentViewService(client),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	if err := app.dispatch(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		var uerr usageError
		if errors.As(err, &uerr) {
			fmt.Fprintf(stderr, "statsview: %v\n\n%s", err, usage)
			return 2
		}
		if errors.Is(err, models.ErrNotFound) {
			fmt.Fprintf(stderr, "statsview: not found: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "statsview: %v\n", err)
		return 1
	}
	return 0
}

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

type app struct {
	out         io.Writer
	matches     logic.MatchViewService
	tournaments logic.TournamentViewService
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "matches":
		grid, err := a.matches.RecentMatches(ctx)
		if err != nil {
			return err
		}
		return renderMatchGrid(a.out, grid)

	case "match":
		opts, rest, err := parseGridFlags("match", args)
		if err != nil {
			return err
		}
		id, err := positionalID(rest, 0, "match id")
		if err != nil {
			return err
		}
		view, err := a.matches.MatchStats(ctx, id, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Match #%d  %s  %s  %s  %s\n\n", view.Match.ID, view.Match.Server, view.Match.Map, view.Match.Score, view.Match.Duration)
		return renderPlayerGrid(a.out, view.Grid)

	case "leaderboard":
		fs := newGridFlagSet("leaderboard")
		limit := fs.Int("limit", 0, "matches to aggregate")
		opts, _, err := parseGridFlagSet(fs, args)
		if err != nil {
			return err
		}
		view, err := a.matches.Leaderboard(ctx, *limit, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Leaderboard over %d matches (%d skipped)\n\n", view.Matches, view.Skipped)
		if err := renderPlayerGrid(a.out, view.Grid); err != nil {
			return err
		}
		return renderAwards(a.out, view.Awards.Winners, view.Awards.AllTournament)

	case "tournaments":
		list, err := a.tournaments.Tournaments(ctx)
		if err != nil {
			return err
		}
		return renderTournaments(a.out, list)

	case "tournament":
		opts, rest, err := parseGridFlags("tournament", args)
		if err != nil {
			return err
		}
		id, err := positionalID(rest, 0, "tournament id")
		if err != nil {
			return err
		}
		view, err := a.tournaments.Tournament(ctx, id, opts)
		if err != nil {
			return err
		}
		return renderTournament(a.out, view)

	case "player":
		opts, rest, err := parseGridFlags("player", args)
		if err != nil {
			return err
		}
		id, err := positionalID(rest, 0, "tournament id")
		if err != nil {
			return err
		}
		if len(rest) < 2 {
			return usageError{"missing player uuid"}
		}
		card, err := a.tournaments.PlayerCard(ctx, id, rest[1], opts.Mode)
		if err != nil {
			return err
		}
		return renderHoverCard(a.out, card)
	}
	return usageError{fmt.Sprintf("unknown command %q", cmd)}
}

type gridFlags struct {
	mode, sort, query string
	team              int
}

func newGridFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseGridFlags(name string, args []string) (logic.GridOptions, []string, error) {
	return parseGridFlagSet(newGridFlagSet(name), args)
}

// parseGridFlagSet adds the grid flags to fs and parses args. Flags may come
// before or after positional arguments.
func parseGridFlagSet(fs *flag.FlagSet, args []string) (logic.GridOptions, []string, error) {
	var f gridFlags
	fs.StringVar(&f.mode, "mode", "", "total, perMatch or perMinute")
	fs.StringVar(&f.sort, "sort", "", "comma separated columns, '-' for descending")
	fs.StringVar(&f.query, "q", "", "username filter")
	fs.IntVar(&f.team, "team", -1, "team filter")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return logic.GridOptions{}, nil, usageError{err.Error()}
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	mode, err := logic.ParseMode(f.mode)
	if err != nil {
		return logic.GridOptions{}, nil, usageError{err.Error()}
	}
	keys, err := logic.ParseSort(f.sort)
	if err != nil {
		return logic.GridOptions{}, nil, usageError{err.Error()}
	}
	opts := logic.GridOptions{Mode: mode, Sort: keys, Query: f.query}
	if f.team >= 0 {
		team := f.team
		opts.Team = &team
	}
	return opts, positional, nil
}

func positionalID(args []string, i int, what string) (int, error) {
	if len(args) <= i {
		return 0, usageError{"missing " + what}
	}
	id, err := strconv.Atoi(args[i])
	if err != nil || id <= 0 {
		return 0, usageError{fmt.Sprintf("invalid %s %q", what, args[i])}
	}
	return id, nil
}
