package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fireballs/brady-stats/internal/logic"
	"github.com/fireballs/brady-stats/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeRow(tw io.Writer, cells []string) {
	fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
}

func renderPlayerGrid(w io.Writer, g *logic.Grid) error {
	if len(g.Rows) == 0 {
		fmt.Fprintln(w, "no players")
		return nil
	}
	fmt.Fprintf(w, "Mode: %s\n", g.ModeLabel)

	tw := newTable(w)
	headers := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		headers[i] = c.Header
	}
	writeRow(tw, headers)
	for _, r := range g.Rows {
		cells := make([]string, len(g.Columns))
		for i, c := range g.Columns {
			cells[i] = r.Cells[c.Key]
			if c.Key == logic.ColumnPlayer && r.Winner {
				cells[i] = "*" + cells[i]
			}
		}
		writeRow(tw, cells)
	}
	return tw.Flush()
}

func renderMatchGrid(w io.Writer, g *logic.MatchGrid) error {
	if len(g.Rows) == 0 {
		fmt.Fprintln(w, "no matches")
		return nil
	}
	tw := newTable(w)
	headers := make([]string, len(g.Columns))
	for i, c := range g.Columns {
		headers[i] = c.Header
	}
	writeRow(tw, headers)
	for _, r := range g.Rows {
		writeRow(tw, []string{
			fmt.Sprint(r.ID),
			r.Server,
			fmt.Sprint(len(r.Players)),
			r.Map,
			r.Score,
			r.Duration,
			r.StartTime,
		})
	}
	return tw.Flush()
}

func renderTournaments(w io.Writer, list []logic.TournamentSummary) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "no tournaments")
		return nil
	}
	tw := newTable(w)
	writeRow(tw, []string{"#", "Name", "Date", "Matches", "Players"})
	for _, t := range list {
		writeRow(tw, []string{
			fmt.Sprint(t.ID),
			t.Name,
			t.Date,
			fmt.Sprint(t.MatchCount),
			fmt.Sprint(t.PlayerCount),
		})
	}
	return tw.Flush()
}

func renderTournament(w io.Writer, t *logic.TournamentView) error {
	fmt.Fprintf(w, "%s  %s\n\n", t.Name, t.Date)

	for _, team := range t.Teams {
		marker := ""
		if team.Winner {
			marker = " (winner)"
		}
		names := make([]string, len(team.Players))
		for i, p := range team.Players {
			names[i] = p.Username
		}
		fmt.Fprintf(w, "%s%s: %s\n", team.Name, marker, strings.Join(names, ", "))
	}
	fmt.Fprintln(w)

	if len(t.Matches) > 0 {
		tw := newTable(w)
		writeRow(tw, []string{"Match", "Home", "Away", "Score", "Duration"})
		for _, m := range t.Matches {
			writeRow(tw, []string{fmt.Sprint(m.MatchID), m.TeamOne, m.TeamTwo, m.Score, m.Duration})
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if err := renderPlayerGrid(w, t.Grid); err != nil {
		return err
	}
	return renderAwards(w, t.Awards, t.AllTournament)
}

func renderAwards(w io.Writer, winners []logic.AwardWinner, team []models.PlayerIdentity) error {
	if len(winners) == 0 && len(team) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw := newTable(w)
	for _, a := range winners {
		writeRow(tw, []string{a.Label, a.Player.Username, logic.FormatIndex(a.Score)})
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(team) > 0 {
		names := make([]string, len(team))
		for i, p := range team {
			names[i] = p.Username
		}
		fmt.Fprintf(w, "All-Tournament: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func renderHoverCard(w io.Writer, c *logic.HoverCard) error {
	fmt.Fprintf(w, "%s  (%s)\n", c.Username, c.ModeLabel)
	fmt.Fprintf(w, "%d matches, %d minutes\n\n", c.MatchesPlayed, c.MinutesPlayed)

	tw := newTable(w)
	for _, s := range c.Stats {
		writeRow(tw, []string{s.Label, s.Display})
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = newTable(w)
	for _, idx := range c.Indexes {
		writeRow(tw, []string{idx.Label, idx.Display})
	}
	return tw.Flush()
}
