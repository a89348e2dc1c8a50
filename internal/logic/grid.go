package logic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fireballs/brady-stats/internal/models"
)

// Non-stat grid columns
const (
	ColumnTeam   = "team"
	ColumnPlayer = "player"
)

// SortKey orders grid rows by one column.
type SortKey struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// DefaultPlayerSort groups by team, then ranks by kills.
var DefaultPlayerSort = []SortKey{{Column: ColumnTeam}, {Column: "kills", Desc: true}}

// GridOptions controls how a player grid is built.
type GridOptions struct {
	Mode  Mode
	Sort  []SortKey
	Query string // case-insensitive username substring
	Team  *int
}

// GridMeta carries display context the records do not have.
type GridMeta struct {
	TeamNames  map[int]string
	WinnerTeam *int
}

// Column describes one grid column.
type Column struct {
	Key     string `json:"key"`
	Header  string `json:"header"`
	Numeric bool   `json:"numeric"`
	Pinned  bool   `json:"pinned,omitempty"`
}

// GridRow is one normalized player with formatted cells.
type GridRow struct {
	Username string                    `json:"username"`
	UUID     string                    `json:"uuid"`
	Team     int                       `json:"team"`
	TeamName string                    `json:"teamName"`
	Winner   bool                      `json:"winner"`
	Stats    models.RawStats           `json:"stats"`
	Cells    map[string]string         `json:"cells"`
	Context  *models.PlayerContext     `json:"context,omitempty"`
	Indexes  *models.PlayerIndexScores `json:"indexes,omitempty"`
}

// Grid is a rendered player stats grid.
type Grid struct {
	Mode      Mode      `json:"mode"`
	ModeLabel string    `json:"modeLabel"`
	Columns   []Column  `json:"columns"`
	Rows      []GridRow `json:"rows"`
}

// PlayerColumns is the column set of every player grid.
var PlayerColumns = buildPlayerColumns()

func buildPlayerColumns() []Column {
	cols := []Column{
		{Key: ColumnTeam, Header: "Team"},
		{Key: ColumnPlayer, Header: "Player", Pinned: true},
	}
	for _, f := range models.StatFields {
		cols = append(cols, Column{Key: f.Key, Header: f.Label, Numeric: true})
	}
	return cols
}

// IsSortColumn reports whether key names a sortable player grid column.
func IsSortColumn(key string) bool {
	if key == ColumnTeam || key == ColumnPlayer {
		return true
	}
	_, ok := models.LookupStatField(key)
	return ok
}

// ParseSort parses "team,-kills" into sort keys. A leading '-' sorts
// descending. The empty string yields nil.
func ParseSort(s string) ([]SortKey, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var keys []SortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := SortKey{Column: part}
		if strings.HasPrefix(part, "-") {
			key = SortKey{Column: part[1:], Desc: true}
		}
		if !IsSortColumn(key.Column) {
			return nil, fmt.Errorf("unknown sort column %q", key.Column)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// TeamName resolves a team id to its display name.
func (m GridMeta) TeamName(team int) string {
	if name, ok := m.TeamNames[team]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("Team %d", team)
}

// BuildPlayerGrid normalizes, filters, sorts and formats records.
// The input slice is not modified.
func BuildPlayerGrid(records []models.PlayerRecord, opts GridOptions, meta GridMeta) *Grid {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	rows := make([]GridRow, 0, len(records))
	for _, rec := range records {
		if query != "" && !strings.Contains(strings.ToLower(rec.Username), query) {
			continue
		}
		if opts.Team != nil && rec.Stats.Team != *opts.Team {
			continue
		}
		rows = append(rows, buildRow(NormalizePlayer(rec, opts.Mode), opts.Mode, meta))
	}

	keys := opts.Sort
	if len(keys) == 0 {
		keys = DefaultPlayerSort
	}
	sortRows(rows, keys)

	return &Grid{
		Mode:      opts.Mode,
		ModeLabel: opts.Mode.GridLabel(),
		Columns:   PlayerColumns,
		Rows:      rows,
	}
}

func buildRow(rec models.PlayerRecord, mode Mode, meta GridMeta) GridRow {
	teamName := meta.TeamName(rec.Stats.Team)
	cells := make(map[string]string, len(models.StatFields)+2)
	cells[ColumnTeam] = teamName
	cells[ColumnPlayer] = rec.Username
	for _, f := range models.StatFields {
		cells[f.Key] = FormatStat(f, f.Value(rec.Stats), mode)
	}

	return GridRow{
		Username: rec.Username,
		UUID:     rec.UUID,
		Team:     rec.Stats.Team,
		TeamName: teamName,
		Winner:   meta.WinnerTeam != nil && rec.Stats.Team == *meta.WinnerTeam,
		Stats:    rec.Stats,
		Cells:    cells,
		Context:  rec.Context,
		Indexes:  rec.Indexes,
	}
}

func sortRows(rows []GridRow, keys []SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := compareColumn(rows[i], rows[j], k.Column)
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return strings.ToLower(rows[i].Username) < strings.ToLower(rows[j].Username)
	})
}

func compareColumn(a, b GridRow, column string) int {
	switch column {
	case ColumnTeam:
		return compareInt(a.Team, b.Team)
	case ColumnPlayer:
		return strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username))
	}
	f, ok := models.LookupStatField(column)
	if !ok {
		return 0
	}
	return compareFloat(f.Value(a.Stats), f.Value(b.Stats))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// MatchRow is one row of the recent matches grid.
type MatchRow struct {
	ID        int      `json:"id"`
	Server    string   `json:"server"`
	Players   []string `json:"players"`
	Map       string   `json:"map"`
	Score     string   `json:"score"`
	Duration  string   `json:"duration"`
	StartTime string   `json:"startTime"`
	IsTourney bool     `json:"isTourney"`
	Winner    int      `json:"winner"`
	StartedAt int64    `json:"startedAt"`
}

// MatchGrid is the rendered recent matches grid.
type MatchGrid struct {
	Columns []Column   `json:"columns"`
	Rows    []MatchRow `json:"rows"`
}

// MatchColumns is the column set of the recent matches grid.
var MatchColumns = []Column{
	{Key: "id", Header: "#", Numeric: true},
	{Key: "server", Header: "Server"},
	{Key: "players", Header: "Players"},
	{Key: "map", Header: "Map"},
	{Key: "score", Header: "Score"},
	{Key: "duration", Header: "Duration", Numeric: true},
	{Key: "startTime", Header: "Start Time"},
}

// BuildMatchGrid formats matches newest first.
func BuildMatchGrid(matches []models.Match) *MatchGrid {
	rows := make([]MatchRow, 0, len(matches))
	for _, m := range matches {
		names := make([]string, 0, len(m.Players))
		for _, p := range m.Players {
			names = append(names, p.Username)
		}
		rows = append(rows, MatchRow{
			ID:        m.ID,
			Server:    m.Data.Server,
			Players:   names,
			Map:       strings.ToUpper(m.Data.Map),
			Score:     FormatScore(m.Data.TeamOneScore, m.Data.TeamTwoScore),
			Duration:  FormatDuration(m.Data.Duration),
			StartTime: FormatTimestamp(m.Data.StartTime),
			IsTourney: m.Data.IsTourney,
			Winner:    m.Data.Winner,
			StartedAt: m.Data.StartTime,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].StartedAt != rows[j].StartedAt {
			return rows[i].StartedAt > rows[j].StartedAt
		}
		return rows[i].ID > rows[j].ID
	})

	return &MatchGrid{Columns: MatchColumns, Rows: rows}
}
