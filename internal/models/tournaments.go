package models

import "strings"

// TournamentListItem is one entry of the tournament list.
type TournamentListItem struct {
	ID           int              `json:"id"`
	Captains     []PlayerIdentity `json:"captains"`
	Date         int64            `json:"date"` // unix milliseconds
	MatchCount   int              `json:"matchCount"`
	Name         string           `json:"name"`
	PlayerCount  int              `json:"playerCount"`
	WinnerTeamID int              `json:"winnerTeamId"`
}

// TournamentMatch is a match played as part of a tournament.
type TournamentMatch struct {
	Duration     int    `json:"duration"`
	MatchID      int    `json:"matchId"`
	Server       string `json:"server"`
	StartTime    int64  `json:"startTime"`
	TeamOneID    int    `json:"teamOneId"`
	TeamOneScore int    `json:"teamOneScore"`
	TeamTwoID    int    `json:"teamTwoId"`
	TeamTwoScore int    `json:"teamTwoScore"`
}

// TournamentAwards names the award winners of a tournament.
type TournamentAwards struct {
	DPOT     PlayerIdentity `json:"dpot"`
	MVP      PlayerIdentity `json:"mvp"`
	OLDL     PlayerIdentity `json:"oldl"`
	OPOT     PlayerIdentity `json:"opot"`
	Passer   PlayerIdentity `json:"passer"`
	Receiver PlayerIdentity `json:"receiver"`
}

// TournamentTeam is a drafted team with aggregated player records.
type TournamentTeam struct {
	Captain PlayerIdentity `json:"captain"`
	ID      int            `json:"id"`
	Players []PlayerRecord `json:"players"`
}

// TournamentDetail is the full tournament payload.
type TournamentDetail struct {
	AllTournament []PlayerIdentity  `json:"allTournament"`
	Date          int64             `json:"date"`
	Matches       []TournamentMatch `json:"matches"`
	MVP           TournamentAwards  `json:"mvp"`
	Name          string            `json:"name"`
	Teams         []TournamentTeam  `json:"teams"`
	WinnerTeamID  int               `json:"winnerTeamId"`
}

// Players flattens every team's players into one slice.
func (t *TournamentDetail) Players() []PlayerRecord {
	var out []PlayerRecord
	for _, team := range t.Teams {
		out = append(out, team.Players...)
	}
	return out
}

// FindPlayer returns the record for uuid, if any team has it. Dashed and
// undashed forms of the same UUID match.
func (t *TournamentDetail) FindPlayer(uuid string) (PlayerRecord, bool) {
	want := compactUUID(uuid)
	if want == "" {
		return PlayerRecord{}, false
	}
	for _, team := range t.Teams {
		for _, p := range team.Players {
			if strings.EqualFold(compactUUID(p.UUID), want) {
				return p, true
			}
		}
	}
	return PlayerRecord{}, false
}

func compactUUID(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "-", "")
}
