package models

// PlayerList is a list of player identities. Older upstream builds send bare
// usernames instead of objects.
type PlayerList []PlayerIdentity

// MatchData is the match summary shared by the match list and uber payloads.
type MatchData struct {
	Server       string `json:"server"`
	StartTime    int64  `json:"start_time"` // unix milliseconds
	Duration     int    `json:"duration"`   // seconds
	Winner       int    `json:"winner"`
	TeamOneScore int    `json:"team_one_score"`
	TeamTwoScore int    `json:"team_two_score"`
	Map          string `json:"map"`
	IsTourney    bool   `json:"is_tourney"`
	TeamOneName  string `json:"team_one_name,omitempty"`
	TeamTwoName  string `json:"team_two_name,omitempty"`
	TeamOneColor int    `json:"team_one_color,omitempty"`
	TeamTwoColor int    `json:"team_two_color,omitempty"`
}

// Match is one entry of the recent matches list.
type Match struct {
	ID      int        `json:"id"`
	Data    MatchData  `json:"data"`
	Players PlayerList `json:"players"`
}

// Uber is a match together with every player's stat record.
type Uber struct {
	ID      int            `json:"id"`
	Data    MatchData      `json:"data"`
	Players []PlayerRecord `json:"players"`
}
