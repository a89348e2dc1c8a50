package logic

import "github.com/fireballs/brady-stats/internal/models"

// AvatarURL is the face render used next to player names.
func AvatarURL(uuid string) string {
	return "https://nmsr.nickac.dev/face/" + uuid
}

// HoverStatRow is one stat line of a hover card.
type HoverStatRow struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// HoverCard is the stat popup shown over a player name.
type HoverCard struct {
	Username      string         `json:"username"`
	UUID          string         `json:"uuid"`
	AvatarURL     string         `json:"avatarUrl"`
	MatchesPlayed int            `json:"matchesPlayed"`
	MinutesPlayed int            `json:"minutesPlayed"`
	Mode          Mode           `json:"mode"`
	ModeLabel     string         `json:"modeLabel"`
	Stats         []HoverStatRow `json:"stats"`
	Indexes       []IndexRow     `json:"indexes"`
}

// BuildHoverCard renders record under mode. Index scores are shown as given.
func BuildHoverCard(record models.PlayerRecord, mode Mode) *HoverCard {
	var ctx models.PlayerContext
	if record.Context != nil {
		ctx = *record.Context
	}

	normalized := NormalizePlayer(record, mode)
	rows := make([]HoverStatRow, 0, len(models.StatFields))
	for _, f := range models.StatFields {
		if f.HoverLabel == "" {
			continue
		}
		v := f.Value(normalized.Stats)
		decimal := f.Continuous || (mode != ModeTotal && f.Normalizes)
		rows = append(rows, HoverStatRow{
			Key:     f.Key,
			Label:   f.HoverLabel,
			Value:   v,
			Display: FormatHoverStat(v, decimal),
		})
	}

	return &HoverCard{
		Username:      record.Username,
		UUID:          record.UUID,
		AvatarURL:     AvatarURL(record.UUID),
		MatchesPlayed: ctx.MatchesPlayed,
		MinutesPlayed: MinutesPlayed(ctx.TimePlayed),
		Mode:          mode,
		ModeLabel:     mode.Label(),
		Stats:         rows,
		Indexes:       GetIndexRows(record.Indexes),
	}
}
