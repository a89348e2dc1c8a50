package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// parseFlexFloat decodes a JSON number, a quoted number, or null.
// The second result is false when the value is absent or unusable.
func parseFlexFloat(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, string(raw) != "null"
	}

	// Value is a JSON string - coerce
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON implements flexible JSON unmarshaling for stat bags. Missing,
// null, or unparseable counters decode as 0, and string-encoded numbers are
// coerced, so a partial payload from an abandoned match still decodes.
func (s *RawStats) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias RawStats
	a := (*Alias)(s)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal stats: %w", err)
	}

	*s = RawStats{}
	for _, f := range StatFields {
		if v, ok := parseFlexFloat(raw[f.Key]); ok {
			f.Set(s, v)
		}
	}
	if v, ok := parseFlexFloat(raw["team"]); ok {
		s.Team = int(v)
	}
	return nil
}

type playerRecordWire struct {
	Username      string             `json:"username"`
	UUID          string             `json:"uuid"`
	Stats         RawStats           `json:"stats"`
	MatchesPlayed json.RawMessage    `json:"matchesPlayed,omitempty"`
	TimePlayed    json.RawMessage    `json:"timePlayed,omitempty"`
	Indexes       *PlayerIndexScores `json:"indexes,omitempty"`
}

// UnmarshalJSON decodes a player entry. The normalization context is only
// set when the payload carries matchesPlayed or timePlayed.
func (p *PlayerRecord) UnmarshalJSON(data []byte) error {
	var w playerRecordWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("player record: %w", err)
	}

	*p = PlayerRecord{
		PlayerIdentity: PlayerIdentity{Username: w.Username, UUID: w.UUID},
		Stats:          w.Stats,
		Indexes:        w.Indexes,
	}

	matches, okMatches := parseFlexFloat(w.MatchesPlayed)
	seconds, okTime := parseFlexFloat(w.TimePlayed)
	if okMatches || okTime {
		p.Context = &PlayerContext{
			MatchesPlayed: int(matches),
			TimePlayed:    seconds,
		}
	}
	return nil
}

// MarshalJSON emits the same shape UnmarshalJSON accepts.
func (p PlayerRecord) MarshalJSON() ([]byte, error) {
	w := struct {
		Username      string             `json:"username"`
		UUID          string             `json:"uuid"`
		Stats         RawStats           `json:"stats"`
		MatchesPlayed *int               `json:"matchesPlayed,omitempty"`
		TimePlayed    *float64           `json:"timePlayed,omitempty"`
		Indexes       *PlayerIndexScores `json:"indexes,omitempty"`
	}{
		Username: p.Username,
		UUID:     p.UUID,
		Stats:    p.Stats,
		Indexes:  p.Indexes,
	}
	if p.Context != nil {
		w.MatchesPlayed = &p.Context.MatchesPlayed
		w.TimePlayed = &p.Context.TimePlayed
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts a list of player objects or bare usernames.
func (l *PlayerList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("player list: %w", err)
	}

	out := make(PlayerList, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, PlayerIdentity{Username: name})
			continue
		}
		var p PlayerIdentity
		if err := json.Unmarshal(item, &p); err != nil {
			continue
		}
		out = append(out, p)
	}
	*l = out
	return nil
}
