package models

// PlayerIdentity identifies a player in an upstream payload.
type PlayerIdentity struct {
	Username string `json:"username"`
	UUID     string `json:"uuid"`
}

// RawStats holds per-player counters for one match or aggregated across matches.
// Counters are float64 because several of them (damage, block distances) are
// fractional upstream and every counter becomes fractional once normalized.
type RawStats struct {
	Kills                  float64 `json:"kills"`
	Deaths                 float64 `json:"deaths"`
	Assists                float64 `json:"assists"`
	Killstreak             float64 `json:"killstreak"`
	DamageDealt            float64 `json:"damage_dealt"`
	DamageTaken            float64 `json:"damage_taken"`
	DamageCarrier          float64 `json:"damage_carrier"`
	Pickups                float64 `json:"pickups"`
	Throws                 float64 `json:"throws"`
	Passes                 float64 `json:"passes"`
	Catches                float64 `json:"catches"`
	Strips                 float64 `json:"strips"`
	Touchdowns             float64 `json:"touchdowns"`
	TouchdownPasses        float64 `json:"touchdown_passes"`
	PassingBlocks          float64 `json:"passing_blocks"`
	ReceiveBlocks          float64 `json:"receive_blocks"`
	DefensiveInterceptions float64 `json:"defensive_interceptions"`
	PassInterceptions      float64 `json:"pass_interceptions"`

	// Team is an opaque identifier, not a statistic.
	Team int `json:"team"`
}

// PlayerContext carries the divisors used for normalization.
type PlayerContext struct {
	MatchesPlayed int     `json:"matchesPlayed"`
	TimePlayed    float64 `json:"timePlayed"` // seconds
}

// PlayerIndexScores are the MVP index scores computed upstream.
type PlayerIndexScores struct {
	Total     float64 `json:"total"`
	Offense   float64 `json:"offense"`
	Defense   float64 `json:"defense"`
	PvP       float64 `json:"pvp"`
	Passing   float64 `json:"passing"`
	Receiving float64 `json:"receiving"`
}

// PlayerRecord is one player entry of a match or tournament payload.
// Context and Indexes are nil when the payload does not carry them.
type PlayerRecord struct {
	PlayerIdentity
	Stats   RawStats
	Context *PlayerContext
	Indexes *PlayerIndexScores
}

// StatField describes one counter of RawStats.
type StatField struct {
	Key        string
	Label      string // grid header
	HoverLabel string // empty when the hover card omits the field
	Continuous bool   // fractional quantity (damage, block distance)
	Normalizes bool   // divided by the normalization divisor
	ref        func(*RawStats) *float64
}

// Value reads the field from s.
func (f StatField) Value(s RawStats) float64 {
	return *f.ref(&s)
}

// Set writes v into the field of s.
func (f StatField) Set(s *RawStats, v float64) {
	*f.ref(s) = v
}

// StatFields lists every counter of RawStats in display order.
// Team is not a counter and is therefore absent.
var StatFields = []StatField{
	{Key: "kills", Label: "Kills", HoverLabel: "Kills", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Kills }},
	{Key: "deaths", Label: "Deaths", HoverLabel: "Deaths", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Deaths }},
	{Key: "assists", Label: "Assists", HoverLabel: "Assists", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Assists }},
	{Key: "killstreak", Label: "Streak", HoverLabel: "Streak", Normalizes: false, ref: func(s *RawStats) *float64 { return &s.Killstreak }},
	{Key: "damage_dealt", Label: "DMG Out", HoverLabel: "DMG Out", Continuous: true, Normalizes: true, ref: func(s *RawStats) *float64 { return &s.DamageDealt }},
	{Key: "damage_taken", Label: "DMG In", HoverLabel: "DMG In", Continuous: true, Normalizes: true, ref: func(s *RawStats) *float64 { return &s.DamageTaken }},
	{Key: "pickups", Label: "Pickups", HoverLabel: "Pickups", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Pickups }},
	{Key: "throws", Label: "Throws", HoverLabel: "Throws", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Throws }},
	{Key: "passes", Label: "Passes", HoverLabel: "Passes", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Passes }},
	{Key: "catches", Label: "Catches", HoverLabel: "Catches", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Catches }},
	{Key: "strips", Label: "Strips", HoverLabel: "Strips", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Strips }},
	{Key: "touchdowns", Label: "TDs", HoverLabel: "Touchdowns", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.Touchdowns }},
	{Key: "touchdown_passes", Label: "TD Passes", HoverLabel: "TD Passes", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.TouchdownPasses }},
	{Key: "passing_blocks", Label: "Pass (m)", HoverLabel: "Pass (m)", Continuous: true, Normalizes: true, ref: func(s *RawStats) *float64 { return &s.PassingBlocks }},
	{Key: "receive_blocks", Label: "Catch (m)", HoverLabel: "Catch (m)", Continuous: true, Normalizes: true, ref: func(s *RawStats) *float64 { return &s.ReceiveBlocks }},
	{Key: "defensive_interceptions", Label: "Def Int", HoverLabel: "Def Int", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.DefensiveInterceptions }},
	{Key: "pass_interceptions", Label: "Pass Int", HoverLabel: "Pass Int", Normalizes: true, ref: func(s *RawStats) *float64 { return &s.PassInterceptions }},
	{Key: "damage_carrier", Label: "DMG Carrier", Continuous: true, Normalizes: true, ref: func(s *RawStats) *float64 { return &s.DamageCarrier }},
}

// LookupStatField returns the field with the given JSON key.
func LookupStatField(key string) (StatField, bool) {
	for _, f := range StatFields {
		if f.Key == key {
			return f, true
		}
	}
	return StatField{}, false
}
