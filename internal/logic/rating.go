package logic

import (
	"math"
	"sort"

	"github.com/fireballs/brady-stats/internal/models"
)

// Category weights. Each weighted score is a linear combination of
// aggregated counters.
const (
	WeightTouchdownPass    = 11.0
	WeightPassInterception = -1.4
	WeightPassingBlock     = 0.03

	WeightTouchdown    = 11.0
	WeightReceiveBlock = 0.03
	WeightCatch        = 0.09

	WeightDamageCarrier         = 0.055
	WeightStrip                 = 6.0
	WeightDefensiveInterception = 6.0

	WeightDamageDealt = 0.015
	WeightKill        = 0.085
)

// PriorMatches is how many average matches are blended into every rating.
const PriorMatches = 2.0

// minAverage is the smallest population average an index is divided by.
const minAverage = 0.001

// AllTournamentSize is the number of players on the all-tournament team.
const AllTournamentSize = 5

// WeightedScores are the per-category weighted sums of one player.
type WeightedScores struct {
	Passing   float64
	Receiving float64
	Defense   float64
	PvP       float64
}

func (w WeightedScores) Offense() float64 { return w.Passing + w.Receiving }

func (w WeightedScores) Total() float64 { return w.Offense() + w.Defense + w.PvP }

// WeighStats computes the weighted scores of aggregated stats.
func WeighStats(s models.RawStats) WeightedScores {
	return WeightedScores{
		Passing: WeightTouchdownPass*s.TouchdownPasses +
			WeightPassInterception*s.PassInterceptions +
			WeightPassingBlock*s.PassingBlocks,
		Receiving: WeightTouchdown*s.Touchdowns +
			WeightReceiveBlock*s.ReceiveBlocks +
			WeightCatch*s.Catches,
		Defense: WeightDamageCarrier*s.DamageCarrier +
			WeightStrip*s.Strips +
			WeightDefensiveInterception*s.DefensiveInterceptions,
		PvP: WeightDamageDealt*s.DamageDealt + WeightKill*s.Kills,
	}
}

// AggregateStats adds s to acc. Killstreak keeps the maximum and team keeps
// the accumulator's value.
func AggregateStats(acc, s models.RawStats) models.RawStats {
	out := acc
	for _, f := range models.StatFields {
		if f.Key == "killstreak" {
			f.Set(&out, math.Max(f.Value(acc), f.Value(s)))
			continue
		}
		f.Set(&out, f.Value(acc)+f.Value(s))
	}
	return out
}

// AggregatePlayers folds per-match records into one record per player.
// matchesPlayed counts the matches a player appears in and timePlayed sums
// their durations. Players are returned in first-seen order; the team of the
// first appearance is kept.
func AggregatePlayers(matches []models.Uber) []models.PlayerRecord {
	index := make(map[string]int)
	var out []models.PlayerRecord

	for _, m := range matches {
		for _, p := range m.Players {
			key := p.UUID
			if key == "" {
				key = p.Username
			}
			i, ok := index[key]
			if !ok {
				index[key] = len(out)
				out = append(out, models.PlayerRecord{
					PlayerIdentity: p.PlayerIdentity,
					Stats:          models.RawStats{Team: p.Stats.Team},
					Context:        &models.PlayerContext{},
				})
				i = len(out) - 1
			}
			rec := &out[i]
			rec.Stats = AggregateStats(rec.Stats, p.Stats)
			rec.Context.MatchesPlayed++
			rec.Context.TimePlayed += float64(m.Data.Duration)
		}
	}
	return out
}

// ComputeIndexes fills Indexes on every record from its aggregated stats.
// Each category is a Bayesian average that blends the player's weighted score
// with the population mean over PriorMatches phantom matches, then divided by
// the population mean so an average player scores 1.
func ComputeIndexes(records []models.PlayerRecord) []models.PlayerRecord {
	out := make([]models.PlayerRecord, len(records))
	copy(out, records)
	if len(out) == 0 {
		return out
	}

	weighted := make([]WeightedScores, len(out))
	var avg WeightedScores
	n := float64(len(out))
	for i, r := range out {
		w := WeighStats(r.Stats)
		weighted[i] = w
		avg.Passing += w.Passing / n
		avg.Receiving += w.Receiving / n
		avg.Defense += w.Defense / n
		avg.PvP += w.PvP / n
	}

	for i, r := range out {
		games := 0.0
		if r.Context != nil {
			games = float64(r.Context.MatchesPlayed)
		}
		w := weighted[i]
		idx := models.PlayerIndexScores{
			Offense:   indexScore(w.Offense(), avg.Offense(), games),
			Passing:   indexScore(w.Passing, avg.Passing, games),
			Receiving: indexScore(w.Receiving, avg.Receiving, games),
			Defense:   indexScore(w.Defense, avg.Defense, games),
			PvP:       indexScore(w.PvP, avg.PvP, games),
			Total:     indexScore(w.Total(), avg.Total(), games),
		}
		out[i].Indexes = &idx
	}
	return out
}

func indexScore(w, avg, games float64) float64 {
	rating := (w*games + avg*PriorMatches) / (games + PriorMatches)
	if math.Abs(avg) <= minAverage {
		return 0
	}
	return rating / avg
}

// AwardWinner is one award and the player who won it.
type AwardWinner struct {
	Award  Award                 `json:"award"`
	Label  string                `json:"label"`
	Color  string                `json:"color"`
	Player models.PlayerIdentity `json:"player"`
	Score  float64               `json:"score"`
}

// Awards is the award table of a set of rated players.
type Awards struct {
	Winners       []AwardWinner           `json:"winners"`
	AllTournament []models.PlayerIdentity `json:"allTournament"`
}

// DetermineAwards hands out awards in AwardPriority order. A player wins at
// most one award; ties go to the later record. Records without indexes are
// ignored.
func DetermineAwards(records []models.PlayerRecord) Awards {
	var rated []models.PlayerRecord
	for _, r := range records {
		if r.Indexes != nil {
			rated = append(rated, r)
		}
	}

	var awards Awards
	taken := make(map[int]bool, len(AwardPriority))
	for _, a := range AwardPriority {
		best := -1
		for i, r := range rated {
			if taken[i] {
				continue
			}
			if best < 0 || a.score(*r.Indexes) >= a.score(*rated[best].Indexes) {
				best = i
			}
		}
		if best < 0 {
			continue
		}
		taken[best] = true
		awards.Winners = append(awards.Winners, AwardWinner{
			Award:  a,
			Label:  a.Label(),
			Color:  a.Color(),
			Player: rated[best].PlayerIdentity,
			Score:  a.score(*rated[best].Indexes),
		})
	}

	order := make([]int, len(rated))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return rated[order[i]].Indexes.Total > rated[order[j]].Indexes.Total
	})
	for _, i := range order {
		if len(awards.AllTournament) == AllTournamentSize {
			break
		}
		awards.AllTournament = append(awards.AllTournament, rated[i].PlayerIdentity)
	}
	return awards
}
