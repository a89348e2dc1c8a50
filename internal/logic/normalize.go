package logic

import (
	"fmt"

	"github.com/fireballs/brady-stats/internal/models"
)

// Mode selects how raw counters are divided before display.
type Mode int

const (
	ModeTotal Mode = iota
	ModePerMatch
	ModePerMinute
)

// modeCount is the number of modes in the cycle.
const modeCount = 3

var modeNames = [modeCount]string{"total", "perMatch", "perMinute"}

// Hover card labels
var modeLabels = [modeCount]string{"Total", "Per Match", "Per Minute"}

// Grid selector labels
var modeGridLabels = [modeCount]string{"Total", "Avg/Match", "Avg/Min"}

func (m Mode) valid() bool { return m >= 0 && m < modeCount }

func (m Mode) String() string {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Label is the hover card label of the mode.
func (m Mode) Label() string {
	if !m.valid() {
		return ""
	}
	return modeLabels[m]
}

// GridLabel is the grid selector label of the mode.
func (m Mode) GridLabel() string {
	if !m.valid() {
		return ""
	}
	return modeGridLabels[m]
}

// Next returns the mode following m in the cycle.
func (m Mode) Next() Mode {
	if !m.valid() {
		return ModeTotal
	}
	return (m + 1) % modeCount
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode parses a mode name. The empty string is ModeTotal.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeTotal, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeTotal, fmt.Errorf("unknown normalization mode %q", s)
}

// Divisor returns the number raw counters are divided by under mode.
// A nil context yields 0, which disables normalization.
func Divisor(mode Mode, ctx *models.PlayerContext) float64 {
	switch mode {
	case ModePerMatch:
		if ctx == nil {
			return 0
		}
		return float64(ctx.MatchesPlayed)
	case ModePerMinute:
		if ctx == nil {
			return 0
		}
		return ctx.TimePlayed / 60
	default:
		return 1
	}
}

// NormalizeStats divides every normalizing counter of stats by divisor.
// Killstreak and team pass through unchanged.
func NormalizeStats(stats models.RawStats, divisor float64) models.RawStats {
	out := stats
	for _, f := range models.StatFields {
		if !f.Normalizes {
			continue
		}
		f.Set(&out, f.Value(stats)/divisor)
	}
	return out
}

// NormalizePlayer returns record with its stats divided for mode. When the
// divisor is 0 or 1 the record is returned as is, so a player without matches
// shows raw totals instead of NaN or Inf. Values are never rounded here.
func NormalizePlayer(record models.PlayerRecord, mode Mode) models.PlayerRecord {
	divisor := Divisor(mode, record.Context)
	if divisor == 0 || divisor == 1 {
		return record
	}
	out := record
	out.Stats = NormalizeStats(record.Stats, divisor)
	return out
}

// NormalizePlayers applies NormalizePlayer to every record.
func NormalizePlayers(records []models.PlayerRecord, mode Mode) []models.PlayerRecord {
	out := make([]models.PlayerRecord, len(records))
	for i, r := range records {
		out[i] = NormalizePlayer(r, mode)
	}
	return out
}
