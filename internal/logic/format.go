package logic

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fireballs/brady-stats/internal/models"
)

var numberPrinter = message.NewPrinter(language.English)

// FormatContinuous truncates v to two decimals ("12.349" -> "12.34").
func FormatContinuous(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	// The nudge keeps values like 12.34 (stored as 12.3399...) from losing a cent.
	t := math.Trunc(v*100+math.Copysign(1e-7, v)) / 100
	if t == 0 {
		t = 0 // drop negative zero
	}
	return fmt.Sprintf("%.2f", t)
}

// FormatDiscrete rounds v to an integer with thousands separators.
func FormatDiscrete(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return numberPrinter.Sprintf("%d", int64(math.Round(v)))
}

// FormatStat formats a grid cell. Discrete counters stay integers in total
// mode and show two decimals once divided.
func FormatStat(f models.StatField, v float64, mode Mode) string {
	if !f.Normalizes {
		return FormatDiscrete(v)
	}
	if f.Continuous || mode != ModeTotal {
		return FormatContinuous(v)
	}
	return FormatDiscrete(v)
}

// FormatHoverStat formats a hover card value: one decimal when decimal is
// set, an integer otherwise.
func FormatHoverStat(v float64, decimal bool) string {
	if decimal {
		return fmt.Sprintf("%.1f", v)
	}
	return FormatDiscrete(v)
}

// FormatIndex rounds an index score to one decimal.
func FormatIndex(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatDuration renders seconds as MM:SS.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// MinutesPlayed is the whole number of minutes in seconds.
func MinutesPlayed(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Floor(seconds / 60))
}

// FormatTimestamp renders unix milliseconds as RFC 3339 UTC.
func FormatTimestamp(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}

// FormatScore renders a two-team score.
func FormatScore(one, two int) string {
	return fmt.Sprintf("%d - %d", one, two)
}
