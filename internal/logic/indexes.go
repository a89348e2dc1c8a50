package logic

import "github.com/fireballs/brady-stats/internal/models"

// IndexRow is one labelled MVP index value.
type IndexRow struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// IndexLegendEntry maps an index key to its display label and colour.
type IndexLegendEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	value func(models.PlayerIndexScores) float64
}

// Index colours, shared by hover cards, legends and award podiums.
const (
	ColorGeneral   = "#FFDD00"
	ColorOffensive = "#A855F7"
	ColorDefensive = "#22C55E"
	ColorPvP       = "#EF4444"
	ColorPassing   = "#3B82F6"
	ColorReceiving = "#F97316"
)

// IndexLegend is the fixed display order of the six MVP indexes.
var IndexLegend = []IndexLegendEntry{
	{Key: "total", Label: "General", Color: ColorGeneral, value: func(s models.PlayerIndexScores) float64 { return s.Total }},
	{Key: "offense", Label: "Offensive", Color: ColorOffensive, value: func(s models.PlayerIndexScores) float64 { return s.Offense }},
	{Key: "defense", Label: "Defensive", Color: ColorDefensive, value: func(s models.PlayerIndexScores) float64 { return s.Defense }},
	{Key: "pvp", Label: "PvP", Color: ColorPvP, value: func(s models.PlayerIndexScores) float64 { return s.PvP }},
	{Key: "passing", Label: "Passing", Color: ColorPassing, value: func(s models.PlayerIndexScores) float64 { return s.Passing }},
	{Key: "receiving", Label: "Receiving", Color: ColorReceiving, value: func(s models.PlayerIndexScores) float64 { return s.Receiving }},
}

// GetIndexRows lists the six index scores in legend order. Values are passed
// through untouched; only Display is rounded to one decimal.
func GetIndexRows(scores *models.PlayerIndexScores) []IndexRow {
	var s models.PlayerIndexScores
	if scores != nil {
		s = *scores
	}

	rows := make([]IndexRow, len(IndexLegend))
	for i, e := range IndexLegend {
		v := e.value(s)
		rows[i] = IndexRow{
			Key:     e.Key,
			Label:   e.Label,
			Color:   e.Color,
			Value:   v,
			Display: FormatIndex(v),
		}
	}
	return rows
}

// Award identifies a tournament award category.
type Award string

const (
	AwardMVP      Award = "mvp"
	AwardOPOT     Award = "opot"
	AwardDPOT     Award = "dpot"
	AwardOLDL     Award = "oldl"
	AwardPasser   Award = "passer"
	AwardReceiver Award = "receiver"
)

// AwardPriority is the order awards are handed out in.
var AwardPriority = []Award{AwardMVP, AwardOPOT, AwardDPOT, AwardOLDL, AwardPasser, AwardReceiver}

var awardMeta = map[Award]struct {
	label, color string
}{
	AwardMVP:      {"MVP", ColorGeneral},
	AwardOPOT:     {"Offensive Player", ColorOffensive},
	AwardDPOT:     {"Defensive Player", ColorDefensive},
	AwardOLDL:     {"OL/DL", ColorPvP},
	AwardPasser:   {"Passer", ColorPassing},
	AwardReceiver: {"Receiver", ColorReceiving},
}

func (a Award) Label() string { return awardMeta[a].label }

func (a Award) Color() string { return awardMeta[a].color }

// score picks the index an award is decided on.
func (a Award) score(s models.PlayerIndexScores) float64 {
	switch a {
	case AwardMVP:
		return s.Total
	case AwardOPOT:
		return s.Offense
	case AwardDPOT:
		return s.Defense
	case AwardOLDL:
		return s.PvP
	case AwardPasser:
		return s.Passing
	case AwardReceiver:
		return s.Receiving
	}
	return 0
}
