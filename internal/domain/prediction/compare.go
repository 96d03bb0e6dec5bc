package prediction

import (
	"fmt"

	"github.com/okian/cageside/internal/domain/fighter"
)

// Even marks a metric where neither corner has the edge.
const Even = "even"

// Comparison is one row of the tale of the tape.
type Comparison struct {
	Metric    string  `json:"metric"`
	Label     string  `json:"label"`
	Blue      float64 `json:"blue"`
	Red       float64 `json:"red"`
	Advantage string  `json:"advantage"`
}

type tapeMetric struct {
	key           string
	label         string
	lowerIsBetter bool
}

var tapeMetrics = []tapeMetric{
	{fighter.SigStrLandPM, "Significant strikes landed per minute", false},
	{fighter.SigStrAbsPM, "Significant strikes absorbed per minute", true},
	{fighter.SigStrLandPct, "Striking accuracy", false},
	{fighter.SigStrDefPct, "Strike defence", false},
	{fighter.TdAvg, "Takedowns per 15 minutes", false},
	{fighter.TdDefPct, "Takedown defence", false},
	{fighter.SubAvg, "Submission attempts per 15 minutes", false},
	{fighter.ReachCms, "Reach (cm)", false},
	{fighter.HeightCms, "Height (cm)", false},
}

// Compare lists the key metrics side by side with the advantaged corner.
func Compare(blue, red fighter.Attributes) []Comparison {
	out := make([]Comparison, 0, len(tapeMetrics))
	for _, m := range tapeMetrics {
		b, r := blue.Value(m.key), red.Value(m.key)
		adv := Even
		switch {
		case b == r:
		case (b > r) != m.lowerIsBetter:
			adv = CornerBlue
		default:
			adv = CornerRed
		}
		out = append(out, Comparison{Metric: m.key, Label: m.label, Blue: b, Red: r, Advantage: adv})
	}
	return out
}

// Summarize builds the short stat line for a fighter.
func Summarize(a fighter.Attributes) Summary {
	return Summary{
		Name:             a.Name,
		Record:           fmt.Sprintf("%d-%d-%d", int(a.Value(fighter.Wins)), int(a.Value(fighter.Losses)), int(a.Draws)),
		StrikesPerMinute: a.Value(fighter.SigStrLandPM),
		TakedownAverage:  a.Value(fighter.TdAvg),
		Stance:           a.Stance,
	}
}
