package cli

import (
	"fmt"
	"io"
	"strings"

	service "github.com/okian/cageside/internal/app"
	"github.com/okian/cageside/internal/domain/prediction"
)

const maxAdvantages = 3

func renderOutcome(w io.Writer, out prediction.Outcome) {
	fmt.Fprintf(w, "%s (%s) vs %s (%s)\n", out.Blue.Name, out.Blue.Record, out.Red.Name, out.Red.Record)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "PREDICTION: %s defeats %s\n", out.Winner, out.Loser)
	if _, ok := out.Confidence.Value(); ok {
		fmt.Fprintf(w, "   Confidence: %s\n", out.Confidence)
	} else {
		fmt.Fprintln(w, "   (Confidence not available)")
	}

	blue, red := advantages(out.Tape)
	if len(blue)+len(red) == 0 {
		return
	}
	fmt.Fprintln(w, "\nKEY ADVANTAGES:")
	if len(blue) > 0 {
		fmt.Fprintf(w, "   %s: %s\n", out.Blue.Name, strings.Join(blue, ", "))
	}
	if len(red) > 0 {
		fmt.Fprintf(w, "   %s: %s\n", out.Red.Name, strings.Join(red, ", "))
	}
}

// advantages returns up to maxAdvantages tape lines per corner, each with
// the advantaged corner's value first.
func advantages(tape []prediction.Comparison) (blue, red []string) {
	for _, c := range tape {
		switch {
		case c.Advantage == prediction.CornerBlue && len(blue) < maxAdvantages:
			blue = append(blue, fmt.Sprintf("%s (%.2f vs %.2f)", c.Label, c.Blue, c.Red))
		case c.Advantage == prediction.CornerRed && len(red) < maxAdvantages:
			red = append(red, fmt.Sprintf("%s (%.2f vs %.2f)", c.Label, c.Red, c.Blue))
		}
	}
	return blue, red
}

func renderCard(w io.Writer, event string, results []service.BoutResult, predicted int) {
	if event != "" {
		fmt.Fprintf(w, "%s\n%s\n", event, strings.Repeat("=", 60))
	}
	for _, r := range results {
		title := "BOUT"
		if r.MainEvent {
			title = "MAIN EVENT"
		}
		if r.Description != "" {
			title += " - " + r.Description
		}
		fmt.Fprintf(w, "\n%s\n", title)
		if r.WeightClass != "" {
			fmt.Fprintf(w, "Weight Class: %s\n", r.WeightClass)
		}
		if r.Outcome == nil {
			fmt.Fprintf(w, "Failed to predict %s vs %s: %s\n", orUnknown(r.Blue), orUnknown(r.Red), r.Error)
			continue
		}
		renderOutcome(w, *r.Outcome)
	}

	fmt.Fprintf(w, "\nSUMMARY\n%s\n", strings.Repeat("=", 60))
	for _, r := range results {
		if r.Outcome == nil {
			continue
		}
		fmt.Fprintf(w, "%s vs %s -> %s wins (%s)\n", r.Outcome.Blue.Name, r.Outcome.Red.Name, r.Outcome.Winner, r.Outcome.Confidence)
	}
	fmt.Fprintf(w, "\nPredicted %d/%d bouts\n", predicted, len(results))
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
