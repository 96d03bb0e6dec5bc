package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	service "github.com/okian/cageside/internal/app"
)

// Card is a fight card file.
//
//	event: UFC 320
//	bouts:
//	  - blue: Magomed Ankalaev
//	    red: Alex Pereira
//	    weight_class: Light Heavyweight
//	    main_event: true
type Card struct {
	Event string         `yaml:"event" json:"event,omitempty"`
	Bouts []service.Bout `yaml:"bouts" json:"bouts"`
}

type cardOutput struct {
	Event     string               `json:"event,omitempty"`
	Results   []service.BoutResult `json:"results"`
	Predicted int                  `json:"predicted"`
}

// LoadCard reads a card file. Unknown keys are rejected.
func LoadCard(path string) (Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Card{}, fmt.Errorf("read card: %w", err)
	}
	var c Card
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return Card{}, fmt.Errorf("parse card %s: %w", path, err)
	}
	return c, nil
}

func newCardCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "card <file.yaml>",
		Short: "Predict every bout on a fight card",
		Long: `Predict every bout listed in a YAML card file. Bouts that cannot be
predicted are reported and do not stop the rest of the card.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := LoadCard(args[0])
			if err != nil {
				return err
			}
			results, err := e.svc.PredictCard(cmd.Context(), card.Bouts)
			if err != nil {
				return err
			}
			predicted := 0
			for _, r := range results {
				if r.Outcome != nil {
					predicted++
				}
			}
			if e.flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), cardOutput{Event: card.Event, Results: results, Predicted: predicted})
			}
			renderCard(cmd.OutOrStdout(), card.Event, results, predicted)
			return nil
		},
	}
}
