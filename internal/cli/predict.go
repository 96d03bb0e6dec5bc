package cli

import (
	"github.com/spf13/cobra"
)

func newPredictCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "predict <blue> <red>",
		Short: "Predict a single bout",
		Long: `Predict a bout between two fighters. The first name fights in the Blue
corner. Names are matched exactly, then by substring, then fuzzily.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := e.svc.PredictFight(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if e.flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			renderOutcome(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
