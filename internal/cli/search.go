package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSearchCommand(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Show the roster entries a name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := e.svc.Search(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			if len(found) == 0 {
				return fmt.Errorf("no fighter matches %q", args[0])
			}
			if e.flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), found)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSCORE\tMATCH")
			for _, c := range found {
				fmt.Fprintf(tw, "%s\t%.1f\t%s\n", c.Fighter.Name, c.Score, c.Kind)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum candidates to show (default from config)")
	return cmd
}

func newFightersCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "fighters",
		Short: "List every fighter in the current roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := e.svc.Fighters(cmd.Context())
			if err != nil {
				return err
			}
			if e.flags.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}
