package history

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded tool calls",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openHistory()
		if err != nil {
			return err
		}
		defer repo.Close()

		calls, err := repo.List(cmd.Context(), limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list calls: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCreated\tTool\tOutcome\tDuration")
		for _, call := range calls {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				call.ID.String()[:8],
				call.CreatedAt.Format(time.RFC822),
				call.Tool,
				call.Outcome,
				call.Duration.Round(time.Microsecond),
			)
		}
		return w.Flush()
	},
}

var viewCmd = &cobra.Command{
	Use:   "view [call_id]",
	Short: "Show a recorded call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openHistory()
		if err != nil {
			return err
		}
		defer repo.Close()

		call, err := repo.FindByPartialID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find call: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Call %s\n", call.ID)
		fmt.Fprintf(out, "Tool: %s\n", call.Tool)
		fmt.Fprintf(out, "Outcome: %s\n", call.Outcome)
		fmt.Fprintf(out, "Created: %s\n", call.CreatedAt.Format(time.RFC822))
		fmt.Fprintf(out, "Duration: %s\n", call.Duration)
		if call.Violations != "" {
			fmt.Fprintf(out, "Violations:\n")
			for _, line := range splitLines(call.Violations) {
				fmt.Fprintf(out, "  %s\n", line)
			}
		}
		fmt.Fprintf(out, "Arguments:\n%s\n", call.Arguments)
		return nil
	},
}
