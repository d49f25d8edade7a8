package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "rm [call_id]",
	Short: "Delete a recorded call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openHistory()
		if err != nil {
			return err
		}
		defer repo.Close()

		// Find call by partial ID
		call, err := repo.FindByPartialID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to find call: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "About to delete call %s:\n", call.ID.String()[:8])
		fmt.Fprintf(out, "Created: %s\n", call.CreatedAt.Format(time.RFC822))
		fmt.Fprintf(out, "Tool: %s (%s)\n", call.Tool, call.Outcome)

		if !forceFlag {
			fmt.Fprint(out, "\nAre you sure you want to delete this call? [y/N] ")
			var response string
			_, err := fmt.Fscanln(cmd.InOrStdin(), &response)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}
		}

		if err := repo.Delete(cmd.Context(), call.ID); err != nil {
			return fmt.Errorf("failed to delete call: %w", err)
		}

		fmt.Fprintln(out, "Call deleted successfully")
		return nil
	},
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
