package history

import (
	"fmt"

	"github.com/isaacphi/rendertools/internal/appState"
	"github.com/isaacphi/rendertools/internal/repository"
	"github.com/spf13/cobra"
)

var (
	limitFlag int
	forceFlag bool
)

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded tool calls",
}

func init() {
	listCmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Limit the number of calls to show (0 for all)")
	deleteCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Delete without confirmation")

	HistoryCmd.AddCommand(listCmd, viewCmd, deleteCmd)
}

func openHistory() (repository.CallRepository, error) {
	repo, err := appState.Get().OpenHistory()
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, fmt.Errorf("call history is disabled (history.enabled: false)")
	}
	return repo, nil
}
