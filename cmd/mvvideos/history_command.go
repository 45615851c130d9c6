package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mvvideos/internal/config"
	"mvvideos/internal/history"
)

func newHistoryCommand(configFlag *string) *cobra.Command {
	var (
		limit      int
		failedOnly bool
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from the history journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(*configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit, failedOnly)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				mode := "move"
				if run.DryRun {
					mode = "dry-run"
				}
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					mode,
					strings.Join(run.Sources, ", "),
					run.Destination,
					fmt.Sprintf("%d/%d", run.Moved, run.Planned),
					fmt.Sprintf("%d", run.Failed),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Run", "Started", "Mode", "Sources", "Destination", "Moved", "Failed"}, rows))
			return nil
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	historyCmd.Flags().BoolVar(&failedOnly, "failed", false, "Only list runs with failed moves")

	historyCmd.AddCommand(newHistoryShowCommand(configFlag))
	return historyCmd
}

func newHistoryShowCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "List the move outcomes of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(*configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			runID, err := resolveRunID(cmd, store, args[0])
			if err != nil {
				return err
			}

			moves, err := store.Moves(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if len(moves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No moves recorded for this run.")
				return nil
			}

			rows := make([][]string, 0, len(moves))
			for _, move := range moves {
				rows = append(rows, []string{move.Status, move.Source, move.Destination, move.Error})
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				renderTable([]string{"Result", "Source", "Destination", "Detail"}, rows))
			return nil
		},
	}
}

func openHistory(configPath string) (*history.Store, error) {
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled in the configuration")
	}
	return history.Open(cfg.History.Path)
}

// resolveRunID accepts either a full run ID or the short prefix printed by
// `mvvideos history`.
func resolveRunID(cmd *cobra.Command, store *history.Store, id string) (string, error) {
	if len(id) >= 36 {
		return id, nil
	}
	runs, err := store.RecentRuns(cmd.Context(), 1000, false)
	if err != nil {
		return "", err
	}
	for _, run := range runs {
		if strings.HasPrefix(run.ID, id) {
			return run.ID, nil
		}
	}
	return "", fmt.Errorf("no recorded run with ID %q", id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
